package ports

import (
	"context"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/order"
)

// PlatformGateway reports delivery outcomes back to the external food
// platform an order came from. Implementations select the concrete
// platform API by the order's platform.
type PlatformGateway interface {
	// ReportDelivered tells the order's platform the delivery finished,
	// authenticating with the business's stored credentials. Orders from
	// platforms without an API (manual entry) are a no-op.
	ReportDelivered(ctx context.Context, aggregate *order.Order, cred business.APICredential) error
}
