// Package platform contains the outbound clients that report delivery
// outcomes back to the external food platforms, and a dispatcher that
// selects the right client for an order.
package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// deliveryReporter is the per-platform client contract.
type deliveryReporter interface {
	ReportDelivered(ctx context.Context, aggregate *order.Order, cred business.APICredential) error
}

// Dispatcher implements ports.PlatformGateway by routing each order to
// its platform's client. Manual orders have no external counterpart and
// are skipped.
type Dispatcher struct {
	clients map[order.Platform]deliveryReporter
}

// NewDispatcher creates a dispatcher over the production platform
// clients.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		clients: map[order.Platform]deliveryReporter{
			order.PlatformTrendyol:    NewTrendyolClient(""),
			order.PlatformYemeksepeti: NewYemeksepetiClient(""),
			order.PlatformGetir:       NewGetirClient(""),
		},
	}
}

// ReportDelivered forwards the delivery confirmation to the order's
// platform.
func (d *Dispatcher) ReportDelivered(
	ctx context.Context, aggregate *order.Order, cred business.APICredential,
) error {
	if !aggregate.Platform().IsExternal() {
		return nil
	}

	client, ok := d.clients[aggregate.Platform()]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("platform",
			fmt.Errorf("no client for platform %q", aggregate.Platform()))
	}

	return client.ReportDelivered(ctx, aggregate, cred)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// doAndCheck executes the request and converts non-2xx responses into an
// upstream failure carrying a response snippet.
func doAndCheck(client *http.Client, req *http.Request, upstream string) error {
	resp, err := client.Do(req)
	if err != nil {
		return errs.NewUpstreamFailureError(upstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errs.NewUpstreamFailureError(upstream,
			fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	}

	return nil
}
