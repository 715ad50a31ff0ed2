package commands

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/notifications"
)

// CreateOrderCommandHandler registers new orders in the pool and tells
// the business's couriers about them. Both webhook ingestion and manual
// entry funnel through here after payload normalization.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   *notifications.Registry
	fanout     *notifications.Fanout
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	registry *notifications.Registry,
	fanout *notifications.Fanout,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		fanout:     fanout,
	}
}

// Handle persists the order and returns its generated identifier. After
// commit, every device registered to the business gets a new-order push.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now().UTC()

	orderNumber := cmd.OrderNumber()
	if orderNumber == "" {
		orderNumber = generateOrderNumber(cmd.Platform(), now)
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), cmd.BusinessID(), cmd.Platform(), orderNumber,
		cmd.Customer(), cmd.Location(), cmd.Items(), cmd.TotalPrice(), now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.notify(aggregate)
	return aggregate.ID(), nil
}

func (h *CreateOrderCommandHandler) notify(aggregate *order.Order) {
	tokens := h.registry.BusinessTokens(aggregate.BusinessID())

	title := "Yeni Sipariş!"
	body := fmt.Sprintf("%s - %s: %s",
		aggregate.Platform(), aggregate.OrderNumber(), aggregate.Customer().Name)
	if aggregate.Platform() == order.PlatformManual {
		title = "Yeni Manuel Sipariş!"
		body = fmt.Sprintf("%s: %s", aggregate.OrderNumber(), aggregate.Customer().Name)
	}

	h.fanout.Notify(tokens, title, body, map[string]string{
		"type":    "new_order",
		"orderId": aggregate.ID().String(),
	})
}

// generateOrderNumber substitutes a number for payloads that carry none.
// External platforms get their prefix plus a random 4-digit suffix;
// manual orders encode the entry time so staff can eyeball recency.
func generateOrderNumber(p order.Platform, now time.Time) string {
	if p == order.PlatformManual {
		return "MN-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	}
	return fmt.Sprintf("%s-%d", p.NumberPrefix(), 1000+rand.IntN(9000))
}
