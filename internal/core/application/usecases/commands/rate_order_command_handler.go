package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/notifications"
)

// RateOrderCommandHandler records customer ratings and tells the team
// chiefs about them. Re-rating overwrites the previous value.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   *notifications.Registry
	fanout     *notifications.Fanout
}

// NewRateOrderCommandHandler creates a handler for rating submission.
func NewRateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	registry *notifications.Registry,
	fanout *notifications.Fanout,
) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		fanout:     fanout,
	}
}

// Handle stores the rating. After commit, the business's chiefs get a
// push with the star count; regular couriers are not notified.
func (h *RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Rate(cmd.Rating(), cmd.Comment()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyChiefs(aggregate)
	return nil
}

func (h *RateOrderCommandHandler) notifyChiefs(aggregate *order.Order) {
	tokens := h.registry.RoleTokens(aggregate.BusinessID(), courier.RoleChief)
	rating := 0
	if aggregate.Rating() != nil {
		rating = *aggregate.Rating()
	}

	h.fanout.Notify(tokens, "Yeni Değerlendirme",
		fmt.Sprintf("%s: %d/5 yıldız", aggregate.OrderNumber(), rating),
		map[string]string{"type": "rating"})
}
