package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// CancelOrderCommandHandler calls off active orders. The active->cancelled
// transition is a conditional update like completion, so a cancel racing
// a concurrent completion cannot pull a delivered order back. Cancellation
// has no external side effects; nothing is reported to the platform.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes one cancellation request. Cancelling an already
// cancelled order succeeds without writing; cancelling a completed order
// is a validation error.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	won, err := uow.OrderRepository().CancelIfActive(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !won {
		return h.resolveLoss(ctx, uow, cmd)
	}

	return uow.Commit(ctx)
}

// resolveLoss distinguishes "already cancelled" (idempotent success)
// from "completed" and "missing" (errors).
func (h *CancelOrderCommandHandler) resolveLoss(
	ctx context.Context, uow OrderUoW, cmd CancelOrderCommand,
) error {
	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Status() == order.StatusCancelled {
		return uow.Commit(ctx)
	}

	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s order cannot be cancelled", aggregate.Status()))
}
