package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// ClaimOrderCommandHandler arbitrates claims over pool orders.
//
// The database decides the winner: the repository's conditional update
// assigns the order only while no courier holds it, so of N concurrent
// claims exactly one mutates the row. Losers get a conflict error naming
// the current owner.
type ClaimOrderCommandHandler struct {
	uowFactory OrderCourierUoWFactory
}

// NewClaimOrderCommandHandler creates a handler for claim arbitration.
func NewClaimOrderCommandHandler(uowFactory OrderCourierUoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes one claim attempt. Outcomes:
//   - order unclaimed: the caller wins and owns the order
//   - already owned by the caller: success, claimedAt untouched
//   - owned by someone else: conflict error carrying the owner's name
//   - order not active: validation error
//
// Orders are claimable by any authenticated courier; ownership of the
// order's business is not checked here, matching the pool's open-claim
// behavior.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	if aggregate.Status().IsFinal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order cannot be claimed", aggregate.Status()))
	}

	if owner := aggregate.Courier(); owner != nil && owner.IsEqual(cmd.CourierID()) {
		// Idempotent re-claim; nothing to write.
		return uow.Commit(ctx)
	}

	won, err := orderRepo.ClaimIfUnassigned(ctx, cmd.OrderID(), cmd.CourierID(), time.Now().UTC())
	if err != nil {
		return err
	}

	if won {
		return uow.Commit(ctx)
	}

	return h.conflict(ctx, uow, cmd)
}

// conflict builds the losing side's error, naming the courier who holds
// the order when the record resolves.
func (h *ClaimOrderCommandHandler) conflict(
	ctx context.Context, uow OrderCourierUoW, cmd ClaimOrderCommand,
) error {
	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	owner := aggregate.Courier()
	if owner == nil {
		// The row changed between the conditional update and the
		// re-read; treat it as a plain conflict.
		return errs.NewConflictError("order", aggregate.OrderNumber(), "")
	}

	if owner.IsEqual(cmd.CourierID()) {
		// Lost the race to ourselves (e.g. a duplicate request); the
		// order is ours, so the claim succeeded.
		return uow.Commit(ctx)
	}

	ownerName := ""
	if ownerAggregate, ownerErr := uow.CourierRepository().Get(ctx, *owner); ownerErr == nil {
		ownerName = ownerAggregate.Name()
	}

	return errs.NewConflictError("order", aggregate.OrderNumber(), ownerName)
}
