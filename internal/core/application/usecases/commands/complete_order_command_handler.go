package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/background"
	"dispatch/internal/pkg/errs"
)

// CompleteOrderCommandHandler finishes deliveries. The active->completed
// transition happens as a conditional update, so concurrent or repeated
// completions resolve to exactly one winner; only the winner triggers
// the platform delivery confirmation.
//
// The confirmation is fire-and-forget: it runs on the background runner
// after commit, failures are logged and never reach the courier, and
// duplicate requests cannot re-send it because they lose the transition.
type CompleteOrderCommandHandler struct {
	uowFactory OrderBusinessUoWFactory
	platform   ports.PlatformGateway
	runner     background.Runner
	logger     *slog.Logger
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(
	uowFactory OrderBusinessUoWFactory,
	platform ports.PlatformGateway,
	runner background.Runner,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		platform:   platform,
		runner:     runner,
		logger:     logger,
	}
}

// Handle processes one completion request. Completing an already
// completed order succeeds without side effects; completing a cancelled
// order is a validation error.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	won, err := orderRepo.CompleteIfActive(ctx, cmd.OrderID(), time.Now().UTC())
	if err != nil {
		return err
	}

	if !won {
		return h.resolveLoss(ctx, uow, cmd)
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var cred business.APICredential
	if aggregate.Platform().IsExternal() {
		cred = h.lookupCredential(ctx, uow, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.syncPlatform(aggregate, cred)
	return nil
}

// resolveLoss distinguishes "already completed" (idempotent success)
// from "cancelled" and "missing" (errors).
func (h *CompleteOrderCommandHandler) resolveLoss(
	ctx context.Context, uow OrderBusinessUoW, cmd CompleteOrderCommand,
) error {
	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Status() == order.StatusCompleted {
		return uow.Commit(ctx)
	}

	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s order cannot be completed", aggregate.Status()))
}

func (h *CompleteOrderCommandHandler) lookupCredential(
	ctx context.Context, uow OrderBusinessUoW, aggregate *order.Order,
) business.APICredential {
	owner, err := uow.BusinessRepository().Get(ctx, aggregate.BusinessID())
	if err != nil {
		h.logger.Warn("business lookup for platform sync failed",
			"orderNumber", aggregate.OrderNumber(),
			"error", err)
		return business.APICredential{}
	}

	cred, ok := owner.Credential(aggregate.Platform())
	if !ok {
		h.logger.Info("no platform credentials configured, skipping sync",
			"orderNumber", aggregate.OrderNumber(),
			"platform", aggregate.Platform().String())
	}
	return cred
}

// syncPlatform reports the delivery to the originating platform after
// the local transition is durable.
func (h *CompleteOrderCommandHandler) syncPlatform(aggregate *order.Order, cred business.APICredential) {
	if !aggregate.Platform().IsExternal() {
		return
	}

	h.runner.Go(func() {
		if err := h.platform.ReportDelivered(context.Background(), aggregate, cred); err != nil {
			h.logger.Error("platform delivery confirmation failed",
				"orderNumber", aggregate.OrderNumber(),
				"platform", aggregate.Platform().String(),
				"error", err)
		}
	})
}
