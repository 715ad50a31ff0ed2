// Package commands contains the write operations of the service. Each
// command is an immutable, validated value; its handler owns the
// transaction and applies the domain rules.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers depend on the narrowest combination of repositories
// they actually touch.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within
	// a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// BusinessRepoFactory provides access to the business repository
	// within a transaction.
	BusinessRepoFactory interface {
		BusinessRepository() ports.BusinessRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// OrderCourierUoW spans orders and couriers, used by claim
	// arbitration to resolve the winning courier's name.
	OrderCourierUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// OrderCourierUoWFactory creates order+courier unit of work
	// instances.
	OrderCourierUoWFactory interface {
		Create() OrderCourierUoW
	}

	// OrderBusinessUoW spans orders and businesses, used by completion to
	// look up the platform credentials for the delivery confirmation.
	OrderBusinessUoW interface {
		TxManager
		OrderRepoFactory
		BusinessRepoFactory
	}

	// OrderBusinessUoWFactory creates order+business unit of work
	// instances.
	OrderBusinessUoWFactory interface {
		Create() OrderBusinessUoW
	}
)
