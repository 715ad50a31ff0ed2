package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/platform"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/push"
	"dispatch/internal/core/application/locations"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/notifications"
	"dispatch/internal/pkg/background"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters to the application layer. All
// long-lived shared state (the connection pool, the location cache, the
// push registry) lives here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	locationCache *locations.Cache
	registry      *notifications.Registry
	fanout        *notifications.Fanout
	platforms     *platform.Dispatcher
	logger        *slog.Logger
}

// NewCompositionRoot creates the root over an open database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	gateway := push.NewExpoClient(config.ExpoPushEndpoint)

	return &CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		locationCache: locations.NewCache(),
		registry:      notifications.NewRegistry(),
		fanout:        notifications.NewFanout(gateway, background.NewGoRunner(), logger),
		platforms:     platform.NewDispatcher(),
		logger:        logger,
	}
}

// LocationCache returns the shared courier location cache.
func (c *CompositionRoot) LocationCache() *locations.Cache {
	return c.locationCache
}

// Registry returns the shared push token registry.
func (c *CompositionRoot) Registry() *notifications.Registry {
	return c.registry
}

// CourierRepository returns a courier repository outside any transaction.
func (c *CompositionRoot) CourierRepository() ports.CourierRepository {
	return c.uowFactory.Create().CourierRepository()
}

// BusinessRepository returns a business repository outside any
// transaction.
func (c *CompositionRoot) BusinessRepository() ports.BusinessRepository {
	return c.uowFactory.Create().BusinessRepository()
}

// CreateJobManager creates the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.locationCache, c.CourierRepository(), c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.OrderCourierUoWFactory = FuncOrderCourierUoWFactory(func() commands.OrderCourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.OrderBusinessUoWFactory = FuncOrderBusinessUoWFactory(func() commands.OrderBusinessUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.platforms, background.NewGoRunner(), c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.registry, c.fanout)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLocationCommandHandler(f, c.locationCache)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateOrderCommandHandler(f, c.registry, c.fanout)
}

func (c *CompositionRoot) CreateDeactivateCourierCommandHandler() commands.DeactivateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateCourierCommandHandler(f, c.locationCache)
}

func (c *CompositionRoot) CreateAttachPhotoCommandHandler() commands.AttachPhotoCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachPhotoCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTeamOverviewQueryHandler() queries.GetTeamOverviewQueryHandler {
	return queries.NewGetTeamOverviewQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierStatsQueryHandler() queries.GetCourierStatsQueryHandler {
	return queries.NewGetCourierStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOptimizedRouteQueryHandler() queries.GetOptimizedRouteQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOptimizedRouteQueryHandler(
		uow.OrderRepository(), uow.CourierRepository(), services.NewRoutePlanner())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderCourierUoWFactory func() commands.OrderCourierUoW

func (f FuncOrderCourierUoWFactory) Create() commands.OrderCourierUoW {
	return f()
}

type FuncOrderBusinessUoWFactory func() commands.OrderBusinessUoW

func (f FuncOrderBusinessUoWFactory) Create() commands.OrderBusinessUoW {
	return f()
}
