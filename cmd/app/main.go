package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/businessrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config := loadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(config)
	migrateDB(gormDB)

	timezone, err := time.LoadLocation(config.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", config.Timezone, err)
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)

	if err := root.LocationCache().Hydrate(context.Background(), root.CourierRepository()); err != nil {
		logger.Warn("Location cache hydration failed, continuing with empty cache", "error", err)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, config, timezone, logger)
}

func loadConfig() cmd.Config {
	// .env is optional; production containers configure the environment
	// directly.
	_ = godotenv.Load(".env")

	var config cmd.Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return config
}

func connectDB(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&businessrepo.BusinessDTO{},
		&businessrepo.CredentialDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, config cmd.Config, timezone *time.Location, logger *slog.Logger) {
	server := httpin.NewServer(httpin.ServerParams{
		ClaimOrderHandler:        root.CreateClaimOrderCommandHandler(),
		CompleteOrderHandler:     root.CreateCompleteOrderCommandHandler(),
		CancelOrderHandler:       root.CreateCancelOrderCommandHandler(),
		CreateOrderHandler:       root.CreateCreateOrderCommandHandler(),
		UpdateLocationHandler:    root.CreateUpdateLocationCommandHandler(),
		RateOrderHandler:         root.CreateRateOrderCommandHandler(),
		AttachPhotoHandler:       root.CreateAttachPhotoCommandHandler(),
		DeactivateCourierHandler: root.CreateDeactivateCourierCommandHandler(),

		GetOrdersHandler:      root.CreateGetOrdersQueryHandler(),
		GetOrderHandler:       root.CreateGetOrderQueryHandler(),
		TeamOverviewHandler:   root.CreateGetTeamOverviewQueryHandler(),
		CourierStatsHandler:   root.CreateGetCourierStatsQueryHandler(),
		OptimizedRouteHandler: root.CreateGetOptimizedRouteQueryHandler(),

		LocationCache: root.LocationCache(),
		Registry:      root.Registry(),
		Couriers:      root.CourierRepository(),
		Businesses:    root.BusinessRepository(),

		JWTSecret:     []byte(config.JWTSecret),
		WebhookSecret: config.WebhookSecret,
		Timezone:      timezone,
		Logger:        logger,
	})

	e := echo.New()
	e.Use(middleware.Recover())
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}
