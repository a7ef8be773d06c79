package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/Devaraju89/OneKart-sub000/api/routes"
	"github.com/Devaraju89/OneKart-sub000/internal/identity"
	"github.com/Devaraju89/OneKart-sub000/internal/inquiries"
	"github.com/Devaraju89/OneKart-sub000/internal/orders"
	"github.com/Devaraju89/OneKart-sub000/internal/payments"
	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	"github.com/Devaraju89/OneKart-sub000/pkg/db"
	"github.com/Devaraju89/OneKart-sub000/pkg/db/models"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
	"github.com/Devaraju89/OneKart-sub000/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// A payment bridge without credentials can only fail at verification
	// time, so refuse to boot instead.
	if err := cfg.Gateway.Validate(); err != nil {
		logg.Error(context.Background(), "payment gateway misconfigured", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.Features.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.Features.AutoMigrate {
		if err := dbClient.DB().AutoMigrate(
			&models.Customer{},
			&models.Seller{},
			&models.Admin{},
			&models.Order{},
			&models.OrderItem{},
			&models.Inquiry{},
		); err != nil {
			logg.Error(context.Background(), "failed to run auto migration", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	identityRepo := identity.NewRepository(dbClient.DB())

	resolver, err := identity.NewResolver(identityRepo, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity resolver", err)
		os.Exit(1)
	}

	identityService, err := identity.NewService(identity.ServiceParams{
		Repo:        identityRepo,
		JWTConfig:   cfg.JWT,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	gateway, err := payments.NewGateway(cfg.Gateway)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment gateway client", err)
		os.Exit(1)
	}

	paymentService, err := payments.NewService(payments.ServiceParams{
		Gateway:      gateway,
		Capabilities: redisClient,
		Config:       cfg.Gateway,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	pricing, err := orders.NewPricing(cfg.Orders)
	if err != nil {
		logg.Error(context.Background(), "failed to parse pricing rules", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:              orders.NewRepository(dbClient.DB()),
		Tx:                dbClient,
		Pricing:           pricing,
		Capabilities:      paymentService,
		StrictTransitions: cfg.Features.StrictTransitions,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	inquiryService, err := inquiries.NewService(inquiries.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create inquiry service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			resolver,
			identityService,
			orderService,
			paymentService,
			inquiryService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
