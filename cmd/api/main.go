package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ovenmade/bakehouse-backend/api/routes"
	"github.com/ovenmade/bakehouse-backend/internal/analytics"
	"github.com/ovenmade/bakehouse-backend/internal/auth"
	cartsvc "github.com/ovenmade/bakehouse-backend/internal/cart"
	"github.com/ovenmade/bakehouse-backend/internal/categories"
	"github.com/ovenmade/bakehouse-backend/internal/customorders"
	"github.com/ovenmade/bakehouse-backend/internal/orders"
	"github.com/ovenmade/bakehouse-backend/internal/products"
	"github.com/ovenmade/bakehouse-backend/internal/reviews"
	"github.com/ovenmade/bakehouse-backend/internal/subcategories"
	"github.com/ovenmade/bakehouse-backend/internal/users"
	"github.com/ovenmade/bakehouse-backend/pkg/auth/session"
	"github.com/ovenmade/bakehouse-backend/pkg/config"
	"github.com/ovenmade/bakehouse-backend/pkg/db"
	"github.com/ovenmade/bakehouse-backend/pkg/logger"
	"github.com/ovenmade/bakehouse-backend/pkg/metrics"
	"github.com/ovenmade/bakehouse-backend/pkg/migrate"
	"github.com/ovenmade/bakehouse-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	categoryRepo := categories.NewRepository(gormDB)
	subcategoryRepo := subcategories.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	cartRepo := cartsvc.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	subcategoryService, err := subcategories.NewService(subcategoryRepo, categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create subcategory service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productRepo, subcategoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Repo:          cartRepo,
		Users:         userRepo,
		Products:      productRepo,
		Subcategories: subcategoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:          orders.NewRepository(gormDB),
		TxRunner:      dbClient,
		Users:         userRepo,
		Subcategories: subcategoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	customOrderService, err := customorders.NewService(customorders.ServiceParams{
		Repo:  customorders.NewRepository(gormDB),
		Users: userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create custom order service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.ServiceParams{
		Repo:     reviews.NewRepository(gormDB),
		Products: productRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(analytics.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

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
			sessionManager,
			httpMetrics,
			authService,
			registerService,
			userService,
			categoryService,
			subcategoryService,
			productService,
			cartService,
			orderService,
			customOrderService,
			reviewService,
			analyticsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
