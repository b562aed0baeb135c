package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ovenmade/bakehouse-backend/api/controllers"
	"github.com/ovenmade/bakehouse-backend/api/middleware"
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
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
	"github.com/ovenmade/bakehouse-backend/pkg/logger"
	"github.com/ovenmade/bakehouse-backend/pkg/metrics"
	"github.com/ovenmade/bakehouse-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager sessionManager,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	registerService auth.RegisterService,
	userService users.Service,
	categoryService categories.Service,
	subcategoryService subcategories.Service,
	productService products.Service,
	cartService cartsvc.Service,
	orderService orders.Service,
	customOrderService customorders.Service,
	reviewService reviews.Service,
	analyticsService analytics.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/register", controllers.AuthRegister(registerService, authService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
	})

	// Storefront reads stay public so the catalog renders without a session.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", controllers.CategoryList(categoryService, logg))
		r.Get("/categories/{categoryId}/subcategories", controllers.SubcategoryList(subcategoryService, logg))
		r.Get("/products", controllers.ProductList(productService, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(productService, logg))
		r.Get("/products/{productId}/reviews", controllers.ReviewListByProduct(reviewService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartDeleteItem(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderPlace(orderService, logg))
			r.Get("/", controllers.OrderList(orderService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(orderService, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(orderService, logg))
		})

		r.Route("/custom-orders", func(r chi.Router) {
			r.Post("/", controllers.CustomOrderCreate(customOrderService, logg))
			r.Get("/", controllers.CustomOrderList(customOrderService, logg))
			r.Get("/{customOrderId}", controllers.CustomOrderDetail(customOrderService, logg))
			r.Post("/{customOrderId}/accept", controllers.CustomOrderAccept(customOrderService, logg))
			r.Post("/{customOrderId}/decline", controllers.CustomOrderDecline(customOrderService, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", controllers.ReviewCreate(reviewService, logg))
			r.Patch("/{reviewId}", controllers.ReviewUpdate(reviewService, logg))
			r.Delete("/{reviewId}", controllers.ReviewDelete(reviewService, logg))
		})

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", controllers.UserProfile(userService, logg))
			r.Patch("/", controllers.UserProfileUpdate(userService, logg))
		})
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoryCreate(categoryService, logg))
			r.Patch("/{categoryId}", controllers.CategoryUpdate(categoryService, logg))
			r.Delete("/{categoryId}", controllers.CategoryDelete(categoryService, logg))
			r.Post("/{categoryId}/subcategories", controllers.SubcategoryCreate(subcategoryService, logg))
		})
		r.Route("/subcategories", func(r chi.Router) {
			r.Patch("/{subcategoryId}", controllers.SubcategoryUpdate(subcategoryService, logg))
			r.Delete("/{subcategoryId}", controllers.SubcategoryDelete(subcategoryService, logg))
		})
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(productService, logg))
			r.Patch("/{productId}", controllers.ProductUpdate(productService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(productService, logg))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(orderService, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(orderService, logg))
		})
		r.Route("/custom-orders", func(r chi.Router) {
			r.Get("/", controllers.AdminCustomOrderList(customOrderService, logg))
			r.Post("/{customOrderId}/quote", controllers.AdminCustomOrderQuote(customOrderService, logg))
			r.Post("/{customOrderId}/complete", controllers.AdminCustomOrderComplete(customOrderService, logg))
		})
		r.Get("/users", controllers.AdminUserList(userService, logg))
		r.Get("/analytics/dashboard", controllers.AdminAnalyticsDashboard(analyticsService, logg))
	})

	return r
}
