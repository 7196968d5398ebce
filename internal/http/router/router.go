package router

import (
	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/config"
	"github.com/agrox/fieldops/internal/http/handlers"
	"github.com/agrox/fieldops/internal/http/middleware"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Damage      *handlers.DamageHandler
	Maintenance *handlers.MaintenanceHandler
	Order       *handlers.OrderHandler
	Fuel        *handlers.FuelHandler
	Dashboard   *handlers.DashboardHandler
	Language    *handlers.LanguageHandler
	Support     *handlers.SupportHandler
	Health      *handlers.HealthHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokens middleware.TokenVerifier,
	bootstrap middleware.UserBootstrapper,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.Language())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	{
		api.GET("/languages", h.Language.ListLanguages)
		api.PUT("/language", h.Language.SetLanguage)
		api.GET("/support", h.Support.Contact)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	protected.Use(middleware.Bootstrap(bootstrap))
	{
		protected.GET("/dashboard", h.Dashboard.Dashboard)
		protected.GET("/probe", h.Dashboard.ProbeStatus)

		protected.GET("/damages", h.Damage.ListDamages)
		protected.POST("/damages", h.Damage.CreateDamage)

		protected.GET("/maintenance", h.Maintenance.ListRequests)
		protected.POST("/maintenance", h.Maintenance.CreateRequest)

		protected.GET("/orders", h.Order.ListOrders)
		protected.GET("/orders/types", h.Order.OrderTypes)
		protected.POST("/orders", h.Order.CreateOrder)

		protected.GET("/fuel", h.Fuel.ListFuelings)
		protected.POST("/fuel", h.Fuel.CreateFueling)
		protected.POST("/fuel/token", h.Fuel.IssueToken)
	}

	return r
}
