// Package app wires configuration, backend drivers, services and the HTTP
// router into a runnable gateway.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/agrox/fieldops/internal/config"
	"github.com/agrox/fieldops/internal/http/handlers"
	"github.com/agrox/fieldops/internal/http/router"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/repository"
	"github.com/agrox/fieldops/internal/service"
	"github.com/agrox/fieldops/internal/storage"
)

// App is an assembled gateway.
type App struct {
	Engine  *gin.Engine
	Session *probe.Session
	Modules *repository.Modules

	cache *service.CacheService
}

// New builds the gateway over stores. One probe session serves the whole process.
func New(cfg *config.Config, catalog *probe.Catalog, stores *Stores) (*App, error) {
	session := probe.NewSession()
	mods, err := repository.NewModules(stores.Tables, stores.Blobs, session, catalog)
	if err != nil {
		return nil, err
	}

	intake := storage.NewPhotoIntake(cfg.MaxUploadSizeMB)
	cache := service.NewCacheService()

	damages := service.NewDamageService(mods.Damages, mods.DamagePhotos, intake, cfg.DamagePhotoRequired)
	maintenance := service.NewMaintenanceService(mods.Maintenance, mods.MaintenancePhotos, intake, cfg.GeoTimeout)
	orders := service.NewOrderService(mods.Orders)
	fuel := service.NewFuelService(mods.Fuel, mods.FuelPhotos, intake, cfg.GeoTimeout)
	bootstrap := service.NewBootstrapService(mods.Users, cache, cfg.BootstrapTTL)
	dashboard := service.NewDashboardService(session)
	support := service.NewSupportService(cfg.SupportPhone)
	tokens := service.NewTokenVerifier(cfg.SupabaseJWTSecret, stores.Auth)

	engine := router.SetupRouter(cfg, router.Handlers{
		Damage:      handlers.NewDamageHandler(damages),
		Maintenance: handlers.NewMaintenanceHandler(maintenance),
		Order:       handlers.NewOrderHandler(orders),
		Fuel:        handlers.NewFuelHandler(fuel),
		Dashboard:   handlers.NewDashboardHandler(dashboard),
		Language:    handlers.NewLanguageHandler(cfg.IsProduction()),
		Support:     handlers.NewSupportHandler(support),
		Health:      handlers.NewHealthHandler(stores.Checks),
	}, tokens, bootstrap)
	// room for the multipart envelope around a photo at the size limit
	engine.MaxMultipartMemory = intake.MaxBytes() + 1<<20

	return &App{
		Engine:  engine,
		Session: session,
		Modules: mods,
		cache:   cache,
	}, nil
}

// Close stops background work.
func (a *App) Close() {
	a.cache.Close()
}
