package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/app"
	"github.com/pressdeck/pressdeck/internal/handlers"
	"github.com/pressdeck/pressdeck/internal/middleware"
	"github.com/pressdeck/pressdeck/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
// Everything under /api runs with a resolved organization context.
func NewRouter(db *gorm.DB, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	// Health endpoint (public)
	if cfg.Monitoring.Health.Enabled {
		r.GET("/health", handlers.Health(db))
	}

	// Metrics endpoint (public)
	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// Tenant-scoped routes
	api := r.Group("/api")
	api.Use(middleware.OrgContext(db))

	folderSvc, err := services.NewMediaFolderService(db)
	if err != nil {
		return nil, err
	}
	assetSvc, err := services.NewMediaAssetService(db, folderSvc)
	if err != nil {
		return nil, err
	}
	registerMediaRoutes(api, handlers.NewMediaFolderHandler(folderSvc), handlers.NewMediaAssetHandler(assetSvc, folderSvc))

	campaignSvc, err := services.NewCampaignService(db)
	if err != nil {
		return nil, err
	}
	registerCampaignRoutes(api, handlers.NewCampaignHandler(campaignSvc))

	emailSvc, err := services.NewEmailService(db)
	if err != nil {
		return nil, err
	}
	registerEmailRoutes(api, handlers.NewEmailHandler(emailSvc))

	brandSvc, err := services.NewBrandService(db)
	if err != nil {
		return nil, err
	}
	registerBrandRoutes(api, handlers.NewBrandHandler(brandSvc))

	monitoringSvc, err := services.NewMonitoringService(db, cfg.AVEWeights())
	if err != nil {
		return nil, err
	}
	registerMonitoringRoutes(api, handlers.NewMonitoringHandler(monitoringSvc))

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
