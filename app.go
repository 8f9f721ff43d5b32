package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/promptdeck/platform/backend/internal/cache"
	"github.com/promptdeck/platform/backend/internal/catalog"
	"github.com/promptdeck/platform/backend/internal/config"
	"github.com/promptdeck/platform/backend/internal/database"
	"github.com/promptdeck/platform/backend/internal/events"
	httpHandler "github.com/promptdeck/platform/backend/internal/http"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/promptdeck/platform/backend/internal/logger"
	"github.com/promptdeck/platform/backend/internal/migration"
	"github.com/promptdeck/platform/backend/internal/prompt"
	"github.com/promptdeck/platform/backend/internal/provider"
	"github.com/promptdeck/platform/backend/internal/template"
	"gorm.io/gorm"
)

// App holds all application dependencies
type App struct {
	ctx    context.Context
	Config *config.Config
	db     *gorm.DB
	dbSvc  *database.DatabaseService
	cache  cache.Service
	events events.Publisher
	router *gin.Engine
	logger logger.Logger

	PromptService    prompt.Service
	ProviderService  provider.Service
	TemplateService  template.Service
	MigrationService migration.Service
}

// NewApp creates a new application instance with all dependencies
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	dbService := database.NewDatabaseService(&cfg.Database, log)
	db, err := dbService.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %v", err)
	}

	cacheService, err := cache.NewRedisService(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %v", err)
	}

	publisher, err := events.NewService(&events.Config{
		Enabled:           cfg.Events.Enabled,
		PulsarURL:         cfg.Events.PulsarURL,
		Topic:             cfg.Events.Topic,
		OperationTimeout:  cfg.Events.OperationTimeout,
		ConnectionTimeout: cfg.Events.ConnectionTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event publisher: %v", err)
	}

	exporter, err := migration.NewObjectStoreExporter(&cfg.Backup, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backup exporter: %v", err)
	}

	legacyRepo := legacy.NewRepository(db)
	providerService := provider.NewService(provider.NewRepository(db))
	promptService := prompt.NewService(prompt.NewRepository(db), &cfg.Prompt)
	templateService := template.NewService(template.NewRepository(db), cacheService, log, cfg.Template.CacheTTL)

	var snapshotExporter migration.SnapshotExporter
	if exporter != nil {
		snapshotExporter = exporter
	}
	migrationService := migration.NewOrchestrator(
		legacyRepo,
		providerService,
		migration.NewGormStore(db),
		catalog.NewBuiltinRegistry(),
		snapshotExporter,
		publisher,
		&cfg.Migration,
		log,
	)

	app := &App{
		ctx:              ctx,
		Config:           cfg,
		db:               db,
		dbSvc:            dbService,
		cache:            cacheService,
		events:           publisher,
		router:           gin.New(),
		logger:           log,
		PromptService:    promptService,
		ProviderService:  providerService,
		TemplateService:  templateService,
		MigrationService: migrationService,
	}

	app.setupRoutes(httpHandler.NewResponseHandler(log))
	return app, nil
}

// Run starts the HTTP server
func (a *App) Run() error {
	port := a.Config.Server.Port
	a.logger.LogInfo(fmt.Sprintf("Starting server on port %d", port), nil)
	if err := a.router.Run(fmt.Sprintf(":%d", port)); err != nil {
		return a.logger.LogError(err, "server failed to start")
	}
	return nil
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	a.logger.LogInfo("Initiating graceful shutdown", nil)

	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.LogWarn("Error closing event publisher", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.LogWarn("Error closing cache connections", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if a.dbSvc != nil {
		if err := a.dbSvc.Close(); err != nil {
			a.logger.LogWarn("Error closing database connections", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	a.logger.LogInfo("Application shutdown complete", nil)
	return nil
}
