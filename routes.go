package main

import (
	"github.com/gin-gonic/gin"
	"github.com/promptdeck/platform/backend/internal/health"
	httpHandler "github.com/promptdeck/platform/backend/internal/http"
	"github.com/promptdeck/platform/backend/internal/http/middleware"
	"github.com/promptdeck/platform/backend/internal/migration"
	"github.com/promptdeck/platform/backend/internal/prompt"
	"github.com/promptdeck/platform/backend/internal/provider"
	"github.com/promptdeck/platform/backend/internal/template"
)

// setupRoutes configures middleware and all API routes
func (a *App) setupRoutes(response httpHandler.ResponseHandler) {
	a.router.Use(gin.Recovery())
	a.router.Use(middleware.RequestID())
	a.router.Use(middleware.RequestLogger(a.logger))

	healthHandler := health.NewHandler(a.dbSvc, a.cache)
	healthHandler.RegisterRoutes(a.router)

	api := a.router.Group("/api/v1")

	prompt.NewHandler(a.PromptService, response).RegisterRoutes(api)
	provider.NewHandler(a.ProviderService, response).RegisterRoutes(api)
	template.NewHandler(a.TemplateService, response).RegisterRoutes(api)
	migration.NewHandler(a.MigrationService, response).RegisterRoutes(api)
}
