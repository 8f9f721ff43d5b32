package provider

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	httpHandler "github.com/promptdeck/platform/backend/internal/http"
)

// Handler defines the HTTP handler for provider operations
type Handler struct {
	service  Service
	response httpHandler.ResponseHandler
}

// NewHandler creates a new provider handler
func NewHandler(service Service, response httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:  service,
		response: response,
	}
}

// RegisterRoutes registers the provider API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/providers", h.ListProviders)
	router.GET("/providers/:id", h.GetProvider)
	router.POST("/providers", h.CreateProvider)
	router.PUT("/providers/:id", h.UpdateProvider)
	router.DELETE("/providers/:id", h.DeleteProvider)
	router.GET("/providers/:id/models", h.ListModels)
	router.POST("/providers/:id/models", h.CreateModel)
	router.DELETE("/models/:id", h.DeleteModel)
}

// ListProviders returns all canonical providers
func (h *Handler) ListProviders(c *gin.Context) {
	providers, err := h.service.ListProviders(c.Request.Context())
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to list providers", err)
		return
	}
	h.response.SuccessResponse(c, providers, "Providers retrieved successfully")
}

// GetProvider returns a single provider with its models
func (h *Handler) GetProvider(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_provider_id", "Invalid provider ID format", err)
		return
	}

	provider, err := h.service.GetProvider(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			h.response.NotFoundResponse(c, "Provider not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to retrieve provider", err)
		return
	}
	h.response.SuccessResponse(c, provider, "Provider retrieved successfully")
}

// CreateProvider creates a new canonical provider
func (h *Handler) CreateProvider(c *gin.Context) {
	var provider Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}

	if err := h.service.CreateProvider(c.Request.Context(), &provider); err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrTypeRequired) {
			h.response.ValidationErrorResponse(c, "provider", err.Error())
			return
		}
		h.response.InternalErrorResponse(c, "Failed to create provider", err)
		return
	}
	h.response.SuccessResponse(c, provider, "Provider created successfully")
}

// UpdateProvider updates an existing provider
func (h *Handler) UpdateProvider(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_provider_id", "Invalid provider ID format", err)
		return
	}

	var provider Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}
	provider.ID = id

	if err := h.service.UpdateProvider(c.Request.Context(), &provider); err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			h.response.NotFoundResponse(c, "Provider not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to update provider", err)
		return
	}
	h.response.SuccessResponse(c, provider, "Provider updated successfully")
}

// DeleteProvider removes a provider and its models
func (h *Handler) DeleteProvider(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_provider_id", "Invalid provider ID format", err)
		return
	}

	if err := h.service.DeleteProvider(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			h.response.NotFoundResponse(c, "Provider not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to delete provider", err)
		return
	}
	h.response.SuccessResponse(c, nil, "Provider deleted successfully")
}

// ListModels returns the models for a provider
func (h *Handler) ListModels(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_provider_id", "Invalid provider ID format", err)
		return
	}

	models, err := h.service.ListModels(c.Request.Context(), id)
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to list models", err)
		return
	}
	h.response.SuccessResponse(c, models, "Models retrieved successfully")
}

// CreateModel adds a model to a provider
func (h *Handler) CreateModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_provider_id", "Invalid provider ID format", err)
		return
	}

	var model Model
	if err := c.ShouldBindJSON(&model); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}
	model.ProviderID = id

	if err := h.service.CreateModel(c.Request.Context(), &model); err != nil {
		if errors.Is(err, ErrNameRequired) {
			h.response.ValidationErrorResponse(c, "name", err.Error())
			return
		}
		h.response.InternalErrorResponse(c, "Failed to create model", err)
		return
	}
	h.response.SuccessResponse(c, model, "Model created successfully")
}

// DeleteModel removes a model
func (h *Handler) DeleteModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_model_id", "Invalid model ID format", err)
		return
	}

	if err := h.service.DeleteModel(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrModelNotFound) {
			h.response.NotFoundResponse(c, "Model not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to delete model", err)
		return
	}
	h.response.SuccessResponse(c, nil, "Model deleted successfully")
}
