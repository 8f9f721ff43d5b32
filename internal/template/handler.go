package template

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	httpHandler "github.com/promptdeck/platform/backend/internal/http"
)

// Handler defines the HTTP handler for template operations
type Handler struct {
	service  Service
	response httpHandler.ResponseHandler
}

// NewHandler creates a new template handler
func NewHandler(service Service, response httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:  service,
		response: response,
	}
}

// RegisterRoutes registers the template API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/templates", h.ListTemplates)
	router.GET("/templates/:id", h.GetTemplate)
	router.POST("/templates", h.CreateTemplate)
	router.PUT("/templates/:id", h.UpdateTemplate)
	router.DELETE("/templates/:id", h.DeleteTemplate)
	router.POST("/templates/:id/render", h.RenderTemplate)
}

// ListTemplates returns all templates
func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to list templates", err)
		return
	}
	h.response.SuccessResponse(c, templates, "Templates retrieved successfully")
}

// GetTemplate returns a single template
func (h *Handler) GetTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_template_id", "Invalid template ID format", err)
		return
	}

	template, err := h.service.GetTemplate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			h.response.NotFoundResponse(c, "Template not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to retrieve template", err)
		return
	}
	h.response.SuccessResponse(c, template, "Template retrieved successfully")
}

// CreateTemplate creates a new template
func (h *Handler) CreateTemplate(c *gin.Context) {
	var template Template
	if err := c.ShouldBindJSON(&template); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}

	if err := h.service.CreateTemplate(c.Request.Context(), &template); err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrBodyRequired) {
			h.response.ValidationErrorResponse(c, "template", err.Error())
			return
		}
		h.response.InternalErrorResponse(c, "Failed to create template", err)
		return
	}
	h.response.SuccessResponse(c, template, "Template created successfully")
}

// UpdateTemplate updates an existing template
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_template_id", "Invalid template ID format", err)
		return
	}

	var template Template
	if err := c.ShouldBindJSON(&template); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}
	template.ID = id

	if err := h.service.UpdateTemplate(c.Request.Context(), &template); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			h.response.NotFoundResponse(c, "Template not found")
			return
		}
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrBodyRequired) {
			h.response.ValidationErrorResponse(c, "template", err.Error())
			return
		}
		h.response.InternalErrorResponse(c, "Failed to update template", err)
		return
	}
	h.response.SuccessResponse(c, template, "Template updated successfully")
}

// DeleteTemplate removes a template
func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_template_id", "Invalid template ID format", err)
		return
	}

	if err := h.service.DeleteTemplate(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			h.response.NotFoundResponse(c, "Template not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to delete template", err)
		return
	}
	h.response.SuccessResponse(c, nil, "Template deleted successfully")
}

// RenderTemplate renders a template with the supplied variables
func (h *Handler) RenderTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_template_id", "Invalid template ID format", err)
		return
	}

	var request struct {
		Variables map[string]string `json:"variables"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}

	rendered, err := h.service.Render(c.Request.Context(), id, request.Variables)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			h.response.NotFoundResponse(c, "Template not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to render template", err)
		return
	}
	h.response.SuccessResponse(c, gin.H{"rendered": rendered}, "Template rendered successfully")
}
