package prompt

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	httpHandler "github.com/promptdeck/platform/backend/internal/http"
)

// Handler defines the HTTP handler for prompt operations
type Handler struct {
	service  Service
	response httpHandler.ResponseHandler
}

// NewHandler creates a new prompt handler
func NewHandler(service Service, response httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:  service,
		response: response,
	}
}

// RegisterRoutes registers the prompt API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/prompts", h.ListPrompts)
	router.GET("/prompts/:id", h.GetPrompt)
	router.POST("/prompts", h.CreatePrompt)
	router.PUT("/prompts/:id", h.UpdatePrompt)
	router.DELETE("/prompts/:id", h.DeletePrompt)
}

// ListPrompts returns a paginated list of prompts
func (h *Handler) ListPrompts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	options := FilterOptions{
		Page:  page,
		Limit: limit,
		Label: c.Query("label"),
	}

	prompts, err := h.service.ListPrompts(c.Request.Context(), options)
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to list prompts", err)
		return
	}
	h.response.SuccessResponse(c, prompts, "Prompts retrieved successfully")
}

// GetPrompt returns a single prompt
func (h *Handler) GetPrompt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_prompt_id", "Invalid prompt ID format", err)
		return
	}

	prompt, err := h.service.GetPrompt(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPromptNotFound) {
			h.response.NotFoundResponse(c, "Prompt not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to retrieve prompt", err)
		return
	}
	h.response.SuccessResponse(c, prompt, "Prompt retrieved successfully")
}

// CreatePrompt creates a new prompt
func (h *Handler) CreatePrompt(c *gin.Context) {
	var prompt Prompt
	if err := c.ShouldBindJSON(&prompt); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}

	if err := h.service.CreatePrompt(c.Request.Context(), &prompt); err != nil {
		if isValidationError(err) {
			h.response.ValidationErrorResponse(c, "prompt", err.Error())
			return
		}
		h.response.InternalErrorResponse(c, "Failed to create prompt", err)
		return
	}
	h.response.SuccessResponse(c, prompt, "Prompt created successfully")
}

// UpdatePrompt updates an existing prompt
func (h *Handler) UpdatePrompt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_prompt_id", "Invalid prompt ID format", err)
		return
	}

	var prompt Prompt
	if err := c.ShouldBindJSON(&prompt); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}
	prompt.ID = id

	if err := h.service.UpdatePrompt(c.Request.Context(), &prompt); err != nil {
		if errors.Is(err, ErrPromptNotFound) {
			h.response.NotFoundResponse(c, "Prompt not found")
			return
		}
		if isValidationError(err) {
			h.response.ValidationErrorResponse(c, "prompt", err.Error())
			return
		}
		h.response.InternalErrorResponse(c, "Failed to update prompt", err)
		return
	}
	h.response.SuccessResponse(c, prompt, "Prompt updated successfully")
}

// DeletePrompt soft-deletes a prompt
func (h *Handler) DeletePrompt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_prompt_id", "Invalid prompt ID format", err)
		return
	}

	if err := h.service.DeletePrompt(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPromptNotFound) {
			h.response.NotFoundResponse(c, "Prompt not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to delete prompt", err)
		return
	}
	h.response.SuccessResponse(c, nil, "Prompt deleted successfully")
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrContentRequired) ||
		errors.Is(err, ErrNameLength) ||
		errors.Is(err, ErrContentTooLarge)
}
