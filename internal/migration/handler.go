package migration

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/promptdeck/platform/backend/internal/errors"
	httpHandler "github.com/promptdeck/platform/backend/internal/http"
	"github.com/promptdeck/platform/backend/internal/legacy"
)

// Handler defines the HTTP handler for migration operations
type Handler struct {
	service  Service
	response httpHandler.ResponseHandler
}

// NewHandler creates a new migration handler
func NewHandler(service Service, response httpHandler.ResponseHandler) *Handler {
	return &Handler{
		service:  service,
		response: response,
	}
}

// RegisterRoutes registers the migration API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/migration")
	group.POST("/plans", h.CreatePlan)
	group.GET("/plans", h.ListPlans)
	group.GET("/plans/:id", h.GetPlan)
	group.POST("/plans/:id/execute", h.ExecutePlan)
	group.GET("/plans/:id/progress", h.GetProgress)
	group.GET("/plans/:id/results", h.ListResults)
	group.POST("/plans/:id/rollback", h.Rollback)
	group.POST("/compatibility", h.CheckCompatibility)
}

// CreatePlan analyzes pending legacy records and returns a new plan
func (h *Handler) CreatePlan(c *gin.Context) {
	plan, err := h.service.CreatePlan(c.Request.Context())
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to create migration plan", err)
		return
	}
	h.response.SuccessResponse(c, plan, "Migration plan created successfully")
}

// ListPlans returns all persisted plans
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to list migration plans", err)
		return
	}
	h.response.SuccessResponse(c, plans, "Migration plans retrieved successfully")
}

// GetPlan returns a single plan by id
func (h *Handler) GetPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_plan_id", "Invalid plan ID format", err)
		return
	}

	plan, err := h.service.GetPlan(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			h.response.NotFoundResponse(c, "Migration plan not found")
			return
		}
		h.response.InternalErrorResponse(c, "Failed to retrieve migration plan", err)
		return
	}
	h.response.SuccessResponse(c, plan, "Migration plan retrieved successfully")
}

// ExecutePlan runs a plan with the posted options. The result is returned
// even for failed runs so operators can inspect partial outcomes.
func (h *Handler) ExecutePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_plan_id", "Invalid plan ID format", err)
		return
	}

	var opts ExecuteOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}

	result, err := h.service.ExecutePlan(c.Request.Context(), id, opts)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound):
			h.response.NotFoundResponse(c, "Migration plan not found")
		case errors.Is(err, ErrPlanRunning):
			h.response.ConflictResponse(c, "An execution for this plan is already running")
		default:
			var validationErr *apperrors.ValidationError
			if errors.As(err, &validationErr) {
				h.response.ValidationErrorResponse(c, validationErr.Field, validationErr.Message)
				return
			}
			if result != nil {
				// Infrastructure failure with a partial result: surface both.
				c.JSON(http.StatusInternalServerError, httpHandler.Response{
					Success: false,
					Message: err.Error(),
					Data:    result,
				})
				return
			}
			h.response.InternalErrorResponse(c, "Migration execution failed", err)
		}
		return
	}
	h.response.SuccessResponse(c, result, "Migration execution finished")
}

// GetProgress returns the live progress of a running execution
func (h *Handler) GetProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_plan_id", "Invalid plan ID format", err)
		return
	}

	progress := h.service.GetProgress(c.Request.Context(), id)
	if progress == nil {
		h.response.NotFoundResponse(c, "No execution in progress for this plan")
		return
	}
	h.response.SuccessResponse(c, progress, "Migration progress retrieved successfully")
}

// ListResults returns every execution attempt for a plan, newest first
func (h *Handler) ListResults(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_plan_id", "Invalid plan ID format", err)
		return
	}

	results, err := h.service.ListResults(c.Request.Context(), id)
	if err != nil {
		h.response.InternalErrorResponse(c, "Failed to list migration results", err)
		return
	}
	h.response.SuccessResponse(c, results, "Migration results retrieved successfully")
}

// Rollback restores the plan's backup and undoes created resources
func (h *Handler) Rollback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_plan_id", "Invalid plan ID format", err)
		return
	}

	outcome, err := h.service.Rollback(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanRunning):
			h.response.ConflictResponse(c, "Cannot roll back while an execution is running")
		case errors.Is(err, ErrNoBackup):
			h.response.NotFoundResponse(c, "No backup exists for this plan")
		case errors.Is(err, ErrBackupConsumed):
			h.response.ConflictResponse(c, "The backup for this plan was already used by a previous rollback")
		default:
			h.response.InternalErrorResponse(c, "Rollback failed", err)
		}
		return
	}
	h.response.SuccessResponse(c, outcome, "Rollback finished")
}

// CheckCompatibility runs the advisory pre-flight check on a posted record
func (h *Handler) CheckCompatibility(c *gin.Context) {
	var record legacy.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		h.response.ErrorResponse(c, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return
	}

	report := h.service.CheckCompatibility(c.Request.Context(), &record)
	h.response.SuccessResponse(c, report, "Compatibility check complete")
}
