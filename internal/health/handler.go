package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the health endpoint
type Handler struct {
	db    Checker
	cache Checker
}

// NewHandler creates a new health handler
func NewHandler(db, cache Checker) *Handler {
	return &Handler{
		db:    db,
		cache: cache,
	}
}

// RegisterRoutes registers the health check route
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Check)
}

// Check reports the health of the service and its dependencies
func (h *Handler) Check(c *gin.Context) {
	status := http.StatusOK
	deps := gin.H{}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			deps["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			deps["database"] = "ok"
		}
	}

	if h.cache != nil {
		if err := h.cache.Ping(); err != nil {
			deps["cache"] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			deps["cache"] = "ok"
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
