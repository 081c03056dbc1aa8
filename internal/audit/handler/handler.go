// Package handler exposes the audit module's HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadops_backend/internal/audit/service"
	"leadops_backend/platform/httpkit"
)

// Handler handles HTTP requests for the audit trail.
type Handler struct {
	svc *service.Service
}

// New creates a new audit handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns the newest audit entries.
// GET /api/v1/audit?limit=100
func (h *Handler) List(c *gin.Context) {
	limit := service.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "limit must be an integer", nil)
			return
		}
		limit = parsed
	}

	result, err := h.svc.List(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
