// Package handler exposes the analytics module's HTTP endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"leadops_backend/internal/analytics/service"
	"leadops_backend/platform/httpkit"
)

// Handler handles HTTP requests for reporting.
type Handler struct {
	svc *service.Service
}

// New creates a new analytics handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// DashboardStats returns the operational dashboard aggregates.
// GET /api/v1/analytics/dashboard
func (h *Handler) DashboardStats(c *gin.Context) {
	result, err := h.svc.DashboardStats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ROASReport returns the return-on-ad-spend analysis for a day range.
// GET /api/v1/analytics/roas?startDate=...&endDate=...
func (h *Handler) ROASReport(c *gin.Context) {
	result, err := h.svc.ROASReport(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
