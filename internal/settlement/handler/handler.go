// Package handler exposes the settlement module's HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadops_backend/internal/settlement/service"
	"leadops_backend/internal/settlement/transport"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for settlement.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new settlement handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Calculate returns the settlement statement for a day range.
// GET /api/v1/settlement?startDate=...&endDate=...
func (h *Handler) Calculate(c *gin.Context) {
	result, err := h.svc.Calculate(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetConfig returns the per-year unit cost configuration.
// GET /api/v1/settlement/config
func (h *Handler) GetConfig(c *gin.Context) {
	result, err := h.svc.GetConfig(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetCost sets the per-lead unit cost for one year.
// PUT /api/v1/settlement/config
func (h *Handler) SetCost(c *gin.Context) {
	var req transport.SetCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SetCost(c.Request.Context(), req.Year, *req.Cost); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}
