// Package handler exposes the ad-spend module's HTTP endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadops_backend/internal/adspend/service"
	"leadops_backend/internal/adspend/transport"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// SpendPullScheduler enqueues an out-of-band spend pull for one day.
type SpendPullScheduler interface {
	EnqueueAdSpendPull(ctx context.Context, day string) error
}

// Handler handles HTTP requests for the ad-spend ledger.
type Handler struct {
	svc  *service.Service
	val  *validator.Validator
	pull SpendPullScheduler
}

// New creates a new ad-spend handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SetSpendPullScheduler enables the manual re-pull endpoint.
func (h *Handler) SetSpendPullScheduler(pull SpendPullScheduler) {
	h.pull = pull
}

// SetAdCost merges a manual spend correction.
// PUT /api/v1/ad-costs
func (h *Handler) SetAdCost(c *gin.Context) {
	var req transport.SetAdCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SetAdCost(c.Request.Context(), req); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}

// ListCosts returns ledger cells for a day range.
// GET /api/v1/ad-costs?startDate=...&endDate=...
func (h *Handler) ListCosts(c *gin.Context) {
	startDay := c.Query("startDate")
	endDay := c.Query("endDate")

	result, err := h.svc.ListCosts(c.Request.Context(), startDay, endDay)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetCredentials stores API credentials for an ad platform.
// PUT /api/v1/ad-costs/credentials
func (h *Handler) SetCredentials(c *gin.Context) {
	var req transport.SetCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SetCredentials(c.Request.Context(), req.Provider, req.Credentials); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}

// PullSpend queues an immediate provider pull for one day.
// POST /api/v1/ad-costs/pull
func (h *Handler) PullSpend(c *gin.Context) {
	if h.pull == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "spend pull scheduler not configured", nil)
		return
	}

	var req transport.PullSpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.pull.EnqueueAdSpendPull(c.Request.Context(), req.Day); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}

// ClearCredentials removes stored API credentials.
// DELETE /api/v1/ad-costs/credentials
func (h *Handler) ClearCredentials(c *gin.Context) {
	var req transport.ClearCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.ClearCredentials(c.Request.Context(), req.Provider); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}
