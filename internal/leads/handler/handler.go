// Package handler exposes the leads module's HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadops_backend/internal/leads/service"
	"leadops_backend/internal/leads/transport"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) submission(c *gin.Context) service.Submission {
	return service.Submission{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// Create stores an inbound contact submission.
// POST /api/public/leads
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateLead(c.Request.Context(), req, h.submission(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Postback accepts submissions from form builders that can only fire a
// query-string or form-encoded callback.
// GET|POST /api/public/leads/postback
func (h *Handler) Postback(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateLead(c.Request.Context(), req, h.submission(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a batch of leads.
// DELETE /api/v1/leads
func (h *Handler) Delete(c *gin.Context) {
	var req transport.BatchIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.DeleteLeads(c.Request.Context(), httpkit.GetIdentity(c).Identifier(), req.IDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// MarkDownloaded bumps download counters for a batch of leads.
// POST /api/v1/leads/downloads
func (h *Handler) MarkDownloaded(c *gin.Context) {
	var req transport.BatchIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.IncrementDownloads(c.Request.Context(), httpkit.GetIdentity(c).Identifier(), req.IDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateMemo replaces the memo on a lead.
// PUT /api/v1/leads/memo
func (h *Handler) UpdateMemo(c *gin.Context) {
	var req transport.UpdateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.UpdateMemo(c.Request.Context(), httpkit.GetIdentity(c).Identifier(), req.LeadID, req.Memo, req.OldMemo)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}

// SetStatus toggles a boolean triage flag on a lead.
// PUT /api/v1/leads/status
func (h *Handler) SetStatus(c *gin.Context) {
	var req transport.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.SetStatus(c.Request.Context(), req.LeadID, req.Field, *req.Value)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}
