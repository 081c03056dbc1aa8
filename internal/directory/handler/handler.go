// Package handler exposes the directory module's HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadops_backend/internal/directory/service"
	"leadops_backend/internal/directory/transport"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the role directory.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new directory handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ResolveMyRole returns the caller's identifier and resolved role (or null).
// GET /api/v1/directory/me
func (h *Handler) ResolveMyRole(c *gin.Context) {
	result, err := h.svc.ResolveRole(c.Request.Context(), httpkit.GetIdentity(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListAdmins returns every directory entry with notification flags.
// GET /api/v1/directory/admins
func (h *Handler) ListAdmins(c *gin.Context) {
	result, err := h.svc.ListAdmins(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetRole grants or updates a role.
// POST /api/v1/directory/roles
func (h *Handler) SetRole(c *gin.Context) {
	var req transport.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SetRole(c.Request.Context(), req.Identifier, req.Role); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}

// RemoveRole revokes a directory entry.
// DELETE /api/v1/directory/roles
func (h *Handler) RemoveRole(c *gin.Context) {
	var req transport.RemoveRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.RemoveRole(c.Request.Context(), req.Identifier); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}

// SetNotificationPref flips one notification flag for an identifier.
// PUT /api/v1/directory/notifications
func (h *Handler) SetNotificationPref(c *gin.Context) {
	var req transport.SetNotificationPrefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SetNotificationPref(c.Request.Context(), req.Identifier, req.Field, *req.Value); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.Ack{OK: true})
}
