package handler

import (
	auditapp "github.com/camposanto/backend/internal/application/audit"
	"github.com/gin-gonic/gin"
)

// AuditHandler handles the audit trail endpoints
type AuditHandler struct {
	BaseHandler
	trailService *auditapp.TrailService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(trailService *auditapp.TrailService) *AuditHandler {
	return &AuditHandler{trailService: trailService}
}

// List godoc
// @Summary      List audit records
// @Tags         audit
// @Security     BearerAuth
// @Router       /audit-records [get]
func (h *AuditHandler) List(c *gin.Context) {
	scope, ok := h.operationScope(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.trailService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
