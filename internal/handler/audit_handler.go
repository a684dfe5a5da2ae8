package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/middleware"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

type auditLogService interface {
	Recent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditLogHandler exposes the gateway's own mutation trail to admins.
type AuditLogHandler struct {
	service auditLogService
}

// NewAuditLogHandler constructs handler.
func NewAuditLogHandler(svc auditLogService) *AuditLogHandler {
	return &AuditLogHandler{service: svc}
}

// List godoc
// @Summary Recent audit entries
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (default 50, max 200)"
// @Success 200 {object} response.Envelope
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, invalidPayload(err, "limit must be a number"))
			return
		}
		limit = parsed
	}
	logs, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "count", len(logs))
	response.JSON(c, http.StatusOK, logs, middleware.ExtractMeta(c))
}
