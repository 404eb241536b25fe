package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/httpresp"
	"github.com/salonhub/salon-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List shows the owner what happened in their salon, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	query := h.db.Where("salon_id = ?", salon.ID)
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := query.Order("created_at desc").Limit(200).Find(&logs).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load audit logs.")
		return
	}

	httpresp.List(c, logs)
}
