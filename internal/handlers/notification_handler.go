package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/httpresp"
	"github.com/salonhub/salon-scheduler/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List returns the caller's notifications, newest first. ?unread=true
// filters to unread only.
func (h *NotificationHandler) List(c *gin.Context) {
	actor := actorFromContext(c)

	query := h.db.Where("user_id = ?", actor.UserID)
	if c.Query("unread") == "true" {
		query = query.Where("read = false")
	}

	var items []models.Notification
	if err := query.Order("created_at desc").Limit(100).Find(&items).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load notifications.")
		return
	}

	httpresp.List(c, items)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor := actorFromContext(c)

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	now := time.Now()
	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, actor.UserID).
		Updates(map[string]any{"read": true, "read_at": now})
	if res.Error != nil {
		httperr.Internal(c, "internal_error", "Could not mark notification read.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor := actorFromContext(c)

	now := time.Now()
	if err := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = false", actor.UserID).
		Updates(map[string]any{"read": true, "read_at": now}).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not mark notifications read.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
