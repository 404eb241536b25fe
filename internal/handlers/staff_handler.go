package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/httpresp"
	"github.com/salonhub/salon-scheduler/internal/models"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// ListBySalon lists a salon's active staff so customers can pick one when
// booking.
func (h *StaffHandler) ListBySalon(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "salon id must be numeric.")
		return
	}

	var staff []models.Staff
	if err := h.db.
		Where("salon_id = ? AND active = true", salonID).
		Order("name asc").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load staff.")
		return
	}

	httpresp.List(c, staff)
}

// --------- Owner ---------

type StaffRequest struct {
	UserID         uint   `json:"user_id"`
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization"`
	Active         *bool  `json:"active"`
}

func (h *StaffHandler) ListMine(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	var staff []models.Staff
	if err := h.db.
		Where("salon_id = ?", salon.ID).
		Order("name asc").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	if req.UserID != 0 {
		var count int64
		h.db.Model(&models.User{}).Where("id = ?", req.UserID).Count(&count)
		if count == 0 {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "user_id does not exist.")
			return
		}
	}

	member := models.Staff{
		SalonID:        salon.ID,
		UserID:         req.UserID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Active:         true,
	}
	if req.Active != nil {
		member.Active = *req.Active
	}

	if err := h.db.Create(&member).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not create staff member.")
		return
	}

	httpresp.Created(c, member)
}

func (h *StaffHandler) Update(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	var member models.Staff
	if err := h.db.Where("id = ? AND salon_id = ?", id, salon.ID).First(&member).Error; err != nil {
		httperr.NotFound(c, httperr.CodeStaffNotFound, "Staff member not found.")
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	member.Name = req.Name
	member.Specialization = req.Specialization
	if req.UserID != 0 {
		member.UserID = req.UserID
	}
	if req.Active != nil {
		member.Active = *req.Active
	}

	if err := h.db.Save(&member).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update staff member.")
		return
	}

	httpresp.OK(c, member)
}

// Delete deactivates the member; past appointments keep the reference.
func (h *StaffHandler) Delete(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	res := h.db.Model(&models.Staff{}).
		Where("id = ? AND salon_id = ?", id, salon.ID).
		Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "internal_error", "Could not deactivate staff member.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, httperr.CodeStaffNotFound, "Staff member not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
