package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/httpresp"
	"github.com/salonhub/salon-scheduler/internal/models"
	"github.com/salonhub/salon-scheduler/internal/timezone"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

// --------- Public ---------

func (h *SalonHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Salon{})

	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if loc := c.Query("location"); loc != "" {
		query = query.Where("location ILIKE ?", "%"+loc+"%")
	}

	var salons []models.Salon
	if err := query.Order("name asc").Find(&salons).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not load salons.")
		return
	}

	httpresp.List(c, salons)
}

// Get resolves a salon by numeric id or slug.
func (h *SalonHandler) Get(c *gin.Context) {
	ref := c.Param("id")

	var salon models.Salon
	var err error
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		err = h.db.First(&salon, id).Error
	} else {
		err = h.db.Where("slug = ?", ref).First(&salon).Error
	}
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "Salon not found.")
		return
	}

	var hours []models.OperatingHours
	h.db.Where("salon_id = ?", salon.ID).Order("weekday asc").Find(&hours)

	var services []models.Service
	h.db.Where("salon_id = ? AND active = true", salon.ID).Order("name asc").Find(&services)

	httpresp.OK(c, gin.H{
		"salon":           salon,
		"operating_hours": hours,
		"services":        services,
	})
}

// --------- Owner ---------

type UpdateSalonRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Type     *string `json:"type"`
	Timezone *string `json:"timezone"`
}

func (h *SalonHandler) GetMine(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	httpresp.OK(c, salon)
}

func (h *SalonHandler) UpdateMine(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Location != nil {
		salon.Location = *req.Location
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Email != nil {
		salon.Email = *req.Email
	}
	if req.Type != nil {
		if *req.Type != "men" && *req.Type != "women" && *req.Type != "unisex" {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "type must be men, women or unisex.")
			return
		}
		salon.Type = *req.Type
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "timezone is not a valid IANA name.")
			return
		}
		salon.Timezone = *req.Timezone
	}

	if err := h.db.Save(salon).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not update salon.")
		return
	}

	httpresp.OK(c, salon)
}

// --------- Operating hours ---------

type OperatingHoursEntry struct {
	Weekday int    `json:"weekday" binding:"min=0,max=6"`
	Open    string `json:"open"`
	Close   string `json:"close"`
	Closed  bool   `json:"closed"`
}

type PutOperatingHoursRequest struct {
	Days []OperatingHoursEntry `json:"days" binding:"required,dive"`
}

// PutOperatingHours replaces the configured rows wholesale. Days left out
// of the payload lose their row and fall back to the default window.
func (h *SalonHandler) PutOperatingHours(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	var req PutOperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	seen := map[int]bool{}
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "duplicate weekday in payload.")
			return
		}
		seen[d.Weekday] = true

		if !d.Closed {
			if !validHHMM(d.Open) || !validHHMM(d.Close) || d.Open >= d.Close {
				httperr.BadRequest(c, httperr.CodeInvalidRequest, "open/close must be HH:MM with open before close.")
				return
			}
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salon_id = ?", salon.ID).Delete(&models.OperatingHours{}).Error; err != nil {
			return err
		}
		for _, d := range req.Days {
			row := models.OperatingHours{
				SalonID: salon.ID,
				Weekday: d.Weekday,
				Open:    d.Open,
				Close:   d.Close,
				Closed:  d.Closed,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not save operating hours.")
		return
	}

	var hours []models.OperatingHours
	h.db.Where("salon_id = ?", salon.ID).Order("weekday asc").Find(&hours)

	httpresp.List(c, hours)
}

// --------- Booking settings ---------

type PutBookingSettingsRequest struct {
	MinAdvanceBookingHours *int  `json:"min_advance_booking_hours" binding:"omitempty,min=0"`
	MaxAdvanceBookingDays  *int  `json:"max_advance_booking_days" binding:"omitempty,min=1"`
	SlotInterval           *int  `json:"slot_interval" binding:"omitempty,oneof=15 30 60"`
	AllowSameDayBooking    *bool `json:"allow_same_day_booking"`
	CancellationHours      *int  `json:"cancellation_hours" binding:"omitempty,min=0"`
}

func (h *SalonHandler) GetBookingSettings(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	var settings models.BookingSettings
	if err := h.db.Where("salon_id = ?", salon.ID).First(&settings).Error; err != nil {
		// never configured: an empty row renders as all-null, meaning
		// defaults apply
		settings = models.BookingSettings{SalonID: salon.ID}
	}

	httpresp.OK(c, settings)
}

// PutBookingSettings upserts the salon's policy row. Null fields keep the
// system defaults.
func (h *SalonHandler) PutBookingSettings(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	var req PutBookingSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	var settings models.BookingSettings
	err = h.db.Where("salon_id = ?", salon.ID).First(&settings).Error
	if err != nil {
		settings = models.BookingSettings{SalonID: salon.ID}
	}

	settings.MinAdvanceBookingHours = req.MinAdvanceBookingHours
	settings.MaxAdvanceBookingDays = req.MaxAdvanceBookingDays
	settings.SlotInterval = req.SlotInterval
	settings.AllowSameDayBooking = req.AllowSameDayBooking
	settings.CancellationHours = req.CancellationHours

	if err := h.db.Save(&settings).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not save booking settings.")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func validHHMM(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hh := s[0:2]
	mm := s[3:5]
	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	return err1 == nil && err2 == nil && h >= 0 && h <= 23 && m >= 0 && m <= 59
}
