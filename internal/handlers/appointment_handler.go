package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/httpresp"
	"github.com/salonhub/salon-scheduler/internal/models"
	"github.com/salonhub/salon-scheduler/internal/timezone"
	usecase "github.com/salonhub/salon-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db *gorm.DB

	create       *usecase.CreateAppointment
	updateStatus *usecase.UpdateStatus
	cancel       *usecase.CancelAppointment
	reschedule   *usecase.RescheduleAppointment
	listByDate   *usecase.ListAppointmentsByDate
	listByMonth  *usecase.ListAppointmentsByMonth
	summary      *usecase.GetAppointmentSummary

	repo domain.Repository
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *usecase.CreateAppointment,
	updateStatus *usecase.UpdateStatus,
	cancel *usecase.CancelAppointment,
	reschedule *usecase.RescheduleAppointment,
	listByDate *usecase.ListAppointmentsByDate,
	listByMonth *usecase.ListAppointmentsByMonth,
	summary *usecase.GetAppointmentSummary,
	repo domain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		create:       create,
		updateStatus: updateStatus,
		cancel:       cancel,
		reschedule:   reschedule,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		summary:      summary,
		repo:         repo,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	SalonID   uint   `json:"salon_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	StaffID   *uint  `json:"staff_id"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	actor := actorFromContext(c)

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		CustomerID: actor.UserID,
		SalonID:    req.SalonID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	ap, err := h.repo.GetAppointmentByID(c.Request.Context(), id)
	if err != nil {
		httperr.NotFound(c, httperr.CodeAppointmentNotFound, "Appointment not found.")
		return
	}

	actor := actorFromContext(c)
	if !canView(c, h.db, actor, ap) {
		httperr.Forbidden(c, httperr.CodeNotAllowed, "You are not allowed to view this appointment.")
		return
	}

	httpresp.OK(c, ap)
}

// ListMine returns the authenticated customer's bookings, newest first.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	actor := actorFromContext(c)

	appts, err := h.repo.ListAppointmentsForCustomer(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load appointments.")
		return
	}

	httpresp.List(c, appts)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), usecase.UpdateStatusInput{
		AppointmentID: id,
		Actor:         actorFromContext(c),
		NewStatus:     req.Status,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// NoShow is a shorthand for the no-show transition.
func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), usecase.UpdateStatusInput{
		AppointmentID: id,
		Actor:         actorFromContext(c),
		NewStatus:     string(domain.StatusNoShow),
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), usecase.CancelAppointmentInput{
		AppointmentID: id,
		Actor:         actorFromContext(c),
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be numeric.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleAppointmentInput{
		AppointmentID: id,
		Actor:         actorFromContext(c),
		NewDate:       req.Date,
		NewTime:       req.Time,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ListByDate is the owner's day agenda: GET /api/me/salon/appointments?date=
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "date is required (YYYY-MM-DD).")
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), salon.ID, date)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ListByMonth is the owner's calendar view: ?year=&month=
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "year is required.")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "month must be 1-12.")
		return
	}

	items, err := h.listByMonth.Execute(c.Request.Context(), salon.ID, year, month)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.List(c, items)
}

// Summary is the owner's dashboard count per status.
func (h *AppointmentHandler) Summary(c *gin.Context) {
	actor := actorFromContext(c)

	salon, err := salonForOwner(h.db, actor.UserID)
	if err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "You do not manage a salon.")
		return
	}

	out, err := h.summary.Execute(c.Request.Context(), salon.ID)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"as_of":  timezone.NowIn(salon.Timezone),
		"counts": out,
	})
}

// --------- helpers ---------

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}

func canView(c *gin.Context, db *gorm.DB, actor domain.Actor, ap *models.Appointment) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.IsCustomer():
		return ap.CustomerID == actor.UserID
	case actor.Role == domain.RoleOwner:
		salon, err := salonForOwner(db, actor.UserID)
		return err == nil && salon.ID == ap.SalonID
	case actor.Role == domain.RoleStaff:
		var count int64
		db.Model(&models.Staff{}).
			Where("user_id = ? AND salon_id = ?", actor.UserID, ap.SalonID).
			Count(&count)
		return count > 0
	}
	return false
}
