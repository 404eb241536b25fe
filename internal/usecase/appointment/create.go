package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-scheduler/internal/audit"
	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/models"
	"github.com/salonhub/salon-scheduler/internal/notify"
	"github.com/salonhub/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID uint
	SalonID    uint
	ServiceID  uint
	StaffID    *uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM, grid-aligned
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier notify.Notifier,
	auditDispatcher *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
		now:      timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeSalonNotFound)
	}

	loc := timezone.Location(salon.Timezone)

	date, err := time.ParseInLocation(dateLayout, in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	now := uc.now().In(loc)
	today := startOfDay(now)

	cfg, err := uc.repo.GetBookingSettings(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	settings := domain.ResolveBookingSettings(cfg)

	if err := checkBookingWindow(date, today, settings); err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	if svc.DurationMin <= 0 || svc.Price <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidService)
	}

	hours, err := uc.repo.ListOperatingHours(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	day := domain.ResolveDayHours(hours, date.Weekday())
	if day.Closed {
		return nil, httperr.ErrBusiness(httperr.CodeSalonClosed)
	}

	// the requested time must be a grid label, and the run it anchors must
	// not spill past closing
	grid := domain.GenerateTimeSlots(day.Open, day.Close, settings.SlotInterval)
	idx := labelIndex(grid, in.Time)
	if idx < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	blocks := domain.BlocksNeeded(svc.DurationMin, settings.SlotInterval)
	if idx+blocks > len(grid) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	startAt, err := domain.CombineDateTime(date, in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}
	endAt := startAt.Add(time.Duration(blocks*settings.SlotInterval) * time.Minute)

	if cutoff := sameDayCutoff(date, today, now, settings); cutoff != nil && startAt.Before(*cutoff) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	if in.StaffID != nil {
		if _, err := uc.repo.GetStaff(ctx, in.SalonID, *in.StaffID); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeStaffNotFound)
		}
	}

	ap := &models.Appointment{
		Code:        uuid.NewString(),
		CustomerID:  in.CustomerID,
		SalonID:     in.SalonID,
		ServiceID:   svc.ID,
		StaffID:     in.StaffID,
		Date:        date,
		Time:        in.Time,
		DurationMin: svc.DurationMin,
		StartAt:     startAt,
		EndAt:       endAt,
		Status:      string(domain.InitialStatus()),
		Amount:      svc.Price - svc.Discount,
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notify.Event{
		UserID:        salon.OwnerID,
		AppointmentID: ap.ID,
		Type:          notify.TypeCreated,
		Message:       fmt.Sprintf("New booking: %s on %s at %s", svc.Name, in.Date, in.Time),
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.CustomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
