package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/salonhub/salon-scheduler/internal/audit"
	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/models"
	"github.com/salonhub/salon-scheduler/internal/notify"
	"github.com/salonhub/salon-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	AppointmentID uint
	Actor         domain.Actor

	NewDate string // YYYY-MM-DD
	NewTime string // HH:MM
}

type RescheduleAppointment struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	notifier notify.Notifier,
	auditDispatcher *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
		now:      timezone.Now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeSalonNotFound)
	}

	switch {
	case in.Actor.IsCustomer():
		if ap.CustomerID != in.Actor.UserID {
			return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
		}
	case in.Actor.Role == domain.RoleOwner:
		if salon.OwnerID != in.Actor.UserID {
			return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
		}
	case in.Actor.Role == domain.RoleStaff:
		if _, err := uc.repo.GetStaffByUser(ctx, ap.SalonID, in.Actor.UserID); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
		}
	case in.Actor.IsAdmin():
	default:
		return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	date, err := time.ParseInLocation(dateLayout, in.NewDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	now := uc.now().In(loc)
	today := startOfDay(now)

	cfg, err := uc.repo.GetBookingSettings(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}
	settings := domain.ResolveBookingSettings(cfg)

	if err := checkBookingWindow(date, today, settings); err != nil {
		return nil, err
	}

	hours, err := uc.repo.ListOperatingHours(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}

	day := domain.ResolveDayHours(hours, date.Weekday())
	if day.Closed {
		return nil, httperr.ErrBusiness(httperr.CodeSalonClosed)
	}

	// the service duration was frozen at booking time; the grid uses the
	// salon's current slot interval
	grid := domain.GenerateTimeSlots(day.Open, day.Close, settings.SlotInterval)
	idx := labelIndex(grid, in.NewTime)
	if idx < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	blocks := domain.BlocksNeeded(ap.DurationMin, settings.SlotInterval)
	if idx+blocks > len(grid) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	startAt, err := domain.CombineDateTime(date, in.NewTime, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}
	endAt := startAt.Add(time.Duration(blocks*settings.SlotInterval) * time.Minute)

	if cutoff := sameDayCutoff(date, today, now, settings); cutoff != nil && startAt.Before(*cutoff) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	if err := domain.Reschedule(ap, date, in.NewTime, startAt, endAt); err != nil {
		return nil, err
	}

	if err := uc.repo.RescheduleAppointment(ctx, ap); err != nil {
		return nil, err
	}

	target := ap.CustomerID
	if in.Actor.IsCustomer() {
		target = salon.OwnerID
	}
	uc.notifier.Dispatch(notify.Event{
		UserID:        target,
		AppointmentID: ap.ID,
		Type:          notify.TypeRescheduled,
		Message:       fmt.Sprintf("Appointment moved to %s at %s", in.NewDate, in.NewTime),
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &in.Actor.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
