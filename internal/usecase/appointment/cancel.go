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

type CancelAppointmentInput struct {
	AppointmentID uint
	Actor         domain.Actor
}

type CancelAppointment struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier notify.Notifier,
	auditDispatcher *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
		now:      timezone.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeSalonNotFound)
	}

	now := uc.now().In(timezone.Location(salon.Timezone))

	switch {
	case in.Actor.IsCustomer():
		if ap.CustomerID != in.Actor.UserID {
			return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
		}

		// customers cancel only outside the cancellation window;
		// the salon side is never bound by it
		cfg, err := uc.repo.GetBookingSettings(ctx, ap.SalonID)
		if err != nil {
			return nil, err
		}
		settings := domain.ResolveBookingSettings(cfg)

		cutoff := now.Add(time.Duration(settings.CancellationHours) * time.Hour)
		if cutoff.After(ap.StartAt) {
			return nil, httperr.ErrBusiness(httperr.CodeCancellationWindow)
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
		// admins moderate everything

	default:
		return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
	}

	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// tell the counterparty
	target := ap.CustomerID
	if in.Actor.IsCustomer() {
		target = salon.OwnerID
	}
	uc.notifier.Dispatch(notify.Event{
		UserID:        target,
		AppointmentID: ap.ID,
		Type:          notify.TypeCancelled,
		Message:       fmt.Sprintf("Appointment on %s at %s was cancelled", ap.Date.Format(dateLayout), ap.Time),
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &in.Actor.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
