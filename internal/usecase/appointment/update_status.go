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

type UpdateStatusInput struct {
	AppointmentID uint
	Actor         domain.Actor
	NewStatus     string
}

type UpdateStatus struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	notifier notify.Notifier,
	auditDispatcher *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
		now:      timezone.Now,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	// status transitions are salon-driven; customers only cancel
	if !in.Actor.IsSalonSide() {
		return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeSalonNotFound)
	}

	if in.Actor.Role == domain.RoleOwner && salon.OwnerID != in.Actor.UserID {
		return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
	}

	// staff act only on salons they actually work for
	if in.Actor.Role == domain.RoleStaff {
		if _, err := uc.repo.GetStaffByUser(ctx, ap.SalonID, in.Actor.UserID); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
		}
	}

	now := uc.now().In(timezone.Location(salon.Timezone))

	switch domain.Status(in.NewStatus) {
	case domain.StatusAccepted:
		err = domain.Accept(ap, now)
	case domain.StatusRejected:
		err = domain.Reject(ap, now)
	case domain.StatusInProgress:
		err = domain.Start(ap, now)
	case domain.StatusCompleted:
		err = domain.Complete(ap, now)
	case domain.StatusNoShow:
		err = domain.MarkNoShow(ap, now)
	default:
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// accept and reject are the transitions the customer hears about
	switch domain.Status(ap.Status) {
	case domain.StatusAccepted:
		uc.notifier.Dispatch(notify.Event{
			UserID:        ap.CustomerID,
			AppointmentID: ap.ID,
			Type:          notify.TypeAccepted,
			Message:       fmt.Sprintf("Your appointment on %s at %s was accepted", ap.Date.Format(dateLayout), ap.Time),
		})
	case domain.StatusRejected:
		uc.notifier.Dispatch(notify.Event{
			UserID:        ap.CustomerID,
			AppointmentID: ap.ID,
			Type:          notify.TypeRejected,
			Message:       fmt.Sprintf("Your appointment on %s at %s was rejected", ap.Date.Format(dateLayout), ap.Time),
		})
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   &in.Actor.UserID,
		Action:   "appointment_" + ap.Status,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
