package schedule

import (
	"time"

	"github.com/salonhub/salon-scheduler/internal/models"
)

// ===============================
// Domain actions
// ===============================
//
// Each action checks the transition guard first and mutates the entity
// only when the guard passes; a failed guard leaves it untouched.

func Accept(ap *models.Appointment, now time.Time) error {
	if err := CanAccept(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusAccepted)
	ap.AcceptedAt = &now
	return nil
}

func Reject(ap *models.Appointment, now time.Time) error {
	if err := CanReject(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	return nil
}

func Start(ap *models.Appointment, now time.Time) error {
	if err := CanStart(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	ap.StartedAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	ap.NoShowAt = &now
	return nil
}

// Reschedule moves the appointment to a new slot-run. Status and identity
// are unchanged; the caller must have validated the new slot and checked
// conflicts (excluding this appointment) beforehand.
func Reschedule(ap *models.Appointment, date time.Time, label string, startAt, endAt time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.Date = date
	ap.Time = label
	ap.StartAt = startAt
	ap.EndAt = endAt
	return nil
}
