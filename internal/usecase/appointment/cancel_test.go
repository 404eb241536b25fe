package appointment

import (
	"context"
	"testing"

	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/models"
	"github.com/salonhub/salon-scheduler/internal/notify"
)

func newCancelUC(repo *fakeRepo, notifier *fakeNotifier) *CancelAppointment {
	uc := NewCancelAppointment(repo, notifier, nopAudit())
	uc.now = fixedClock
	return uc
}

var customerActor = domain.Actor{UserID: 100, Role: domain.RoleCustomer}

func TestCancelByCustomerOutsideWindow(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	id := bookFixture(t, repo, notifier) // 2026-09-10, well past the 24h window

	uc := newCancelUC(repo, notifier)
	ap, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: id,
		Actor:         customerActor,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if ap.Status != "cancelled" || ap.CancelledAt == nil {
		t.Fatalf("cancel did not stamp: %+v", ap)
	}

	// the salon owner hears about it
	ev := notifier.last()
	if ev == nil || ev.Type != notify.TypeCancelled || ev.UserID != repo.salon.OwnerID {
		t.Fatalf("owner must be notified, got %+v", ev)
	}
}

func TestCancelByCustomerInsideWindow(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}

	// book tomorrow at 09:00: fewer than 24h from fixedNow (09-01 10:00)
	createUC := newCreateUC(repo, notifier)
	ap, err := createUC.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-02",
		Time:       "09:00",
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	uc := newCancelUC(repo, notifier)
	_, err = uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: ap.ID,
		Actor:         customerActor,
	})
	assertBusinessCode(t, err, httperr.CodeCancellationWindow)
}

func TestCancelByOwnerIgnoresWindow(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}

	createUC := newCreateUC(repo, notifier)
	ap, err := createUC.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-02",
		Time:       "09:00",
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	uc := newCancelUC(repo, notifier)
	got, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: ap.ID,
		Actor:         ownerActor,
	})
	if err != nil {
		t.Fatalf("owner cancel inside window: %v", err)
	}
	if got.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}

	// the customer hears about it
	ev := notifier.last()
	if ev == nil || ev.UserID != 100 {
		t.Fatalf("customer must be notified, got %+v", ev)
	}
}

func TestCancelForeignAppointmentForbidden(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	id := bookFixture(t, repo, notifier)

	uc := newCancelUC(repo, notifier)
	_, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: id,
		Actor:         domain.Actor{UserID: 101, Role: domain.RoleCustomer},
	})
	assertBusinessCode(t, err, httperr.CodeNotAllowed)

	_, err = uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: id,
		Actor:         domain.Actor{UserID: 99, Role: domain.RoleOwner},
	})
	assertBusinessCode(t, err, httperr.CodeNotAllowed)
}

func TestCancelByStaffMember(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	id := bookFixture(t, repo, notifier)

	// user 500 works for salon 1, user 9999 works for nobody here
	uc := newCancelUC(repo, notifier)
	_, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: id,
		Actor:         domain.Actor{UserID: 9999, Role: domain.RoleStaff},
	})
	assertBusinessCode(t, err, httperr.CodeNotAllowed)

	got, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: id,
		Actor:         domain.Actor{UserID: 500, Role: domain.RoleStaff},
	})
	if err != nil {
		t.Fatalf("staff cancel: %v", err)
	}
	if got.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
}

func TestCancelTwiceIsIllegal(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	id := bookFixture(t, repo, notifier)

	uc := newCancelUC(repo, notifier)
	if _, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: id,
		Actor:         customerActor,
	}); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: id,
		Actor:         customerActor,
	})
	assertBusinessCode(t, err, httperr.CodeInvalidState)
}

func TestCancelCustomWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.settings = &models.BookingSettings{CancellationHours: intPtr(48)}
	notifier := &fakeNotifier{}

	createUC := newCreateUC(repo, notifier)
	ap, err := createUC.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-03", // ~47h ahead of fixedNow at 09:00
		Time:       "09:00",
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	uc := newCancelUC(repo, notifier)
	_, err = uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: ap.ID,
		Actor:         customerActor,
	})
	assertBusinessCode(t, err, httperr.CodeCancellationWindow)
}
