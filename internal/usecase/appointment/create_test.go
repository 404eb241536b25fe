package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/models"
	"github.com/salonhub/salon-scheduler/internal/notify"
)

func newCreateUC(repo *fakeRepo, notifier *fakeNotifier) *CreateAppointment {
	uc := NewCreateAppointment(repo, notifier, nopAudit())
	uc.now = fixedClock
	return uc
}

func TestCreateAppointmentHappyPath(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := newCreateUC(repo, notifier)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10, // 60 min, $40
		Date:       "2026-09-10",
		Time:       "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if ap.Status != "pending" {
		t.Fatalf("new appointment must start pending, got %s", ap.Status)
	}
	if ap.Code == "" {
		t.Fatalf("booking code must be assigned")
	}
	if ap.Amount != 40 {
		t.Fatalf("amount: got %v", ap.Amount)
	}
	if ap.DurationMin != 60 {
		t.Fatalf("duration must be frozen from the service, got %d", ap.DurationMin)
	}

	wantStart := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	if !ap.StartAt.Equal(wantStart) || !ap.EndAt.Equal(wantStart.Add(time.Hour)) {
		t.Fatalf("start/end wrong: %v - %v", ap.StartAt, ap.EndAt)
	}

	ev := notifier.last()
	if ev == nil || ev.Type != notify.TypeCreated || ev.UserID != repo.salon.OwnerID {
		t.Fatalf("owner must be notified of the new booking, got %+v", ev)
	}
}

func TestCreateAppointmentDiscountedAmount(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  11, // $20 with $5 discount
		Date:       "2026-09-10",
		Time:       "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ap.Amount != 15 {
		t.Fatalf("amount must be price minus discount, got %v", ap.Amount)
	}
}

func TestCreateAppointmentLastSlotMustFitService(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	// a 60-minute service cannot anchor at 17:30 on a day closing at 18:00
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-10",
		Time:       "17:30",
	})
	assertBusinessCode(t, err, httperr.CodeInvalidSlot)

	// 17:00 is the last anchor that fits
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-10",
		Time:       "17:00",
	})
	if err != nil {
		t.Fatalf("17:00 booking should succeed: %v", err)
	}
	if !ap.EndAt.Equal(time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)) {
		t.Fatalf("run must end exactly at closing, got %v", ap.EndAt)
	}
}

func TestCreateAppointmentOffGridLabel(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-10",
		Time:       "10:15",
	})
	assertBusinessCode(t, err, httperr.CodeInvalidSlot)
}

func TestCreateAppointmentDoubleBooking(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	in := CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-10",
		Time:       "10:00",
	}

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	in.CustomerID = 101
	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, httperr.CodeTimeConflict)

	// partial overlap conflicts too: 10:30 falls inside the 10:00-11:00 run
	in.Time = "10:30"
	_, err = uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, httperr.CodeTimeConflict)

	// the adjacent run is free
	in.Time = "11:00"
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("adjacent booking should succeed: %v", err)
	}
}

func TestCreateAppointmentTerminalFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := newCreateUC(repo, notifier)

	in := CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-10",
		Time:       "10:00",
	}

	first, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	cancelUC := NewCancelAppointment(repo, notifier, nopAudit())
	cancelUC.now = fixedClock
	if _, err := cancelUC.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: first.ID,
		Actor:         domain.Actor{UserID: 100, Role: domain.RoleCustomer},
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// the slot opened back up
	in.CustomerID = 101
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("rebooking a cancelled slot should succeed: %v", err)
	}
}

func TestCreateAppointmentAdvanceWindow(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	// fixedNow is 2026-09-01; day 30 is the last bookable date
	if _, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-10-01",
		Time:       "10:00",
	}); err != nil {
		t.Fatalf("day 30 should be bookable: %v", err)
	}

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-10-02",
		Time:       "10:00",
	})
	assertBusinessCode(t, err, httperr.CodeAdvanceWindow)
}

func TestCreateAppointmentPastDate(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-08-31",
		Time:       "10:00",
	})
	assertBusinessCode(t, err, httperr.CodePastDate)
}

func TestCreateAppointmentSameDayCutoff(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	// now is 10:00; with the 2h minimum advance, 11:30 is too soon
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-01",
		Time:       "11:30",
	})
	assertBusinessCode(t, err, httperr.CodeTooSoon)

	// 12:00 clears the cutoff exactly
	if _, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-01",
		Time:       "12:00",
	}); err != nil {
		t.Fatalf("12:00 same-day booking should succeed: %v", err)
	}
}

func TestCreateAppointmentSameDayDisabled(t *testing.T) {
	repo := newFakeRepo()
	repo.settings = &models.BookingSettings{AllowSameDayBooking: boolPtr(false)}
	uc := newCreateUC(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-01",
		Time:       "15:00",
	})
	assertBusinessCode(t, err, httperr.CodeSameDayDisabled)
}

func TestCreateAppointmentClosedDay(t *testing.T) {
	repo := newFakeRepo()
	repo.hours = append(repo.hours, models.OperatingHours{
		SalonID: 1,
		Weekday: int(time.Sunday),
		Closed:  true,
	})
	uc := newCreateUC(repo, &fakeNotifier{})

	// 2026-09-06 is a Sunday
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		Date:       "2026-09-06",
		Time:       "10:00",
	})
	assertBusinessCode(t, err, httperr.CodeSalonClosed)
}

func TestCreateAppointmentUnknownStaff(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		StaffID:    uintPtr(999),
		Date:       "2026-09-10",
		Time:       "10:00",
	})
	assertBusinessCode(t, err, httperr.CodeStaffNotFound)
}

func TestCreateAppointmentStaffDoNotCompete(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo, &fakeNotifier{})

	in := CreateAppointmentInput{
		CustomerID: 100,
		SalonID:    1,
		ServiceID:  10,
		StaffID:    uintPtr(5),
		Date:       "2026-09-10",
		Time:       "10:00",
	}
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("booking with Alex: %v", err)
	}

	// same slot with the other staff member is fine
	in.CustomerID = 101
	in.StaffID = uintPtr(6)
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("booking with Sam: %v", err)
	}

	// same slot with Alex again conflicts
	in.CustomerID = 102
	in.StaffID = uintPtr(5)
	_, err := uc.Execute(context.Background(), in)
	assertBusinessCode(t, err, httperr.CodeTimeConflict)
}
