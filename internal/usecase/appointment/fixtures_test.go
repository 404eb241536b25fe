package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/salonhub/salon-scheduler/internal/audit"
	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/models"
	"github.com/salonhub/salon-scheduler/internal/notify"
)

// fakeRepo is an in-memory Repository with the same conflict semantics as
// the real store: creates and reschedules fail with time_conflict when the
// candidate run overlaps a competing active appointment.
type fakeRepo struct {
	salon    *models.Salon
	settings *models.BookingSettings
	hours    []models.OperatingHours
	services map[uint]*models.Service
	staff    map[uint]*models.Staff

	appts  map[uint]*models.Appointment
	nextID uint

	// last day/period window passed to a listing call
	lastWindowStart time.Time
	lastWindowEnd   time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: &models.Salon{
			ID:       1,
			Name:     "Clip Joint",
			Slug:     "clip-joint",
			OwnerID:  50,
			Timezone: "UTC",
		},
		services: map[uint]*models.Service{
			10: {ID: 10, SalonID: 1, Name: "Haircut", Price: 40, DurationMin: 60, Active: true},
			11: {ID: 11, SalonID: 1, Name: "Trim", Price: 20, Discount: 5, DurationMin: 30, Active: true},
		},
		staff: map[uint]*models.Staff{
			5: {ID: 5, SalonID: 1, UserID: 500, Name: "Alex", Active: true},
			6: {ID: 6, SalonID: 1, UserID: 600, Name: "Sam", Active: true},
		},
		appts:  map[uint]*models.Appointment{},
		nextID: 1,
	}
}

func (r *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	if r.salon == nil || r.salon.ID != id {
		return nil, httperr.ErrBusiness(httperr.CodeSalonNotFound)
	}
	return r.salon, nil
}

func (r *fakeRepo) GetBookingSettings(ctx context.Context, salonID uint) (*models.BookingSettings, error) {
	return r.settings, nil
}

func (r *fakeRepo) ListOperatingHours(ctx context.Context, salonID uint) ([]models.OperatingHours, error) {
	return r.hours, nil
}

func (r *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok || svc.SalonID != salonID || !svc.Active {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	return svc, nil
}

func (r *fakeRepo) GetStaff(ctx context.Context, salonID, staffID uint) (*models.Staff, error) {
	member, ok := r.staff[staffID]
	if !ok || member.SalonID != salonID || !member.Active {
		return nil, httperr.ErrBusiness(httperr.CodeStaffNotFound)
	}
	return member, nil
}

func (r *fakeRepo) GetStaffByUser(ctx context.Context, salonID, userID uint) (*models.Staff, error) {
	for _, member := range r.staff {
		if member.SalonID == salonID && member.UserID == userID && member.Active {
			return member, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeStaffNotFound)
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	all := r.allAppts()
	if domain.HasConflict(all, ap.StartAt, ap.EndAt, 0, ap.StaffID) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	ap.ID = r.nextID
	r.nextID++
	cp := *ap
	r.appts[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) RescheduleAppointment(ctx context.Context, ap *models.Appointment) error {
	all := r.allAppts()
	if domain.HasConflict(all, ap.StartAt, ap.EndAt, ap.ID, ap.StaffID) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	cp := *ap
	r.appts[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appts[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if _, ok := r.appts[ap.ID]; !ok {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	cp := *ap
	r.appts[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) ListActiveAppointmentsForDay(ctx context.Context, salonID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	r.lastWindowStart, r.lastWindowEnd = dayStart, dayEnd

	out := []models.Appointment{}
	for _, ap := range r.appts {
		if ap.SalonID != salonID {
			continue
		}
		if domain.IsTerminal(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartAt.Before(dayEnd) && ap.EndAt.After(dayStart) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, salonID uint, start, end time.Time) ([]models.Appointment, error) {
	r.lastWindowStart, r.lastWindowEnd = start, end

	out := []models.Appointment{}
	for _, ap := range r.appts {
		if ap.SalonID == salonID && ap.StartAt.Before(end) && ap.EndAt.After(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForCustomer(ctx context.Context, customerID uint) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range r.appts {
		if ap.CustomerID == customerID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountAppointmentsByStatus(ctx context.Context, salonID uint, status string) (int64, error) {
	var n int64
	for _, ap := range r.appts {
		if ap.SalonID == salonID && ap.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) allAppts() []models.Appointment {
	out := make([]models.Appointment, 0, len(r.appts))
	for _, ap := range r.appts {
		out = append(out, *ap)
	}
	return out
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeNotifier records dispatched events for assertions.
type fakeNotifier struct {
	events []notify.Event
}

func (f *fakeNotifier) Dispatch(ev notify.Event) {
	f.events = append(f.events, ev)
}

func (f *fakeNotifier) last() *notify.Event {
	if len(f.events) == 0 {
		return nil
	}
	return &f.events[len(f.events)-1]
}

var _ notify.Notifier = (*fakeNotifier)(nil)

// --------- common fixture ---------

// clock is 2026-09-01 10:00 UTC in every test unless overridden.
var fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func nopAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nil)
}

func assertBusinessCode(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	if got := httperr.BusinessCode(err); got != want {
		t.Fatalf("expected %s, got %q (%v)", want, got, err)
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
func uintPtr(v uint) *uint { return &v }
