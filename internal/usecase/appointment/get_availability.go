package appointment

import (
	"context"
	"time"

	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/timezone"
)

type GetAvailabilityInput struct {
	SalonID   uint
	ServiceID uint
	StaffID   *uint
	Date      string
}

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: timezone.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]domain.SlotRun, error) {

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
	if svc.DurationMin <= 0 {
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

	grid := domain.GenerateTimeSlots(day.Open, day.Close, settings.SlotInterval)
	blocks := domain.BlocksNeeded(svc.DurationMin, settings.SlotInterval)

	// AddDate keeps the window a full civil day across DST transitions
	appts, err := uc.repo.ListActiveAppointmentsForDay(
		ctx,
		in.SalonID,
		date,
		date.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	busy := domain.BusyIntervals(appts, 0, in.StaffID)
	notBefore := sameDayCutoff(date, today, now, settings)

	return domain.AvailableRuns(date, grid, settings.SlotInterval, blocks, busy, loc, notBefore), nil
}
