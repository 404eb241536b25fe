package appointment

import (
	"time"

	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
)

const dateLayout = "2006-01-02"

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// checkBookingWindow applies the date-level policy: no past dates, no
// dates beyond the advance-booking horizon, and no same-day bookings when
// the salon disabled them.
func checkBookingWindow(
	date time.Time,
	today time.Time,
	settings domain.EffectiveBookingSettings,
) error {

	if date.Before(today) {
		return httperr.ErrBusiness(httperr.CodePastDate)
	}

	maxDate := today.AddDate(0, 0, settings.MaxAdvanceBookingDays)
	if date.After(maxDate) {
		return httperr.ErrBusiness(httperr.CodeAdvanceWindow)
	}

	if date.Equal(today) && !settings.AllowSameDayBooking {
		return httperr.ErrBusiness(httperr.CodeSameDayDisabled)
	}

	return nil
}

// sameDayCutoff returns the earliest allowed run start for same-day
// bookings, or nil when the cutoff does not apply.
func sameDayCutoff(
	date time.Time,
	today time.Time,
	now time.Time,
	settings domain.EffectiveBookingSettings,
) *time.Time {

	if !date.Equal(today) || settings.MinAdvanceBookingHours <= 0 {
		return nil
	}

	cutoff := now.Add(time.Duration(settings.MinAdvanceBookingHours) * time.Hour)
	return &cutoff
}

// labelIndex locates a requested "HH:MM" label on the day's grid.
func labelIndex(grid []string, label string) int {
	for i, s := range grid {
		if s == label {
			return i
		}
	}
	return -1
}
