package schedule

import (
	"time"

	"github.com/salonhub/salon-scheduler/internal/models"
)

// System defaults applied whenever a salon has not customized a setting.
const (
	DefaultMinAdvanceBookingHours = 2
	DefaultMaxAdvanceBookingDays  = 30
	DefaultSlotInterval           = 30
	DefaultCancellationHours      = 24
	DefaultAllowSameDayBooking    = true

	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "18:00"
)

// EffectiveBookingSettings is a salon's booking policy with every unset
// field replaced by the system default.
type EffectiveBookingSettings struct {
	MinAdvanceBookingHours int
	MaxAdvanceBookingDays  int
	SlotInterval           int
	AllowSameDayBooking    bool
	CancellationHours      int
}

// ResolveBookingSettings merges the stored settings with defaults. Partial
// configuration is allowed: only nil fields are defaulted. A nil row means
// the salon never customized anything.
func ResolveBookingSettings(cfg *models.BookingSettings) EffectiveBookingSettings {
	out := EffectiveBookingSettings{
		MinAdvanceBookingHours: DefaultMinAdvanceBookingHours,
		MaxAdvanceBookingDays:  DefaultMaxAdvanceBookingDays,
		SlotInterval:           DefaultSlotInterval,
		AllowSameDayBooking:    DefaultAllowSameDayBooking,
		CancellationHours:      DefaultCancellationHours,
	}

	if cfg == nil {
		return out
	}

	if cfg.MinAdvanceBookingHours != nil {
		out.MinAdvanceBookingHours = *cfg.MinAdvanceBookingHours
	}
	if cfg.MaxAdvanceBookingDays != nil {
		out.MaxAdvanceBookingDays = *cfg.MaxAdvanceBookingDays
	}
	if cfg.SlotInterval != nil {
		out.SlotInterval = *cfg.SlotInterval
	}
	if cfg.AllowSameDayBooking != nil {
		out.AllowSameDayBooking = *cfg.AllowSameDayBooking
	}
	if cfg.CancellationHours != nil {
		out.CancellationHours = *cfg.CancellationHours
	}

	return out
}

// DayHours is the resolved open/close window for one weekday.
type DayHours struct {
	Open   string
	Close  string
	Closed bool
}

// ResolveDayHours picks the operating window for a weekday. A day with no
// configured row defaults to open 09:00-18:00: absence is NOT closed, only
// an explicit closed flag is. Salons created before operating hours existed
// rely on this.
func ResolveDayHours(hours []models.OperatingHours, weekday time.Weekday) DayHours {
	day := DayHours{Open: DefaultOpenTime, Close: DefaultCloseTime}

	for _, h := range hours {
		if time.Weekday(h.Weekday) != weekday {
			continue
		}
		if h.Closed {
			return DayHours{Closed: true}
		}
		if h.Open != "" {
			day.Open = h.Open
		}
		if h.Close != "" {
			day.Close = h.Close
		}
		break
	}

	return day
}
