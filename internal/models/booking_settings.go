package models

import "time"

// BookingSettings is the per-salon booking policy. Every field is a
// pointer: nil means "not customized" and resolves to the system default.
// A salon without a row at all resolves entirely to defaults.
type BookingSettings struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"uniqueIndex" json:"salon_id"`

	MinAdvanceBookingHours *int  `json:"min_advance_booking_hours"`
	MaxAdvanceBookingDays  *int  `json:"max_advance_booking_days"`
	SlotInterval           *int  `json:"slot_interval"`
	AllowSameDayBooking    *bool `json:"allow_same_day_booking"`
	CancellationHours      *int  `json:"cancellation_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
