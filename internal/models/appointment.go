package models

import "time"

type Appointment struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:36;uniqueIndex" json:"code"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StaffID *uint  `json:"staff_id"`
	Staff   *Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	// Date is the calendar day at midnight in the salon timezone; Time is
	// the grid-aligned "HH:MM" slot label. StartAt/EndAt are derived from
	// them plus the service duration at booking time and only change on
	// reschedule.
	Date        time.Time `gorm:"index" json:"date"`
	Time        string    `gorm:"size:5" json:"time"`
	DurationMin int       `json:"duration_min"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// price minus discount, frozen at creation
	Amount float64 `json:"amount"`

	Notes string `gorm:"size:255" json:"notes"`

	AcceptedAt  *time.Time `json:"accepted_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	NoShowAt    *time.Time `json:"no_show_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
