package models

import "time"

// OperatingHours holds one weekday row per salon. A missing row does NOT
// mean closed: days without configuration fall back to the default
// 09:00-18:00 window (salons created before hours existed keep working).
type OperatingHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index:idx_salon_weekday,unique" json:"salon_id"`

	Weekday int `gorm:"index:idx_salon_weekday,unique" json:"weekday"`

	Open   string `gorm:"size:5" json:"open"`
	Close  string `gorm:"size:5" json:"close"`
	Closed bool   `gorm:"default:false" json:"closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
