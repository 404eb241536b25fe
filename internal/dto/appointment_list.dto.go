package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Code         string    `json:"code"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	StaffName    string    `json:"staff_name,omitempty"`
	Amount       float64   `json:"amount"`
}
