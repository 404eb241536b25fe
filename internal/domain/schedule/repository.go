package schedule

import (
	"context"
	"time"

	"github.com/salonhub/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetBookingSettings(
		ctx context.Context,
		salonID uint,
	) (*models.BookingSettings, error) // (nil, nil) when never configured

	ListOperatingHours(
		ctx context.Context,
		salonID uint,
	) ([]models.OperatingHours, error)

	// -------- Service / Staff --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	GetStaff(
		ctx context.Context,
		salonID uint,
		staffID uint,
	) (*models.Staff, error)

	GetStaffByUser(
		ctx context.Context,
		salonID uint,
		userID uint,
	) (*models.Staff, error)

	// -------- Appointment (create / reschedule, conflict-checked) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change / lookup) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListActiveAppointmentsForDay(
		ctx context.Context,
		salonID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		salonID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Appointment, error)

	CountAppointmentsByStatus(
		ctx context.Context,
		salonID uint,
		status string,
	) (int64, error)
}
