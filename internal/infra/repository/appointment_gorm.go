package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetBookingSettings(
	ctx context.Context,
	salonID uint,
) (*models.BookingSettings, error) {

	var cfg models.BookingSettings
	err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		First(&cfg).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// never customized: the policy resolver applies full defaults
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *AppointmentGormRepository) ListOperatingHours(
	ctx context.Context,
	salonID uint,
) ([]models.OperatingHours, error) {

	var hours []models.OperatingHours
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// --------------------------------------------------
// Service / Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	salonID uint,
	staffID uint,
) (*models.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", staffID, salonID).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// GetStaffByUser resolves the staff row linking a user account to a salon.
// It is the membership check behind staff-initiated appointment mutations.
func (r *AppointmentGormRepository) GetStaffByUser(
	ctx context.Context,
	salonID uint,
	userID uint,
) (*models.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND user_id = ? AND active = true", salonID, userID).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// --------------------------------------------------
// Appointment (create / reschedule)
// --------------------------------------------------

// overlapQuery selects the active appointments competing with the run
// [startAt, endAt) for row-locking inside a transaction. Appointments
// assigned to a different staff member do not compete when the candidate
// has one; unassigned ones always do.
func overlapQuery(tx *gorm.DB, salonID uint, staffID *uint, startAt, endAt time.Time, excludeID uint) *gorm.DB {
	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"salon_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
			salonID, domain.ActiveStatuses, endAt, startAt,
		)

	if staffID != nil {
		q = q.Where("staff_id IS NULL OR staff_id = ?", *staffID)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return q
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateAppointment re-checks for overlap and inserts inside one
// transaction, locking the competing rows. The partial unique index on
// (salon_id, date, time) rejects whichever concurrent writer loses anyway;
// both failure modes surface as the same conflict error.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := overlapQuery(tx, ap.SalonID, ap.StaffID, ap.StartAt, ap.EndAt, 0).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return tx.Create(ap).Error
	})

	if isUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	return err
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := overlapQuery(tx, ap.SalonID, ap.StaffID, ap.StartAt, ap.EndAt, ap.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		return tx.Save(ap).Error
	})

	if isUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	return err
}

// --------------------------------------------------
// Appointment (state change / lookup)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability / listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveAppointmentsForDay(
	ctx context.Context,
	salonID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var appts []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"salon_id = ? AND status IN ? AND start_at >= ? AND start_at < ?",
			salonID, domain.ActiveStatuses, dayStart, dayEnd,
		).
		Order("start_at ASC").
		Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	salonID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Where(
			"salon_id = ? AND start_at >= ? AND start_at < ?",
			salonID, start, end,
		).
		Order("start_at ASC").
		Find(&appts).Error

	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Appointment, error) {

	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Salon").
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("start_at DESC").
		Find(&appts).Error

	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentGormRepository) CountAppointmentsByStatus(
	ctx context.Context,
	salonID uint,
	status string,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("salon_id = ? AND status = ?", salonID, status).
		Count(&count).Error

	return count, err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
