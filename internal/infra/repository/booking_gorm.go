package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// isUniqueViolation reports a Postgres 23505: the slot index or the
// one-payment-per-booking index fired.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).Preload("User").First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("staff_not_found")
		}
		return nil, err
	}
	return &staff, nil
}

func (r *BookingGormRepository) GetStaffByUser(
	ctx context.Context,
	userID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&staff).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("staff_profile_not_found")
		}
		return nil, err
	}
	return &staff, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrConflict("slot_taken")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) SlotTaken(
	ctx context.Context,
	staffID uint,
	date string,
	timeSlot string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND date = ? AND time_slot = ? AND status IN ?",
			staffID, date, timeSlot, slotConsuming(),
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *BookingGormRepository) ListBookedSlots(
	ctx context.Context,
	staffID uint,
	date string,
) ([]string, error) {

	var slots []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"staff_id = ? AND date = ? AND status IN ?",
			staffID, date, slotConsuming(),
		).
		Order("time_slot ASC").
		Pluck("time_slot", &slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Staff.User").
		Preload("Service").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrConflict("slot_taken")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *BookingGormRepository) CreateBookingWithPayment(
	ctx context.Context,
	b *models.Booking,
	p *models.Payment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		p.BookingID = b.ID
		return tx.Create(p).Error
	})

	if err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrConflict("slot_taken")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) GetPaymentByOrderID(
	ctx context.Context,
	orderID string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&p).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("payment_not_found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *BookingGormRepository) ConfirmPayment(
	ctx context.Context,
	p *models.Payment,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		return tx.Save(b).Error
	})
}

func (r *BookingGormRepository) FailPayment(
	ctx context.Context,
	p *models.Payment,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		return tx.Save(b).Error
	})
}

func (r *BookingGormRepository) ListStalePendingPayments(
	ctx context.Context,
	cutoff time.Time,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where(
			"payments.status = ? AND bookings.status = ? AND payments.created_at < ?",
			models.PaymentPending, string(domain.StatusPendingPayment), cutoff,
		).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *BookingGormRepository) ListRemindable(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	fromDate, toDate := from.Format("2006-01-02"), to.Format("2006-01-02")
	fromSlot, toSlot := from.Format("15:04"), to.Format("15:04")

	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("Staff.User").
		Preload("Service").
		Where("status = ?", string(domain.StatusConfirmed))

	if fromDate == toDate {
		q = q.Where(
			"date = ? AND time_slot >= ? AND time_slot < ?",
			fromDate, fromSlot, toSlot,
		)
	} else {
		// Window crosses midnight.
		q = q.Where(
			"(date = ? AND time_slot >= ?) OR (date = ? AND time_slot < ?)",
			fromDate, fromSlot, toDate, toSlot,
		)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func slotConsuming() []string {
	statuses := make([]string, 0, len(domain.SlotConsumingStatuses))
	for _, s := range domain.SlotConsumingStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
