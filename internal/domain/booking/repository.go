package booking

import (
	"context"
	"time"

	"github.com/glamflow/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetStaff(
		ctx context.Context,
		id uint,
	) (*models.Staff, error)

	GetStaffByUser(
		ctx context.Context,
		userID uint,
	) (*models.Staff, error)

	// -------- Booking (create / conflict) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	SlotTaken(
		ctx context.Context,
		staffID uint,
		date string,
		timeSlot string,
	) (bool, error)

	ListBookedSlots(
		ctx context.Context,
		staffID uint,
		date string,
	) ([]string, error)

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Payment --------
	CreateBookingWithPayment(
		ctx context.Context,
		b *models.Booking,
		p *models.Payment,
	) error

	GetPaymentByOrderID(
		ctx context.Context,
		orderID string,
	) (*models.Payment, error)

	// ConfirmPayment commits the payment-success transition atomically:
	// Payment -> SUCCESSFUL, Booking -> confirmed.
	ConfirmPayment(
		ctx context.Context,
		p *models.Payment,
		b *models.Booking,
	) error

	// FailPayment commits the failure transition atomically:
	// Payment -> FAILED, Booking -> cancelled.
	FailPayment(
		ctx context.Context,
		p *models.Payment,
		b *models.Booking,
	) error

	ListStalePendingPayments(
		ctx context.Context,
		cutoff time.Time,
	) ([]models.Payment, error)

	// ListRemindable returns confirmed bookings starting inside
	// [from, to), for the reminder job.
	ListRemindable(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)
}
