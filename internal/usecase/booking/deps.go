package booking

import (
	"context"

	"github.com/glamflow/salon-scheduler/internal/audit"
	"github.com/glamflow/salon-scheduler/internal/models"
)

// Auditor and Notifier are the slices of the audit/notify dispatchers the
// use cases touch; tests substitute no-op fakes.

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	BookingConfirmation(b *models.Booking)
	PaymentReceipt(b *models.Booking, orderID string, amount float64)
}

// SlotHolder tracks the payment-window hold on a slot.
type SlotHolder interface {
	Acquire(ctx context.Context, staffID uint, date, timeSlot string) (bool, error)
	Release(ctx context.Context, staffID uint, date, timeSlot string) error
}
