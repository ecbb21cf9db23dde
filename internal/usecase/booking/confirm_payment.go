package booking

import (
	"context"
	"time"

	"github.com/glamflow/salon-scheduler/internal/audit"
	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
	"github.com/glamflow/salon-scheduler/internal/payment"
)

type ConfirmPaymentInput struct {
	OrderID   string
	PaymentID string
}

type ConfirmPayment struct {
	repo     domain.Repository
	gateway  payment.Gateway
	holds    SlotHolder
	notifier Notifier
	audit    Auditor
}

func NewConfirmPayment(
	repo domain.Repository,
	gateway payment.Gateway,
	holds SlotHolder,
	notifier Notifier,
	auditor Auditor,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		gateway:  gateway,
		holds:    holds,
		notifier: notifier,
		audit:    auditor,
	}
}

// Execute verifies the payment against the gateway before touching
// anything. A non-success verdict leaves booking and payment untouched.
func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	in ConfirmPaymentInput,
) (*models.Booking, error) {

	p, err := uc.repo.GetPaymentByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if p.Status == models.PaymentSuccessful {
		return nil, httperr.ErrConflict("payment_already_processed")
	}

	b, err := uc.repo.GetBooking(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}

	status, err := uc.gateway.GetPaymentStatus(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if status != payment.StatusSuccess {
		return nil, httperr.ErrUpstream("payment_not_successful")
	}

	newStatus, err := domain.Transition(
		domain.Status(b.Status), domain.EventPaymentSuccess,
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p.Status = models.PaymentSuccessful
	p.PaymentID = in.PaymentID
	p.PaidAt = &now
	b.Status = string(newStatus)

	if err := uc.repo.ConfirmPayment(ctx, p, b); err != nil {
		return nil, err
	}

	uc.holds.Release(ctx, b.StaffID, b.Date, b.TimeSlot)

	uc.notifier.BookingConfirmation(b)
	uc.notifier.PaymentReceipt(b, p.OrderID, p.Amount)

	uc.audit.Dispatch(audit.Event{
		UserID:   &b.UserID,
		Action:   "payment_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: p.OrderID,
	})

	return b, nil
}
