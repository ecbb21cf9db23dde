package booking

import (
	"context"
	"time"

	"github.com/glamflow/salon-scheduler/internal/audit"
	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

type FailPaymentInput struct {
	OrderID string
	Reason  string
}

type FailPayment struct {
	repo  domain.Repository
	holds SlotHolder
	audit Auditor
}

func NewFailPayment(repo domain.Repository, holds SlotHolder, auditor Auditor) *FailPayment {
	return &FailPayment{repo: repo, holds: holds, audit: auditor}
}

func (uc *FailPayment) Execute(ctx context.Context, in FailPaymentInput) error {
	p, err := uc.repo.GetPaymentByOrderID(ctx, in.OrderID)
	if err != nil {
		return err
	}
	if p.Status == models.PaymentSuccessful {
		return httperr.ErrConflict("payment_already_processed")
	}
	if p.Status == models.PaymentFailed {
		return nil
	}

	b, err := uc.repo.GetBooking(ctx, p.BookingID)
	if err != nil {
		return err
	}

	if err := domain.Apply(b, domain.EventPaymentFailure, time.Now()); err != nil {
		return err
	}
	p.Status = models.PaymentFailed

	if err := uc.repo.FailPayment(ctx, p, b); err != nil {
		return err
	}

	uc.holds.Release(ctx, b.StaffID, b.Date, b.TimeSlot)

	uc.audit.Dispatch(audit.Event{
		UserID:   &b.UserID,
		Action:   "payment_failed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: in.Reason,
	})
	return nil
}
