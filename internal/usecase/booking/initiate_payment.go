package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glamflow/salon-scheduler/internal/audit"
	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
	"github.com/glamflow/salon-scheduler/internal/payment"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type InitiatePaymentInput struct {
	UserID    uint
	StaffID   uint
	ServiceID uint

	Date     string
	TimeSlot string
	Notes    string

	CustomerName  string
	CustomerPhone string
}

type InitiatePaymentOutput struct {
	BookingID    uint    `json:"booking_id"`
	OrderID      string  `json:"order_id"`
	SessionToken string  `json:"session_token"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// ======================================================
// USE CASE
// ======================================================

type InitiatePayment struct {
	repo     domain.Repository
	gateway  payment.Gateway
	holds    SlotHolder
	audit    Auditor
	currency string
}

func NewInitiatePayment(
	repo domain.Repository,
	gateway payment.Gateway,
	holds SlotHolder,
	auditor Auditor,
	currency string,
) *InitiatePayment {
	return &InitiatePayment{
		repo:     repo,
		gateway:  gateway,
		holds:    holds,
		audit:    auditor,
		currency: currency,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute reserves the slot, creates a pending_payment booking with a
// PENDING payment record, and asks the gateway for a checkout session.
// The slot hold expires on its own; the cron sweep cancels bookings
// whose payment never arrived.
func (uc *InitiatePayment) Execute(
	ctx context.Context,
	in InitiatePaymentInput,
) (*InitiatePaymentOutput, error) {

	if err := validateDateSlot(in.Date, in.TimeSlot); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Available {
		return nil, httperr.ErrValidation("service_unavailable")
	}

	staff, err := uc.repo.GetStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	taken, err := uc.repo.SlotTaken(ctx, staff.ID, in.Date, in.TimeSlot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrConflict("slot_taken")
	}

	held, err := uc.holds.Acquire(ctx, staff.ID, in.Date, in.TimeSlot)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, httperr.ErrConflict("slot_taken")
	}

	orderID := "ORD_" + uuid.NewString()

	b := &models.Booking{
		UserID:    in.UserID,
		StaffID:   staff.ID,
		ServiceID: service.ID,
		Date:      in.Date,
		TimeSlot:  in.TimeSlot,
		Status:    string(domain.StatusPendingPayment),
		Notes:     in.Notes,
	}
	p := &models.Payment{
		OrderID: orderID,
		Amount:  service.Price,
		Status:  models.PaymentPending,
		UserID:  in.UserID,
	}

	if err := uc.repo.CreateBookingWithPayment(ctx, b, p); err != nil {
		uc.holds.Release(ctx, staff.ID, in.Date, in.TimeSlot)
		return nil, err
	}

	customerRef := in.CustomerName
	if customerRef == "" {
		customerRef = fmt.Sprintf("customer_%d", in.UserID)
	}

	token, err := uc.gateway.CreateOrder(
		ctx, orderID, service.Price, uc.currency, customerRef, in.CustomerPhone,
	)
	if err != nil {
		// Cannot charge without a session; abandon the booking now
		// instead of waiting for the sweep.
		p.Status = models.PaymentFailed
		if applyErr := domain.Apply(b, domain.EventPaymentFailure, time.Now()); applyErr == nil {
			uc.repo.FailPayment(ctx, p, b)
		}
		uc.holds.Release(ctx, staff.ID, in.Date, in.TimeSlot)
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "payment_initiated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: orderID,
	})

	return &InitiatePaymentOutput{
		BookingID:    b.ID,
		OrderID:      orderID,
		SessionToken: token,
		Amount:       service.Price,
		Currency:     uc.currency,
	}, nil
}
