package booking

import (
	"context"
	"time"

	"github.com/glamflow/salon-scheduler/internal/audit"
	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	StaffID   uint
	ServiceID uint

	Date     string // "2006-01-02"
	TimeSlot string // "15:04"
	Notes    string

	// Confirmed marks a booking made by staff/admin on behalf of a
	// client; it skips the pending stage entirely.
	Confirmed bool

	// ActorID is who performed the action (the customer, or the
	// staff/admin booking on their behalf).
	ActorID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
}

func NewCreateBooking(
	repo domain.Repository,
	notifier Notifier,
	auditor Auditor,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		notifier: notifier,
		audit:    auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

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

	// Best-effort pre-check; the partial unique index is the real guard
	// against two racing creates.
	taken, err := uc.repo.SlotTaken(ctx, staff.ID, in.Date, in.TimeSlot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrConflict("slot_taken")
	}

	status := domain.StatusPending
	if in.Confirmed {
		status = domain.StatusConfirmed
	}

	b := &models.Booking{
		UserID:    in.UserID,
		StaffID:   staff.ID,
		ServiceID: service.ID,
		Date:      in.Date,
		TimeSlot:  in.TimeSlot,
		Status:    string(status),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	if in.Confirmed {
		full, err := uc.repo.GetBooking(ctx, b.ID)
		if err == nil {
			uc.notifier.BookingConfirmation(full)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func validateDateSlot(date, timeSlot string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return httperr.ErrValidation("invalid_date")
	}
	if _, err := time.Parse("15:04", timeSlot); err != nil {
		return httperr.ErrValidation("invalid_time_slot")
	}
	return nil
}
