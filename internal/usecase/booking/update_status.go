package booking

import (
	"context"
	"time"

	"github.com/glamflow/salon-scheduler/internal/audit"
	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

type UpdateStatusInput struct {
	BookingID uint
	Status    string
	ActorID   uint
	ActorRole string
}

// UpdateStatus moves a booking to confirmed, completed or cancelled on
// behalf of staff and admins.
type UpdateStatus struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
}

func NewUpdateStatus(repo domain.Repository, notifier Notifier, auditor Auditor) *UpdateStatus {
	return &UpdateStatus{repo: repo, notifier: notifier, audit: auditor}
}

func (uc *UpdateStatus) Execute(ctx context.Context, in UpdateStatusInput) (*models.Booking, error) {
	var ev domain.Event
	switch domain.Status(in.Status) {
	case domain.StatusConfirmed:
		ev = domain.EventConfirm
	case domain.StatusCompleted:
		ev = domain.EventComplete
	case domain.StatusCancelled:
		ev = domain.EventCancel
	default:
		return nil, httperr.ErrValidation("invalid_status")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	if err := authorizeBookingActor(b, in.ActorID, in.ActorRole); err != nil {
		return nil, err
	}

	if err := domain.Apply(b, ev, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if ev == domain.EventConfirm {
		uc.notifier.BookingConfirmation(b)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "booking_status_" + in.Status,
		Entity:   "booking",
		EntityID: &b.ID,
	})
	return b, nil
}
