package booking

import (
	"context"
	"time"

	"github.com/glamflow/salon-scheduler/internal/audit"
	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

type CancelBookingInput struct {
	BookingID uint
	ActorID   uint
	ActorRole string
}

type CancelBooking struct {
	repo  domain.Repository
	holds SlotHolder
	audit Auditor
}

func NewCancelBooking(repo domain.Repository, holds SlotHolder, auditor Auditor) *CancelBooking {
	return &CancelBooking{repo: repo, holds: holds, audit: auditor}
}

func (uc *CancelBooking) Execute(ctx context.Context, in CancelBookingInput) (*models.Booking, error) {
	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	if err := authorizeBookingActor(b, in.ActorID, in.ActorRole); err != nil {
		return nil, err
	}

	if err := domain.Cancel(b, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.holds.Release(ctx, b.StaffID, b.Date, b.TimeSlot)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})
	return b, nil
}

// authorizeBookingActor lets admins act on any booking, the owning
// customer on their own, and the assigned staff member on theirs.
func authorizeBookingActor(b *models.Booking, actorID uint, role string) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleStaff:
		if b.Staff.UserID == actorID || b.UserID == actorID {
			return nil
		}
	default:
		if b.UserID == actorID {
			return nil
		}
	}
	return httperr.ErrForbidden("not_booking_owner")
}
