package booking

import (
	"context"

	"github.com/glamflow/salon-scheduler/internal/audit"
	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

type RescheduleBookingInput struct {
	BookingID uint
	Date      string
	TimeSlot  string

	// StaffID reassigns the booking when non-zero.
	StaffID uint

	ActorID   uint
	ActorRole string
}

type RescheduleBooking struct {
	repo  domain.Repository
	audit Auditor
}

func NewRescheduleBooking(repo domain.Repository, auditor Auditor) *RescheduleBooking {
	return &RescheduleBooking{repo: repo, audit: auditor}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*models.Booking, error) {

	if err := validateDateSlot(in.Date, in.TimeSlot); err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	if err := authorizeBookingActor(b, in.ActorID, in.ActorRole); err != nil {
		return nil, err
	}

	if !domain.CanReschedule(domain.Status(b.Status)) {
		return nil, httperr.ErrValidation("invalid_state")
	}

	staffID := b.StaffID
	if in.StaffID != 0 && in.StaffID != b.StaffID {
		staff, err := uc.repo.GetStaff(ctx, in.StaffID)
		if err != nil {
			return nil, err
		}
		staffID = staff.ID
	}

	if staffID != b.StaffID || b.Date != in.Date || b.TimeSlot != in.TimeSlot {
		taken, err := uc.repo.SlotTaken(ctx, staffID, in.Date, in.TimeSlot)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, httperr.ErrConflict("slot_taken")
		}
	}

	oldDate, oldSlot := b.Date, b.TimeSlot
	b.StaffID = staffID
	b.Date = in.Date
	b.TimeSlot = in.TimeSlot

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: oldDate + " " + oldSlot + " -> " + in.Date + " " + in.TimeSlot,
	})
	return b, nil
}
