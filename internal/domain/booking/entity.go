package booking

import (
	"time"

	"github.com/glamflow/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Apply runs one lifecycle event against the booking, mutating status and
// timestamps. The caller persists the result.
func Apply(b *models.Booking, ev Event, now time.Time) error {
	next, err := Transition(Status(b.Status), ev)
	if err != nil {
		return err
	}

	b.Status = string(next)

	switch next {
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}

	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	return Apply(b, EventCancel, now)
}

func Complete(b *models.Booking, now time.Time) error {
	return Apply(b, EventComplete, now)
}

// CanReschedule reports whether date/slot/staff may still be edited.
// Terminal bookings are frozen.
func CanReschedule(current Status) bool {
	return CanTransition(EventReschedule, current)
}
