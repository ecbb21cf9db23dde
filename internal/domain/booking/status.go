package booking

import "github.com/glamflow/salon-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPendingPayment, StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// SlotConsumingStatuses are the statuses that block other bookings for the
// same staff/date/slot. A pending_payment booking holds its slot for the
// payment window; the cron sweep releases stale ones.
var SlotConsumingStatuses = []Status{
	StatusPendingPayment,
	StatusPending,
	StatusConfirmed,
}

func SlotConsuming(s Status) bool {
	for _, sc := range SlotConsumingStatuses {
		if s == sc {
			return true
		}
	}
	return false
}

// ===============================
// Transitions
// ===============================

type Event string

const (
	EventPaymentSuccess Event = "payment_success"
	EventPaymentFailure Event = "payment_failure"
	EventCancel         Event = "cancel"
	EventConfirm        Event = "confirm"
	EventComplete       Event = "complete"
	EventReschedule     Event = "reschedule"
)

// transitionMap lists the source statuses each event is legal from.
var transitionMap = map[Event][]Status{
	EventPaymentSuccess: {StatusPendingPayment},
	EventPaymentFailure: {StatusPendingPayment},
	EventConfirm:        {StatusPendingPayment, StatusPending},
	EventCancel:         {StatusPendingPayment, StatusPending, StatusConfirmed},
	EventComplete:       {StatusPending, StatusConfirmed},
	EventReschedule:     {StatusPendingPayment, StatusPending, StatusConfirmed},
}

// nextStatus is the status each event lands on. Reschedule keeps the
// current status and is absent on purpose.
var nextStatus = map[Event]Status{
	EventPaymentSuccess: StatusConfirmed,
	EventPaymentFailure: StatusCancelled,
	EventConfirm:        StatusConfirmed,
	EventCancel:         StatusCancelled,
	EventComplete:       StatusCompleted,
}

func CanTransition(ev Event, from Status) bool {
	allowed, ok := transitionMap[ev]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

// Transition returns the status ev leads to from the current one, or an
// invalid_state rejection when the booking is already terminal (or the event
// simply does not apply).
func Transition(from Status, ev Event) (Status, error) {
	if !CanTransition(ev, from) {
		return from, httperr.ErrValidation("invalid_state")
	}
	next, ok := nextStatus[ev]
	if !ok {
		return from, nil
	}
	return next, nil
}
