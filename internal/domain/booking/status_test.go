package booking

import (
	"testing"
	"time"

	"github.com/glamflow/salon-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		event Event
		from  Status
		valid bool
	}{
		{EventPaymentSuccess, StatusPendingPayment, true},
		{EventPaymentSuccess, StatusPending, false},
		{EventPaymentSuccess, StatusConfirmed, false},
		{EventPaymentFailure, StatusPendingPayment, true},
		{EventPaymentFailure, StatusCancelled, false},
		{EventConfirm, StatusPending, true},
		{EventConfirm, StatusPendingPayment, true},
		{EventConfirm, StatusCompleted, false},
		{EventCancel, StatusPending, true},
		{EventCancel, StatusConfirmed, true},
		{EventCancel, StatusPendingPayment, true},
		{EventCancel, StatusCompleted, false},
		{EventCancel, StatusCancelled, false},
		{EventComplete, StatusConfirmed, true},
		{EventComplete, StatusPending, true},
		{EventComplete, StatusCancelled, false},
		{EventReschedule, StatusConfirmed, true},
		{EventReschedule, StatusCompleted, false},
		{EventReschedule, StatusCancelled, false},
		{Event("unknown"), StatusPending, false},
	}

	for _, tt := range cases {
		if got := CanTransition(tt.event, tt.from); got != tt.valid {
			t.Fatalf("CanTransition(%q, %q)=%v, want %v", tt.event, tt.from, got, tt.valid)
		}
	}
}

func TestCancelSetsStatusAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	for _, from := range []Status{StatusPending, StatusConfirmed} {
		b := &models.Booking{Status: string(from)}
		if err := Cancel(b, now); err != nil {
			t.Fatalf("Cancel from %q: %v", from, err)
		}
		if b.Status != string(StatusCancelled) {
			t.Fatalf("status = %q, want cancelled", b.Status)
		}
		if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
			t.Fatalf("CancelledAt not set")
		}
	}
}

func TestCancelRejectsTerminalStates(t *testing.T) {
	now := time.Now()

	for _, from := range []Status{StatusCompleted, StatusCancelled} {
		b := &models.Booking{Status: string(from)}
		if err := Cancel(b, now); err == nil {
			t.Fatalf("Cancel from %q must be rejected", from)
		}
		if b.Status != string(from) {
			t.Fatalf("status mutated on rejected cancel: %q", b.Status)
		}
	}
}

func TestCompleteSetsTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	b := &models.Booking{Status: string(StatusConfirmed)}
	if err := Complete(b, now); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if b.Status != string(StatusCompleted) {
		t.Fatalf("status = %q, want completed", b.Status)
	}
	if b.CompletedAt == nil || !b.CompletedAt.Equal(now) {
		t.Fatalf("CompletedAt not set")
	}
}

func TestSlotConsuming(t *testing.T) {
	cases := map[Status]bool{
		StatusPendingPayment: true,
		StatusPending:        true,
		StatusConfirmed:      true,
		StatusCompleted:      false,
		StatusCancelled:      false,
	}
	for status, want := range cases {
		if got := SlotConsuming(status); got != want {
			t.Fatalf("SlotConsuming(%q)=%v, want %v", status, got, want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending_payment", "pending", "confirmed", "completed", "cancelled"} {
		if !ValidStatus(s) {
			t.Fatalf("ValidStatus(%q)=false", s)
		}
	}
	if ValidStatus("scheduled") {
		t.Fatal("ValidStatus accepted unknown status")
	}
}
