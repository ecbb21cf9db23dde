package booking

import (
	"context"
	"testing"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

func seedBooking(r *fakeRepo, status domain.Status) *models.Booking {
	b := &models.Booking{
		ID:       1,
		UserID:   7,
		StaffID:  2,
		Staff:    models.Staff{ID: 2, UserID: 20},
		Date:     "2026-03-02",
		TimeSlot: "10:00",
		Status:   string(status),
	}
	r.bookings[b.ID] = b
	r.nextID = 1
	return b
}

func TestCancelBookingByOwner(t *testing.T) {
	repo := newFakeRepo()
	seedBooking(repo, domain.StatusConfirmed)
	holder := &fakeHolder{}

	uc := NewCancelBooking(repo, holder, &fakeAuditor{})
	b, err := uc.Execute(context.Background(), CancelBookingInput{
		BookingID: 1, ActorID: 7, ActorRole: models.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %q, want cancelled", b.Status)
	}
	if b.CancelledAt == nil {
		t.Errorf("CancelledAt not set")
	}
	if holder.released != 1 {
		t.Errorf("hold releases = %d, want 1", holder.released)
	}
}

func TestCancelBookingAuthorization(t *testing.T) {
	cases := []struct {
		name    string
		actorID uint
		role    string
		wantErr bool
	}{
		{"owner", 7, models.RoleCustomer, false},
		{"other customer", 8, models.RoleCustomer, true},
		{"assigned staff", 20, models.RoleStaff, false},
		{"other staff", 21, models.RoleStaff, true},
		{"admin", 99, models.RoleAdmin, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			seedBooking(repo, domain.StatusPending)
			uc := NewCancelBooking(repo, &fakeHolder{}, &fakeAuditor{})

			_, err := uc.Execute(context.Background(), CancelBookingInput{
				BookingID: 1, ActorID: tc.actorID, ActorRole: tc.role,
			})
			if tc.wantErr {
				if !httperr.IsKind(err, httperr.KindForbidden) {
					t.Fatalf("err = %v, want forbidden kind", err)
				}
			} else if err != nil {
				t.Fatalf("Execute: %v", err)
			}
		})
	}
}

func TestCancelBookingTerminalState(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusCompleted, domain.StatusCancelled} {
		repo := newFakeRepo()
		seedBooking(repo, status)
		uc := NewCancelBooking(repo, &fakeHolder{}, &fakeAuditor{})

		_, err := uc.Execute(context.Background(), CancelBookingInput{
			BookingID: 1, ActorID: 7, ActorRole: models.RoleCustomer,
		})
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("cancel from %s: err = %v, want invalid_state", status, err)
		}
	}
}
