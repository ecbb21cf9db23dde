package booking

import (
	"context"
	"testing"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

func seedCatalog(r *fakeRepo) {
	r.services[1] = &models.Service{ID: 1, Name: "Haircut", DurationMin: 30, Price: 500, Available: true}
	r.staff[2] = &models.Staff{ID: 2, UserID: 20}
}

func TestCreateBookingCustomerIsPending(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	uc := NewCreateBooking(repo, &fakeNotifier{}, &fakeAuditor{})
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    7,
		StaffID:   2,
		ServiceID: 1,
		Date:      "2026-03-02",
		TimeSlot:  "10:00",
		ActorID:   7,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.Status != string(domain.StatusPending) {
		t.Errorf("status = %q, want pending", b.Status)
	}
}

func TestCreateBookingOnBehalfIsConfirmed(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	notifier := &fakeNotifier{}

	uc := NewCreateBooking(repo, notifier, &fakeAuditor{})
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:    7,
		StaffID:   2,
		ServiceID: 1,
		Date:      "2026-03-02",
		TimeSlot:  "10:00",
		Confirmed: true,
		ActorID:   20,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %q, want confirmed", b.Status)
	}
	if notifier.confirmations != 1 {
		t.Errorf("confirmations = %d, want 1", notifier.confirmations)
	}
}

func TestCreateBookingSlotTakenPreCheck(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.taken = true

	uc := NewCreateBooking(repo, &fakeNotifier{}, &fakeAuditor{})
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 7, StaffID: 2, ServiceID: 1,
		Date: "2026-03-02", TimeSlot: "10:00",
	})
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("err = %v, want slot_taken", err)
	}
}

// The pre-check can pass while a racing request commits first; the unique
// index turns the insert into a conflict, and that conflict must surface.
func TestCreateBookingRaceLosesToIndex(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.taken = false
	repo.createErr = httperr.ErrConflict("slot_taken")

	uc := NewCreateBooking(repo, &fakeNotifier{}, &fakeAuditor{})
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 7, StaffID: 2, ServiceID: 1,
		Date: "2026-03-02", TimeSlot: "10:00",
	})
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("err = %v, want conflict kind", err)
	}
}

func TestCreateBookingUnavailableService(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.services[1].Available = false

	uc := NewCreateBooking(repo, &fakeNotifier{}, &fakeAuditor{})
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 7, StaffID: 2, ServiceID: 1,
		Date: "2026-03-02", TimeSlot: "10:00",
	})
	if !httperr.IsBusiness(err, "service_unavailable") {
		t.Fatalf("err = %v, want service_unavailable", err)
	}
}

func TestCreateBookingBadInputs(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	uc := NewCreateBooking(repo, &fakeNotifier{}, &fakeAuditor{})

	cases := []struct {
		name string
		date string
		slot string
	}{
		{"bad date", "02-03-2026", "10:00"},
		{"bad slot", "2026-03-02", "10h00"},
		{"slot with seconds", "2026-03-02", "10:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), CreateBookingInput{
				UserID: 7, StaffID: 2, ServiceID: 1,
				Date: tc.date, TimeSlot: tc.slot,
			})
			if !httperr.IsKind(err, httperr.KindValidation) {
				t.Fatalf("err = %v, want validation kind", err)
			}
		})
	}
}
