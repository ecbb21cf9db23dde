package booking

import (
	"context"
	"strings"
	"testing"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

func TestInitiatePaymentHappyPath(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	gw := &fakeGateway{token: "sess_abc"}
	holder := &fakeHolder{}

	uc := NewInitiatePayment(repo, gw, holder, &fakeAuditor{}, "INR")
	out, err := uc.Execute(context.Background(), InitiatePaymentInput{
		UserID: 7, StaffID: 2, ServiceID: 1,
		Date: "2026-03-02", TimeSlot: "10:00",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if out.SessionToken != "sess_abc" {
		t.Errorf("session token = %q", out.SessionToken)
	}
	if !strings.HasPrefix(out.OrderID, "ORD_") {
		t.Errorf("order id = %q, want ORD_ prefix", out.OrderID)
	}
	if out.Amount != 500 || out.Currency != "INR" {
		t.Errorf("amount/currency = %v/%q", out.Amount, out.Currency)
	}

	b := repo.bookings[out.BookingID]
	if b.Status != string(domain.StatusPendingPayment) {
		t.Errorf("booking status = %q, want pending_payment", b.Status)
	}
	if repo.payments[out.OrderID].Status != models.PaymentPending {
		t.Errorf("payment not PENDING")
	}
	if !holder.acquired {
		t.Errorf("slot hold never acquired")
	}
}

func TestInitiatePaymentHoldDenied(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	holder := &fakeHolder{denied: true}

	uc := NewInitiatePayment(repo, &fakeGateway{token: "x"}, holder, &fakeAuditor{}, "INR")
	_, err := uc.Execute(context.Background(), InitiatePaymentInput{
		UserID: 7, StaffID: 2, ServiceID: 1,
		Date: "2026-03-02", TimeSlot: "10:00",
	})
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("err = %v, want slot_taken", err)
	}
	if len(repo.bookings) != 0 {
		t.Errorf("booking created despite denied hold")
	}
}

func TestInitiatePaymentGatewayFailureRollsBack(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)
	gw := &fakeGateway{orderErr: httperr.ErrUpstream("gateway_order_failed")}
	holder := &fakeHolder{}

	uc := NewInitiatePayment(repo, gw, holder, &fakeAuditor{}, "INR")
	_, err := uc.Execute(context.Background(), InitiatePaymentInput{
		UserID: 7, StaffID: 2, ServiceID: 1,
		Date: "2026-03-02", TimeSlot: "10:00",
	})
	if !httperr.IsKind(err, httperr.KindUpstream) {
		t.Fatalf("err = %v, want upstream kind", err)
	}

	if repo.failedCalls != 1 {
		t.Errorf("FailPayment calls = %d, want 1", repo.failedCalls)
	}
	if holder.released != 1 {
		t.Errorf("hold releases = %d, want 1", holder.released)
	}
	p := repo.payments[gw.lastOrder]
	if p == nil || p.Status != models.PaymentFailed {
		t.Errorf("payment not marked FAILED after gateway error")
	}
	b := repo.bookings[p.BookingID]
	if b.Status != string(domain.StatusCancelled) {
		t.Errorf("booking status = %q, want cancelled", b.Status)
	}
}
