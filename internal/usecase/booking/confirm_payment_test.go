package booking

import (
	"context"
	"testing"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
	"github.com/glamflow/salon-scheduler/internal/payment"
)

func seedPendingPayment(r *fakeRepo, orderID string) *models.Booking {
	b := &models.Booking{
		ID:       1,
		UserID:   7,
		StaffID:  2,
		Date:     "2026-03-02",
		TimeSlot: "10:00",
		Status:   string(domain.StatusPendingPayment),
	}
	r.bookings[b.ID] = b
	r.nextID = 1
	r.payments[orderID] = &models.Payment{
		ID:        1,
		OrderID:   orderID,
		BookingID: b.ID,
		Amount:    500,
		Status:    models.PaymentPending,
	}
	return b
}

func TestConfirmPaymentSuccess(t *testing.T) {
	repo := newFakeRepo()
	seedPendingPayment(repo, "ORD_1")
	gw := &fakeGateway{status: payment.StatusSuccess}
	notifier := &fakeNotifier{}
	holder := &fakeHolder{}

	uc := NewConfirmPayment(repo, gw, holder, notifier, &fakeAuditor{})
	b, err := uc.Execute(context.Background(), ConfirmPaymentInput{
		OrderID:   "ORD_1",
		PaymentID: "mp_123",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if b.Status != string(domain.StatusConfirmed) {
		t.Errorf("booking status = %q, want confirmed", b.Status)
	}
	p := repo.payments["ORD_1"]
	if p.Status != models.PaymentSuccessful {
		t.Errorf("payment status = %q, want SUCCESSFUL", p.Status)
	}
	if p.PaymentID != "mp_123" {
		t.Errorf("payment id = %q, want mp_123", p.PaymentID)
	}
	if repo.confirmedCalls != 1 {
		t.Errorf("ConfirmPayment calls = %d, want 1", repo.confirmedCalls)
	}
	if notifier.confirmations != 1 || notifier.receipts != 1 {
		t.Errorf("notifications = %d/%d, want 1/1",
			notifier.confirmations, notifier.receipts)
	}
	if holder.released != 1 {
		t.Errorf("hold releases = %d, want 1", holder.released)
	}
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{status: payment.StatusSuccess}

	uc := NewConfirmPayment(repo, gw, &fakeHolder{}, &fakeNotifier{}, &fakeAuditor{})
	_, err := uc.Execute(context.Background(), ConfirmPaymentInput{OrderID: "ORD_missing"})

	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("err = %v, want not_found kind", err)
	}
	if gw.orderCalls != 0 {
		t.Errorf("gateway touched for unknown order")
	}
	if repo.confirmedCalls != 0 || repo.failedCalls != 0 {
		t.Errorf("repository mutated for unknown order")
	}
}

func TestConfirmPaymentRejectedVerdictLeavesStateUntouched(t *testing.T) {
	repo := newFakeRepo()
	b := seedPendingPayment(repo, "ORD_2")
	gw := &fakeGateway{status: "rejected"}
	notifier := &fakeNotifier{}

	uc := NewConfirmPayment(repo, gw, &fakeHolder{}, notifier, &fakeAuditor{})
	_, err := uc.Execute(context.Background(), ConfirmPaymentInput{OrderID: "ORD_2"})

	if !httperr.IsBusiness(err, "payment_not_successful") {
		t.Fatalf("err = %v, want payment_not_successful", err)
	}
	if b.Status != string(domain.StatusPendingPayment) {
		t.Errorf("booking status changed to %q", b.Status)
	}
	if repo.payments["ORD_2"].Status != models.PaymentPending {
		t.Errorf("payment status changed to %q", repo.payments["ORD_2"].Status)
	}
	if notifier.confirmations != 0 {
		t.Errorf("confirmation sent for rejected payment")
	}
}

func TestConfirmPaymentAlreadyProcessed(t *testing.T) {
	repo := newFakeRepo()
	seedPendingPayment(repo, "ORD_3")
	repo.payments["ORD_3"].Status = models.PaymentSuccessful

	uc := NewConfirmPayment(repo, &fakeGateway{status: payment.StatusSuccess},
		&fakeHolder{}, &fakeNotifier{}, &fakeAuditor{})
	_, err := uc.Execute(context.Background(), ConfirmPaymentInput{OrderID: "ORD_3"})

	if !httperr.IsBusiness(err, "payment_already_processed") {
		t.Fatalf("err = %v, want payment_already_processed", err)
	}
}
