package booking

import (
	"context"
	"time"

	"github.com/glamflow/salon-scheduler/internal/audit"
	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

// fakeRepo is an in-memory stand-in for the gorm repository.
type fakeRepo struct {
	services map[uint]*models.Service
	staff    map[uint]*models.Staff
	bookings map[uint]*models.Booking
	payments map[string]*models.Payment

	taken          bool
	createErr      error
	nextID         uint
	confirmedCalls int
	failedCalls    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uint]*models.Service{},
		staff:    map[uint]*models.Staff{},
		bookings: map[uint]*models.Booking{},
		payments: map[string]*models.Payment{},
	}
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return s, nil
}

func (r *fakeRepo) GetStaff(_ context.Context, id uint) (*models.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, httperr.ErrNotFound("staff_not_found")
	}
	return s, nil
}

func (r *fakeRepo) GetStaffByUser(_ context.Context, userID uint) (*models.Staff, error) {
	for _, s := range r.staff {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, httperr.ErrNotFound("staff_not_found")
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	b.ID = r.nextID
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) SlotTaken(context.Context, uint, string, string) (bool, error) {
	return r.taken, nil
}

func (r *fakeRepo) ListBookedSlots(_ context.Context, staffID uint, date string) ([]string, error) {
	var out []string
	for _, b := range r.bookings {
		if b.StaffID == staffID && b.Date == date {
			out = append(out, b.TimeSlot)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	return b, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) CreateBookingWithPayment(ctx context.Context, b *models.Booking, p *models.Payment) error {
	if err := r.CreateBooking(ctx, b); err != nil {
		return err
	}
	p.BookingID = b.ID
	r.payments[p.OrderID] = p
	return nil
}

func (r *fakeRepo) GetPaymentByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	p, ok := r.payments[orderID]
	if !ok {
		return nil, httperr.ErrNotFound("payment_not_found")
	}
	return p, nil
}

func (r *fakeRepo) ConfirmPayment(_ context.Context, p *models.Payment, b *models.Booking) error {
	r.confirmedCalls++
	r.payments[p.OrderID] = p
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) FailPayment(_ context.Context, p *models.Payment, b *models.Booking) error {
	r.failedCalls++
	r.payments[p.OrderID] = p
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) ListStalePendingPayments(_ context.Context, cutoff time.Time) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.Status == models.PaymentPending && p.CreatedAt.Before(cutoff) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListRemindable(context.Context, time.Time, time.Time) ([]models.Booking, error) {
	return nil, nil
}

// fakeGateway returns canned answers.
type fakeGateway struct {
	token      string
	orderErr   error
	status     string
	statusErr  error
	lastOrder  string
	orderCalls int
}

func (g *fakeGateway) CreateOrder(_ context.Context, orderID string, _ float64, _, _, _ string) (string, error) {
	g.orderCalls++
	g.lastOrder = orderID
	if g.orderErr != nil {
		return "", g.orderErr
	}
	return g.token, nil
}

func (g *fakeGateway) GetPaymentStatus(context.Context, string) (string, error) {
	if g.statusErr != nil {
		return "", g.statusErr
	}
	return g.status, nil
}

type fakeNotifier struct {
	confirmations int
	receipts      int
}

func (n *fakeNotifier) BookingConfirmation(*models.Booking) { n.confirmations++ }

func (n *fakeNotifier) PaymentReceipt(*models.Booking, string, float64) { n.receipts++ }

type fakeAuditor struct {
	events []audit.Event
}

func (a *fakeAuditor) Dispatch(ev audit.Event) { a.events = append(a.events, ev) }

type fakeHolder struct {
	acquired bool
	denied   bool
	released int
}

func (h *fakeHolder) Acquire(context.Context, uint, string, string) (bool, error) {
	if h.denied {
		return false, nil
	}
	h.acquired = true
	return true, nil
}

func (h *fakeHolder) Release(context.Context, uint, string, string) error {
	h.released++
	return nil
}
