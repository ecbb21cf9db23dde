package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/hold"
	"github.com/glamflow/salon-scheduler/internal/models"
	"github.com/glamflow/salon-scheduler/internal/notify"
	"github.com/glamflow/salon-scheduler/internal/timezone"
)

// Runner owns the background schedules: booking reminders and the sweep
// that cancels pending_payment bookings whose window expired.
type Runner struct {
	repo          domain.Repository
	notifier      *notify.Dispatcher
	holds         *hold.Store
	cron          *cron.Cron
	paymentWindow time.Duration
	tz            string
}

func NewRunner(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	holds *hold.Store,
	paymentWindow time.Duration,
	tz string,
) *Runner {
	return &Runner{
		repo:          repo,
		notifier:      notifier,
		holds:         holds,
		cron:          cron.New(),
		paymentWindow: paymentWindow,
		tz:            tz,
	}
}

func (r *Runner) Start() {
	r.cron.AddFunc("* * * * *", r.sendReminders)
	r.cron.AddFunc("* * * * *", r.sweepStalePayments)
	r.cron.Start()
	log.Println("cron runner started")
}

func (r *Runner) Stop() {
	r.cron.Stop()
}

// sendReminders mails customers whose confirmed booking starts in one
// hour. The window is exactly one minute wide so the minutely tick
// catches each booking once.
func (r *Runner) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := timezone.NowIn(r.tz).Truncate(time.Minute)

	bookings, err := r.repo.ListRemindable(
		ctx,
		now.Add(60*time.Minute),
		now.Add(61*time.Minute),
	)
	if err != nil {
		log.Printf("reminder scan failed: %v", err)
		return
	}

	for i := range bookings {
		r.notifier.BookingReminder(&bookings[i])
	}
}

// sweepStalePayments cancels pending_payment bookings whose PENDING
// payment is older than the payment window.
func (r *Runner) sweepStalePayments() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-r.paymentWindow)

	stale, err := r.repo.ListStalePendingPayments(ctx, cutoff)
	if err != nil {
		log.Printf("stale payment scan failed: %v", err)
		return
	}

	for i := range stale {
		p := stale[i]

		b, err := r.repo.GetBooking(ctx, p.BookingID)
		if err != nil {
			log.Printf("stale payment %s: booking lookup failed: %v", p.OrderID, err)
			continue
		}

		if err := domain.Apply(b, domain.EventPaymentFailure, time.Now()); err != nil {
			continue
		}
		p.Status = models.PaymentFailed

		if err := r.repo.FailPayment(ctx, &p, b); err != nil {
			log.Printf("stale payment %s: fail transition failed: %v", p.OrderID, err)
			continue
		}

		r.holds.Release(ctx, b.StaffID, b.Date, b.TimeSlot)
		log.Printf("expired payment window for booking %d (order %s)", b.ID, p.OrderID)
	}
}
