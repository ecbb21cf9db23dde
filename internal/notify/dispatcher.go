package notify

import (
	"fmt"
	"log"

	"github.com/glamflow/salon-scheduler/internal/models"
)

type email struct {
	to      string
	subject string
	html    string
}

// Sender is what the dispatcher needs from a mail transport. Satisfied by
// *Mailer; tests substitute a recorder.
type Sender interface {
	Send(to, subject, html string) error
}

// Dispatcher queues notifications off the request path. Sends are
// fire-and-forget: failures are logged and never roll back a transition.
type Dispatcher struct {
	sender Sender
	queue  chan email
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan email, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for e := range d.queue {
		if err := d.sender.Send(e.to, e.subject, e.html); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) enqueue(e email) {
	if e.to == "" {
		return
	}
	select {
	case d.queue <- e:
	default:
		log.Println("notify queue full, dropping email")
	}
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (d *Dispatcher) BookingConfirmation(b *models.Booking) {
	d.enqueue(email{
		to:      b.User.Email,
		subject: "Your appointment is confirmed",
		html: fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your appointment for <strong>%s</strong> with %s is confirmed.</p>
			<ul>
				<li><strong>Date:</strong> %s</li>
				<li><strong>Time:</strong> %s</li>
			</ul>
			<p>See you soon!</p>
		`, b.User.Name, b.Service.Name, b.Staff.User.Name, b.Date, b.TimeSlot),
	})
}

func (d *Dispatcher) PaymentReceipt(b *models.Booking, orderID string, amount float64) {
	d.enqueue(email{
		to:      b.User.Email,
		subject: "Payment received",
		html: fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>We received your payment of %.2f for order <strong>%s</strong>.</p>
			<p>Your booking on %s at %s is confirmed.</p>
		`, b.User.Name, amount, orderID, b.Date, b.TimeSlot),
	})
}

func (d *Dispatcher) BookingReminder(b *models.Booking) {
	d.enqueue(email{
		to:      b.User.Email,
		subject: fmt.Sprintf("Reminder: %s appointment at %s", b.Service.Name, b.TimeSlot),
		html: fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>This is a reminder for your upcoming appointment in one hour.</p>
			<ul>
				<li><strong>Service:</strong> %s</li>
				<li><strong>Staff:</strong> %s</li>
				<li><strong>Date:</strong> %s</li>
				<li><strong>Time:</strong> %s</li>
			</ul>
			<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		`, b.User.Name, b.Service.Name, b.Staff.User.Name, b.Date, b.TimeSlot),
	})
}

func (d *Dispatcher) PasswordReset(to, name, token string) {
	d.enqueue(email{
		to:      to,
		subject: "Password reset request",
		html: fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Use the token below to reset your password. It expires in one hour.</p>
			<p><strong>%s</strong></p>
			<p>If you did not request this, you can ignore this email.</p>
		`, name, token),
	})
}
