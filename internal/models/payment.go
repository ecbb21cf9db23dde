package models

import "time"

const (
	PaymentPending    = "PENDING"
	PaymentSuccessful = "SUCCESSFUL"
	PaymentFailed     = "FAILED"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// OrderID is our reference sent to the gateway; PaymentID is the
	// gateway's own identifier, filled in by the callbacks.
	OrderID   string `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	PaymentID string `gorm:"size:64" json:"payment_id"`

	Amount float64    `gorm:"not null" json:"amount"`
	Status string     `gorm:"size:20;default:'PENDING'" json:"status"`
	PaidAt *time.Time `json:"paid_at,omitempty"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	BookingID uint    `gorm:"uniqueIndex;not null" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"booking"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
