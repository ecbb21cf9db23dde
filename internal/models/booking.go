package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	StaffID uint  `json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Date is the calendar day ("2006-01-02"); TimeSlot is the slot's
	// start time ("15:04"). Slot exclusivity is enforced by a partial
	// unique index over (staff_id, date, time_slot), see db.NewDB.
	Date     string `gorm:"size:10;not null;index" json:"date"`
	TimeSlot string `gorm:"size:8;not null" json:"time_slot"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
