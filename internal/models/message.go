package models

import "time"

// Message is one chat line between a customer and the support team.
// ToUserID is nil when the message is addressed to support rather than a
// specific user; ConversationID groups a thread by the customer's user id.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Text string `gorm:"type:text;not null" json:"text"`

	FromUserID uint  `gorm:"not null;index" json:"from_user_id"`
	ToUserID   *uint `gorm:"index" json:"to_user_id"`

	ConversationID uint `gorm:"not null;index" json:"conversation_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
