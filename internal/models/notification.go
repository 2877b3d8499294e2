package models

import "time"

const (
	ChannelEmail = "EMAIL"
	ChannelInApp = "IN_APP"
)

const (
	MessageBookingCreated   = "BOOKING_CREATED"
	MessageBookingConfirmed = "BOOKING_CONFIRMED"
	MessageReminder24h      = "REMINDER_24H"
	MessageCancelled        = "CANCELLED"
	MessageRescheduled      = "RESCHEDULED"
)

const (
	EmailPending = "PENDING"
	EmailSent    = "SENT"
	EmailFailed  = "FAILED"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ConsultationID *uint         `gorm:"index" json:"consultation_id"`
	Consultation   *Consultation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Channel     string `gorm:"size:10;not null" json:"channel"`
	MessageType string `gorm:"size:20;index;not null" json:"message_type"`

	EmailStatus string     `gorm:"size:10;index;default:'PENDING'" json:"email_status"`
	SentAt      *time.Time `json:"sent_at"`
	ReadAt      *time.Time `gorm:"index" json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
