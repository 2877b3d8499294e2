package models

import "time"

type Consultation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudentID uint `gorm:"index;not null" json:"student_id"`
	Student   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"student"`

	ProfessorID uint `gorm:"index;not null" json:"professor_id"`
	Professor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"professor"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Scheduled date is "2006-01-02", scheduled time is "15:04", both in
	// the campus timezone. Duration is minutes, 15 to 240.
	ScheduledDate string `gorm:"size:10;index:idx_consultations_schedule" json:"scheduled_date"`
	ScheduledTime string `gorm:"size:5;index:idx_consultations_schedule" json:"scheduled_time"`
	Duration      int    `gorm:"default:30" json:"duration"`

	Status string `gorm:"size:20;index;default:'PENDING'" json:"status"`

	BookingCreatedAt   time.Time  `gorm:"autoCreateTime" json:"booking_created_at"`
	ConfirmedAt        *time.Time `json:"confirmed_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason"`

	CalendarEventID string `gorm:"size:255;index" json:"calendar_event_id"`

	MeetingLink string `gorm:"size:500" json:"meeting_link"`
	Location    string `gorm:"size:200" json:"location"`

	Notes    string `gorm:"type:text" json:"notes"`
	Rating   *int   `json:"rating"`
	Feedback string `gorm:"type:text" json:"feedback"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
