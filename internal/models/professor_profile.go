package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// WeeklySlots maps lowercase weekday names ("monday"..."sunday") to the
// ordered "HH:MM" start times the professor advertises for that day.
type WeeklySlots map[string][]string

func (w WeeklySlots) Value() (driver.Value, error) {
	if w == nil {
		return "{}", nil
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (w *WeeklySlots) Scan(value interface{}) error {
	if value == nil {
		*w = WeeklySlots{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for WeeklySlots")
	}

	if len(data) == 0 {
		*w = WeeklySlots{}
		return nil
	}
	return json.Unmarshal(data, w)
}

func (w WeeklySlots) ForDay(day string) []string {
	if w == nil {
		return nil
	}
	return w[strings.ToLower(day)]
}

type ProfessorProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title          string `gorm:"size:50" json:"title"`
	Department     string `gorm:"size:100;index" json:"department"`
	OfficeLocation string `gorm:"size:200" json:"office_location"`

	DefaultDuration       int         `gorm:"default:30" json:"default_duration"`
	AvailableDays         WeeklySlots `gorm:"type:jsonb;default:'{}'" json:"available_days"`
	MaxAdvanceBookingDays int         `gorm:"default:30" json:"max_advance_booking_days"`
	BufferMinutes         int         `gorm:"default:15" json:"buffer_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
