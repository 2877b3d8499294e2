package consultation

import "time"

type AvailabilityInput struct {
	ProfessorID uint
	Date        time.Time
}

// BookedSlot is an occupied interval [Start, End) in "15:04" form. End
// already includes the professor's buffer after the booking.
type BookedSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayAvailability carries both the advertised template slots and the
// occupied intervals for one professor and date. Subtracting one set
// from the other is left to the caller.
type DayAvailability struct {
	ProfessorID     uint         `json:"professor_id"`
	ProfessorName   string       `json:"professor_name"`
	Date            string       `json:"date"`
	AvailableSlots  []string     `json:"available_slots"`
	BookedSlots     []BookedSlot `json:"booked_slots"`
	DefaultDuration int          `json:"default_duration"`
	BufferMinutes   int          `json:"buffer_minutes"`
}
