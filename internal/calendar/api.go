package calendar

import (
	"context"
	"errors"
	"time"
)

// Event is the provider-neutral shape of a remote calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Status      string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// EventStatusCancelled mirrors the remote provider's cancelled marker.
const EventStatusCancelled = "cancelled"

// ErrEventNotFound is returned by Get/Delete when the remote event no
// longer exists; Delete treats it as success.
var ErrEventNotFound = errors.New("calendar event not found")

// API is a calendar bound to one professor's credentials.
type API interface {
	Insert(ctx context.Context, ev *Event) (string, error)
	Get(ctx context.Context, eventID string) (*Event, error)
	Update(ctx context.Context, eventID string, ev *Event) error
	Delete(ctx context.Context, eventID string) error
}
