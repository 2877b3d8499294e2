package consultation

import (
	"time"

	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Each action checks its guard first and mutates nothing on failure.

func Confirm(cons *models.Consultation, now time.Time) error {
	if err := CanConfirm(Status(cons.Status)); err != nil {
		return err
	}

	cons.Status = string(StatusConfirmed)
	cons.ConfirmedAt = &now
	return nil
}

func Cancel(cons *models.Consultation, reason string, now time.Time) error {
	if err := CanCancel(Status(cons.Status)); err != nil {
		return err
	}

	cons.Status = string(StatusCancelled)
	cons.CancelledAt = &now
	if reason != "" {
		cons.CancellationReason = reason
	}
	return nil
}

func Complete(cons *models.Consultation) error {
	if err := CanComplete(Status(cons.Status)); err != nil {
		return err
	}

	cons.Status = string(StatusCompleted)
	return nil
}

func MarkNoShow(cons *models.Consultation) error {
	if err := CanMarkNoShow(Status(cons.Status)); err != nil {
		return err
	}

	cons.Status = string(StatusNoShow)
	return nil
}

// Reschedule moves a confirmed consultation to a new date/time/duration
// and sends it back to pending. ConfirmedAt is intentionally left as the
// timestamp of the original confirmation.
func Reschedule(cons *models.Consultation, date, hm string, duration int) error {
	if err := CanReschedule(Status(cons.Status)); err != nil {
		return err
	}
	if err := ValidateDuration(duration); err != nil {
		return err
	}

	cons.ScheduledDate = date
	cons.ScheduledTime = hm
	cons.Duration = duration
	cons.Status = string(StatusPending)
	return nil
}

// Rate records the student rating and feedback. Allowed exactly once,
// and only after completion.
func Rate(cons *models.Consultation, rating int, feedback string) error {
	if Status(cons.Status) != StatusCompleted || cons.Rating != nil {
		return httperr.ErrBusiness("cannot_rate")
	}
	if rating < 1 || rating > 5 {
		return httperr.ErrBusiness("invalid_rating")
	}

	cons.Rating = &rating
	cons.Feedback = feedback
	return nil
}

// ===============================
// Validation
// ===============================

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240
)

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return httperr.ErrBusiness("invalid_duration")
	}
	return nil
}
