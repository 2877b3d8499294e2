package consultation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/models"
)

func pendingConsultation() *models.Consultation {
	return &models.Consultation{
		ID:            1,
		StudentID:     10,
		ProfessorID:   20,
		Title:         "Thesis review",
		ScheduledDate: "2026-09-10",
		ScheduledTime: "14:00",
		Duration:      30,
		Status:        string(StatusPending),
	}
}

func TestConfirm(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	cons := pendingConsultation()
	err := Confirm(cons, now)

	assert.NoError(t, err)
	assert.Equal(t, string(StatusConfirmed), cons.Status)
	if assert.NotNil(t, cons.ConfirmedAt) {
		assert.Equal(t, now, *cons.ConfirmedAt)
	}

	// A second confirm loses and mutates nothing.
	err = Confirm(cons, now.Add(time.Hour))
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, now, *cons.ConfirmedAt)
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("from pending", func(t *testing.T) {
		cons := pendingConsultation()
		err := Cancel(cons, "student sick", now)

		assert.NoError(t, err)
		assert.Equal(t, string(StatusCancelled), cons.Status)
		assert.Equal(t, "student sick", cons.CancellationReason)
		if assert.NotNil(t, cons.CancelledAt) {
			assert.Equal(t, now, *cons.CancelledAt)
		}
	})

	t.Run("from confirmed", func(t *testing.T) {
		cons := pendingConsultation()
		assert.NoError(t, Confirm(cons, now))
		assert.NoError(t, Cancel(cons, "", now))
		assert.Equal(t, string(StatusCancelled), cons.Status)
		assert.Empty(t, cons.CancellationReason)
	})

	t.Run("terminal stays terminal", func(t *testing.T) {
		cons := pendingConsultation()
		assert.NoError(t, Cancel(cons, "first", now))

		err := Cancel(cons, "second", now.Add(time.Hour))
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Equal(t, "first", cons.CancellationReason)
		assert.Equal(t, now, *cons.CancelledAt)
	})
}

func TestCompleteAndNoShow(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("complete requires confirmed", func(t *testing.T) {
		cons := pendingConsultation()
		err := Complete(cons)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))

		assert.NoError(t, Confirm(cons, now))
		assert.NoError(t, Complete(cons))
		assert.Equal(t, string(StatusCompleted), cons.Status)
	})

	t.Run("no-show requires confirmed", func(t *testing.T) {
		cons := pendingConsultation()
		err := MarkNoShow(cons)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))

		assert.NoError(t, Confirm(cons, now))
		assert.NoError(t, MarkNoShow(cons))
		assert.Equal(t, string(StatusNoShow), cons.Status)
	})
}

func TestReschedule(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("moves back to pending, keeps confirmation timestamp", func(t *testing.T) {
		cons := pendingConsultation()
		assert.NoError(t, Confirm(cons, now))

		err := Reschedule(cons, "2026-09-15", "16:30", 45)
		assert.NoError(t, err)
		assert.Equal(t, string(StatusPending), cons.Status)
		assert.Equal(t, "2026-09-15", cons.ScheduledDate)
		assert.Equal(t, "16:30", cons.ScheduledTime)
		assert.Equal(t, 45, cons.Duration)
		if assert.NotNil(t, cons.ConfirmedAt) {
			assert.Equal(t, now, *cons.ConfirmedAt)
		}
	})

	t.Run("rejected from pending", func(t *testing.T) {
		cons := pendingConsultation()
		err := Reschedule(cons, "2026-09-15", "16:30", 45)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Equal(t, "2026-09-10", cons.ScheduledDate)
	})

	t.Run("rejected duration mutates nothing", func(t *testing.T) {
		cons := pendingConsultation()
		assert.NoError(t, Confirm(cons, now))

		err := Reschedule(cons, "2026-09-15", "16:30", 10)
		assert.True(t, httperr.IsBusiness(err, "invalid_duration"))
		assert.Equal(t, string(StatusConfirmed), cons.Status)
		assert.Equal(t, "2026-09-10", cons.ScheduledDate)
	})
}

func TestRate(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	completed := func() *models.Consultation {
		cons := pendingConsultation()
		assert.NoError(t, Confirm(cons, now))
		assert.NoError(t, Complete(cons))
		return cons
	}

	t.Run("once after completion", func(t *testing.T) {
		cons := completed()
		assert.NoError(t, Rate(cons, 4, "helpful"))
		if assert.NotNil(t, cons.Rating) {
			assert.Equal(t, 4, *cons.Rating)
		}
		assert.Equal(t, "helpful", cons.Feedback)

		err := Rate(cons, 5, "changed my mind")
		assert.True(t, httperr.IsBusiness(err, "cannot_rate"))
		assert.Equal(t, 4, *cons.Rating)
		assert.Equal(t, "helpful", cons.Feedback)
	})

	t.Run("only completed consultations", func(t *testing.T) {
		cons := pendingConsultation()
		err := Rate(cons, 5, "")
		assert.True(t, httperr.IsBusiness(err, "cannot_rate"))
	})

	t.Run("rating range", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			cons := completed()
			err := Rate(cons, rating, "")
			assert.True(t, httperr.IsBusiness(err, "invalid_rating"), "rating %d", rating)
			assert.Nil(t, cons.Rating)
		}
	})
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(15))
	assert.NoError(t, ValidateDuration(30))
	assert.NoError(t, ValidateDuration(240))

	assert.True(t, httperr.IsBusiness(ValidateDuration(14), "invalid_duration"))
	assert.True(t, httperr.IsBusiness(ValidateDuration(241), "invalid_duration"))
	assert.True(t, httperr.IsBusiness(ValidateDuration(0), "invalid_duration"))
}
