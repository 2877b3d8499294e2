package consultation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/models"
)

func pendingConsultation() *models.Consultation {
	return &models.Consultation{
		ID:            7,
		StudentID:     1,
		ProfessorID:   2,
		Title:         "Thesis review",
		ScheduledDate: "2026-09-10",
		ScheduledTime: "14:00",
		Duration:      30,
		Status:        string(domain.StatusPending),
	}
}

func TestConfirmConsultation(t *testing.T) {
	env := newTestEnv(t)
	env.seedConsultation(pendingConsultation())
	env.api.insertID = "evt-123"

	uc := NewConfirmConsultation(env.repo, env.sync, env.dispatcher, "UTC", zap.NewNop())

	cons, err := uc.Execute(context.Background(), 2, 7)
	assert.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), cons.Status)
	assert.NotNil(t, cons.ConfirmedAt)
	assert.Equal(t, "evt-123", cons.CalendarEventID)
	assert.Equal(t, "evt-123", env.repo.consultations[7].CalendarEventID)

	// Only the student is told.
	assert.Equal(t, []string{models.MessageBookingConfirmed}, env.messageTypesFor(1))
	assert.Empty(t, env.messageTypesFor(2))
}

func TestConfirmConsultationSurvivesCalendarFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seedConsultation(pendingConsultation())
	env.apiErr = errors.New("professor has no calendar credentials")

	uc := NewConfirmConsultation(env.repo, env.sync, env.dispatcher, "UTC", zap.NewNop())

	cons, err := uc.Execute(context.Background(), 2, 7)
	assert.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), cons.Status)
	assert.Empty(t, cons.CalendarEventID)
	assert.Equal(t, []string{models.MessageBookingConfirmed}, env.messageTypesFor(1))
}

func TestConfirmConsultationForbiddenForOtherProfessor(t *testing.T) {
	env := newTestEnv(t)
	env.seedConsultation(pendingConsultation())

	uc := NewConfirmConsultation(env.repo, env.sync, env.dispatcher, "UTC", zap.NewNop())

	_, err := uc.Execute(context.Background(), 99, 7)
	assert.True(t, httperr.IsBusiness(err, "forbidden"))
	assert.Equal(t, string(domain.StatusPending), env.repo.consultations[7].Status)
	assert.Empty(t, env.store.records)
}

func TestConfirmConsultationAlreadyConfirmed(t *testing.T) {
	env := newTestEnv(t)
	cons := pendingConsultation()
	cons.Status = string(domain.StatusConfirmed)
	env.seedConsultation(cons)

	uc := NewConfirmConsultation(env.repo, env.sync, env.dispatcher, "UTC", zap.NewNop())

	_, err := uc.Execute(context.Background(), 2, 7)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
