package consultation

import (
	"context"

	"go.uber.org/zap"

	"github.com/unidesk/consult-scheduler/internal/calendar"
	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/models"
	"github.com/unidesk/consult-scheduler/internal/notify"
	"github.com/unidesk/consult-scheduler/internal/timezone"
)

type RescheduleInput struct {
	ActorID        uint
	ConsultationID uint
	Date           string
	Time           string
	Duration       int // 0 keeps the current duration
}

type RescheduleConsultation struct {
	repo       domain.Repository
	sync       *calendar.Synchronizer
	dispatcher *notify.Dispatcher
	campusTZ   string
	logger     *zap.Logger
}

func NewRescheduleConsultation(
	repo domain.Repository,
	sync *calendar.Synchronizer,
	dispatcher *notify.Dispatcher,
	campusTZ string,
	logger *zap.Logger,
) *RescheduleConsultation {
	return &RescheduleConsultation{
		repo:       repo,
		sync:       sync,
		dispatcher: dispatcher,
		campusTZ:   campusTZ,
		logger:     logger,
	}
}

// Execute moves a confirmed consultation and resets it to pending. The
// remote event is updated in place, not deleted and recreated.
func (uc *RescheduleConsultation) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Consultation, error) {

	if _, err := timezone.Combine(in.Date, in.Time, uc.campusTZ); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	cons, err := uc.repo.Mutate(ctx, in.ConsultationID, func(c *models.Consultation) error {
		if c.StudentID != in.ActorID && c.ProfessorID != in.ActorID {
			return httperr.ErrBusiness("forbidden")
		}

		duration := in.Duration
		if duration == 0 {
			duration = c.Duration
		}

		return domain.Reschedule(c, in.Date, in.Time, duration)
	})
	if err != nil {
		return nil, err
	}

	if cons.CalendarEventID != "" {
		if err := uc.sync.UpdateEvent(ctx, cons); err != nil {
			uc.logger.Warn("calendar event update failed on reschedule",
				zap.Uint("consultation_id", cons.ID),
				zap.Error(err))
		}
	}

	uc.dispatcher.Rescheduled(ctx, cons)

	return cons, nil
}
