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

type ConfirmConsultation struct {
	repo       domain.Repository
	sync       *calendar.Synchronizer
	dispatcher *notify.Dispatcher
	campusTZ   string
	logger     *zap.Logger
}

func NewConfirmConsultation(
	repo domain.Repository,
	sync *calendar.Synchronizer,
	dispatcher *notify.Dispatcher,
	campusTZ string,
	logger *zap.Logger,
) *ConfirmConsultation {
	return &ConfirmConsultation{
		repo:       repo,
		sync:       sync,
		dispatcher: dispatcher,
		campusTZ:   campusTZ,
		logger:     logger,
	}
}

func (uc *ConfirmConsultation) Execute(
	ctx context.Context,
	professorID uint,
	consultationID uint,
) (*models.Consultation, error) {

	now := timezone.NowIn(uc.campusTZ)

	cons, err := uc.repo.Mutate(ctx, consultationID, func(c *models.Consultation) error {
		if c.ProfessorID != professorID {
			return httperr.ErrBusiness("forbidden")
		}
		return domain.Confirm(c, now)
	})
	if err != nil {
		return nil, err
	}

	// Calendar sync is best-effort: a failure here is a skipped sync,
	// never a failed confirmation.
	eventID, err := uc.sync.CreateEvent(ctx, cons)
	if err != nil {
		uc.logger.Warn("calendar sync skipped on confirm",
			zap.Uint("consultation_id", cons.ID),
			zap.Error(err))
	} else if eventID != "" {
		cons, err = uc.repo.Mutate(ctx, consultationID, func(c *models.Consultation) error {
			c.CalendarEventID = eventID
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	uc.dispatcher.BookingConfirmed(ctx, cons)

	return cons, nil
}
