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

type CancelConsultation struct {
	repo       domain.Repository
	sync       *calendar.Synchronizer
	dispatcher *notify.Dispatcher
	campusTZ   string
	logger     *zap.Logger
}

func NewCancelConsultation(
	repo domain.Repository,
	sync *calendar.Synchronizer,
	dispatcher *notify.Dispatcher,
	campusTZ string,
	logger *zap.Logger,
) *CancelConsultation {
	return &CancelConsultation{
		repo:       repo,
		sync:       sync,
		dispatcher: dispatcher,
		campusTZ:   campusTZ,
		logger:     logger,
	}
}

// Execute cancels on behalf of either party. The remote event delete is
// attempted before the status mutation; a remote not-found still counts
// as deleted, and any other remote failure does not block cancellation.
func (uc *CancelConsultation) Execute(
	ctx context.Context,
	actorID uint,
	consultationID uint,
	reason string,
) (*models.Consultation, error) {

	cons, err := uc.repo.GetConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	if cons.StudentID != actorID && cons.ProfessorID != actorID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := domain.CanCancel(domain.Status(cons.Status)); err != nil {
		return nil, err
	}

	if cons.CalendarEventID != "" {
		if err := uc.sync.DeleteEvent(ctx, cons.ProfessorID, cons.CalendarEventID); err != nil {
			uc.logger.Warn("calendar event delete failed on cancel",
				zap.Uint("consultation_id", cons.ID),
				zap.Error(err))
		}
	}

	now := timezone.NowIn(uc.campusTZ)

	cons, err = uc.repo.Mutate(ctx, consultationID, func(c *models.Consultation) error {
		return domain.Cancel(c, reason, now)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Cancelled(ctx, cons, reason)

	return cons, nil
}
