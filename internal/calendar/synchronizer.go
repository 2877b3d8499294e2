package calendar

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/models"
	"github.com/unidesk/consult-scheduler/internal/timezone"
)

// APIFactory yields a calendar API bound to one professor. The Google
// factory refreshes credentials; tests substitute stubs.
type APIFactory func(ctx context.Context, professor *models.User) (API, error)

// Synchronizer mirrors confirmed consultations into the professor's
// remote calendar and reconciles remote cancellations back. All remote
// failures stop at this boundary.
type Synchronizer struct {
	repo     domain.Repository
	apiFor   APIFactory
	campusTZ string
	logger   *zap.Logger
}

func NewSynchronizer(
	repo domain.Repository,
	apiFor APIFactory,
	campusTZ string,
	logger *zap.Logger,
) *Synchronizer {
	return &Synchronizer{
		repo:     repo,
		apiFor:   apiFor,
		campusTZ: campusTZ,
		logger:   logger,
	}
}

// BuildEvent maps a consultation onto the remote event shape. The
// meeting link is appended to the description the way attendees expect
// to find it.
func BuildEvent(cons *models.Consultation, studentEmail, professorEmail, tz string) (*Event, error) {
	start, err := timezone.Combine(cons.ScheduledDate, cons.ScheduledTime, tz)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(cons.Duration) * time.Minute)

	description := cons.Description
	if cons.MeetingLink != "" {
		description += "\n\nMeeting Link: " + cons.MeetingLink
	}

	return &Event{
		Summary:     "Consultation: " + cons.Title,
		Description: description,
		Location:    cons.Location,
		Start:       start.UTC(),
		End:         end.UTC(),
		Attendees:   []string{studentEmail, professorEmail},
	}, nil
}

// CreateEvent returns the remote event id. A missing credential or any
// remote failure is an error the caller logs and otherwise ignores;
// the booking itself is never failed on it.
func (s *Synchronizer) CreateEvent(ctx context.Context, cons *models.Consultation) (string, error) {
	api, student, professor, err := s.setup(ctx, cons)
	if err != nil {
		return "", err
	}

	ev, err := BuildEvent(cons, student.Email, professor.Email, s.campusTZ)
	if err != nil {
		return "", err
	}

	eventID, err := api.Insert(ctx, ev)
	if err != nil {
		return "", err
	}

	s.logger.Info("created calendar event",
		zap.Uint("consultation_id", cons.ID),
		zap.String("event_id", eventID))
	return eventID, nil
}

// UpdateEvent re-submits the stored event with the consultation's
// current fields. The event is updated in place, never recreated.
func (s *Synchronizer) UpdateEvent(ctx context.Context, cons *models.Consultation) error {
	if cons.CalendarEventID == "" {
		return errors.New("consultation has no calendar event")
	}

	api, student, professor, err := s.setup(ctx, cons)
	if err != nil {
		return err
	}

	ev, err := BuildEvent(cons, student.Email, professor.Email, s.campusTZ)
	if err != nil {
		return err
	}

	if err := api.Update(ctx, cons.CalendarEventID, ev); err != nil {
		return err
	}

	s.logger.Info("updated calendar event",
		zap.Uint("consultation_id", cons.ID),
		zap.String("event_id", cons.CalendarEventID))
	return nil
}

// DeleteEvent is best-effort: an event that is already gone counts as
// deleted.
func (s *Synchronizer) DeleteEvent(ctx context.Context, professorID uint, eventID string) error {
	professor, err := s.repo.GetUser(ctx, professorID)
	if err != nil {
		return err
	}

	api, err := s.apiFor(ctx, professor)
	if err != nil {
		return err
	}

	err = api.Delete(ctx, eventID)
	if errors.Is(err, ErrEventNotFound) {
		s.logger.Warn("calendar event already deleted", zap.String("event_id", eventID))
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("deleted calendar event", zap.String("event_id", eventID))
	return nil
}

// Reconcile walks confirmed consultations with a stored event id and
// cancels locally any whose remote event is gone or marked cancelled.
// External state wins; there is no merge.
func (s *Synchronizer) Reconcile(ctx context.Context) {
	list, err := s.repo.ListConfirmedWithCalendarEvent(ctx)
	if err != nil {
		s.logger.Error("reconcile: failed to list consultations", zap.Error(err))
		return
	}

	synced := 0
	for i := range list {
		cons := &list[i]
		if s.reconcileOne(ctx, cons) {
			synced++
		}
	}

	s.logger.Info("calendar reconciliation finished",
		zap.Int("checked", len(list)),
		zap.Int("cancelled", synced))
}

func (s *Synchronizer) reconcileOne(ctx context.Context, cons *models.Consultation) bool {
	professor, err := s.repo.GetUser(ctx, cons.ProfessorID)
	if err != nil {
		s.logger.Error("reconcile: professor lookup failed",
			zap.Uint("consultation_id", cons.ID),
			zap.Error(err))
		return false
	}

	api, err := s.apiFor(ctx, professor)
	if err != nil {
		s.logger.Warn("reconcile: calendar unavailable for professor",
			zap.Uint("professor_id", professor.ID),
			zap.Error(err))
		return false
	}

	ev, err := api.Get(ctx, cons.CalendarEventID)
	switch {
	case errors.Is(err, ErrEventNotFound):
		// deleted remotely
	case err != nil:
		s.logger.Error("reconcile: event fetch failed",
			zap.Uint("consultation_id", cons.ID),
			zap.Error(err))
		return false
	case ev.Status != EventStatusCancelled:
		return false
	}

	now := time.Now()
	_, err = s.repo.Mutate(ctx, cons.ID, func(c *models.Consultation) error {
		return domain.Cancel(c, "", now)
	})
	if err != nil {
		// Already moved out of CONFIRMED by someone else: nothing to do.
		s.logger.Warn("reconcile: local cancel skipped",
			zap.Uint("consultation_id", cons.ID),
			zap.Error(err))
		return false
	}

	s.logger.Info("reconcile: consultation cancelled from calendar",
		zap.Uint("consultation_id", cons.ID))
	return true
}

func (s *Synchronizer) setup(
	ctx context.Context,
	cons *models.Consultation,
) (API, *models.User, *models.User, error) {

	professor, err := s.repo.GetUser(ctx, cons.ProfessorID)
	if err != nil {
		return nil, nil, nil, err
	}
	student, err := s.repo.GetUser(ctx, cons.StudentID)
	if err != nil {
		return nil, nil, nil, err
	}

	api, err := s.apiFor(ctx, professor)
	if err != nil {
		return nil, nil, nil, err
	}

	return api, student, professor, nil
}
