package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/unidesk/consult-scheduler/internal/calendar"
	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/notify"
	"github.com/unidesk/consult-scheduler/internal/timezone"
)

// Scheduler runs the periodic jobs: the 24h reminder scan and the
// calendar reconciliation. Every run is independent and safe to repeat;
// reminders dedupe through get-or-create and reconciliation overwrites
// an already-cancelled row into a no-op.
type Scheduler struct {
	repo       domain.Repository
	dispatcher *notify.Dispatcher
	sync       *calendar.Synchronizer
	campusTZ   string

	reminderInterval  time.Duration
	reconcileInterval time.Duration

	logger   *zap.Logger
	stopChan chan struct{}
}

func NewScheduler(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
	sync *calendar.Synchronizer,
	campusTZ string,
	reminderInterval time.Duration,
	reconcileInterval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		repo:              repo,
		dispatcher:        dispatcher,
		sync:              sync,
		campusTZ:          campusTZ,
		reminderInterval:  reminderInterval,
		reconcileInterval: reconcileInterval,
		logger:            logger,
		stopChan:          make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("starting background scheduler")

	go s.runReminderTask(ctx)
	go s.runReconcileTask(ctx)
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runReminderTask(ctx context.Context) {
	s.SendReminders(ctx)

	ticker := time.NewTicker(s.reminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SendReminders(ctx)
		case <-s.stopChan:
			s.logger.Info("reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("reminder task cancelled")
			return
		}
	}
}

func (s *Scheduler) runReconcileTask(ctx context.Context) {
	ticker := time.NewTicker(s.reconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sync.Reconcile(ctx)
		case <-s.stopChan:
			s.logger.Info("reconcile task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("reconcile task cancelled")
			return
		}
	}
}

// SendReminders notifies both parties of every confirmed consultation
// scheduled for tomorrow.
func (s *Scheduler) SendReminders(ctx context.Context) {
	tomorrow := timezone.NowIn(s.campusTZ).
		AddDate(0, 0, 1).
		Format(timezone.DateLayout)

	list, err := s.repo.ListConfirmedOnDate(ctx, tomorrow)
	if err != nil {
		s.logger.Error("reminder scan failed", zap.Error(err))
		return
	}

	for i := range list {
		s.dispatcher.Reminder24h(ctx, &list[i])
	}

	s.logger.Info("reminder scan finished",
		zap.String("date", tomorrow),
		zap.Int("consultations", len(list)))
}
