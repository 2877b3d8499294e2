package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/unidesk/consult-scheduler/internal/models"
	"github.com/unidesk/consult-scheduler/internal/queue"
)

const TaskSendEmail = "send_email"

// SendEmailPayload is the task argument for a single delivery attempt.
type SendEmailPayload struct {
	NotificationID uint   `json:"notification_id"`
	Reason         string `json:"reason,omitempty"`
}

// Dispatcher reacts to consultation transitions: it writes one in-app
// notification per affected party and enqueues an email delivery task
// for each. It never fails the triggering operation; enqueue and store
// errors are logged and dropped.
type Dispatcher struct {
	store  Store
	queue  queue.Enqueuer
	logger *zap.Logger
}

func NewDispatcher(store Store, q queue.Enqueuer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		queue:  q,
		logger: logger,
	}
}

func (d *Dispatcher) BookingCreated(ctx context.Context, cons *models.Consultation) {
	d.notify(ctx, cons, models.MessageBookingCreated, "", cons.StudentID, cons.ProfessorID)
}

func (d *Dispatcher) BookingConfirmed(ctx context.Context, cons *models.Consultation) {
	d.notify(ctx, cons, models.MessageBookingConfirmed, "", cons.StudentID)
}

func (d *Dispatcher) Cancelled(ctx context.Context, cons *models.Consultation, reason string) {
	d.notify(ctx, cons, models.MessageCancelled, reason, cons.StudentID, cons.ProfessorID)
}

func (d *Dispatcher) Rescheduled(ctx context.Context, cons *models.Consultation) {
	d.notify(ctx, cons, models.MessageRescheduled, "", cons.StudentID, cons.ProfessorID)
}

// Reminder24h creates at most one reminder per (user, consultation)
// pair; repeated scans only enqueue delivery for rows created now.
func (d *Dispatcher) Reminder24h(ctx context.Context, cons *models.Consultation) {
	for _, userID := range []uint{cons.StudentID, cons.ProfessorID} {
		n := &models.Notification{
			UserID:         userID,
			ConsultationID: &cons.ID,
			Channel:        models.ChannelInApp,
			MessageType:    models.MessageReminder24h,
		}

		created, err := d.store.GetOrCreate(ctx, n)
		if err != nil {
			d.logger.Error("failed to create reminder notification",
				zap.Uint("consultation_id", cons.ID),
				zap.Uint("user_id", userID),
				zap.Error(err))
			continue
		}
		if !created {
			continue
		}

		d.enqueue(ctx, n.ID, "")
	}
}

func (d *Dispatcher) notify(
	ctx context.Context,
	cons *models.Consultation,
	messageType string,
	reason string,
	userIDs ...uint,
) {
	for _, userID := range userIDs {
		n := &models.Notification{
			UserID:         userID,
			ConsultationID: &cons.ID,
			Channel:        models.ChannelInApp,
			MessageType:    messageType,
		}

		if err := d.store.Create(ctx, n); err != nil {
			d.logger.Error("failed to create notification",
				zap.Uint("consultation_id", cons.ID),
				zap.Uint("user_id", userID),
				zap.String("message_type", messageType),
				zap.Error(err))
			continue
		}

		d.enqueue(ctx, n.ID, reason)
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, notificationID uint, reason string) {
	err := d.queue.Enqueue(ctx, TaskSendEmail, SendEmailPayload{
		NotificationID: notificationID,
		Reason:         reason,
	})
	if err != nil {
		d.logger.Error("failed to enqueue email task",
			zap.Uint("notification_id", notificationID),
			zap.Error(err))
	}
}
