package notify

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/unidesk/consult-scheduler/internal/models"
	"github.com/unidesk/consult-scheduler/internal/queue"
)

// Dequeuer is the consumer side of the task queue.
type Dequeuer interface {
	Dequeue(ctx context.Context) (*queue.Task, error)
}

// Worker drains the queue and delivers notification emails. A failed
// delivery marks the notification FAILED and moves on; nothing is
// retried here beyond what the queue itself redelivers.
type Worker struct {
	queue    Dequeuer
	store    Store
	sender   Sender
	siteName string
	siteURL  string
	logger   *zap.Logger
}

func NewWorker(
	q Dequeuer,
	store Store,
	sender Sender,
	siteName string,
	siteURL string,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		queue:    q,
		store:    store,
		sender:   sender,
		siteName: siteName,
		siteURL:  siteURL,
		logger:   logger,
	}
}

func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("notification delivery worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notification delivery worker stopped")
			return
		default:
		}

		task, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("failed to dequeue task", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if task == nil {
			continue
		}

		w.Handle(ctx, task)
	}
}

func (w *Worker) Handle(ctx context.Context, task *queue.Task) {
	if task.Name != TaskSendEmail {
		w.logger.Warn("unknown task", zap.String("name", task.Name))
		return
	}

	var payload SendEmailPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		w.logger.Error("malformed task payload",
			zap.String("task_id", task.ID),
			zap.Error(err))
		return
	}

	w.deliver(ctx, payload)
}

func (w *Worker) deliver(ctx context.Context, payload SendEmailPayload) {
	n, err := w.store.Get(ctx, payload.NotificationID)
	if err != nil {
		w.logger.Error("notification not found",
			zap.Uint("notification_id", payload.NotificationID),
			zap.Error(err))
		return
	}

	content, err := Render(n, payload.Reason, w.siteName, w.siteURL)
	if err != nil {
		w.logger.Error("failed to render notification email",
			zap.Uint("notification_id", n.ID),
			zap.Error(err))
		w.markFailed(ctx, n)
		return
	}

	if err := w.sender.Send(n.User.Email, content.Subject, content.HTMLBody, content.TextBody); err != nil {
		w.logger.Error("failed to send notification email",
			zap.Uint("notification_id", n.ID),
			zap.String("to", n.User.Email),
			zap.Error(err))
		w.markFailed(ctx, n)
		return
	}

	now := time.Now()
	n.SentAt = &now
	n.EmailStatus = models.EmailSent
	if err := w.store.Update(ctx, n); err != nil {
		w.logger.Error("failed to mark notification sent",
			zap.Uint("notification_id", n.ID),
			zap.Error(err))
	}
}

func (w *Worker) markFailed(ctx context.Context, n *models.Notification) {
	n.EmailStatus = models.EmailFailed
	if err := w.store.Update(ctx, n); err != nil {
		w.logger.Error("failed to mark notification failed",
			zap.Uint("notification_id", n.ID),
			zap.Error(err))
	}
}
