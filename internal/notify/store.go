package notify

import (
	"context"

	"github.com/unidesk/consult-scheduler/internal/models"
)

// Store is the persistence port for notification records. The gorm
// implementation lives in internal/infra/repository.
type Store interface {
	Create(ctx context.Context, n *models.Notification) error

	// GetOrCreate is keyed on (user, consultation, message type) and
	// reports whether a new row was created. Reminder idempotence
	// depends on it.
	GetOrCreate(ctx context.Context, n *models.Notification) (bool, error)

	Get(ctx context.Context, id uint) (*models.Notification, error)
	Update(ctx context.Context, n *models.Notification) error
}
