package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/unidesk/consult-scheduler/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) Create(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// GetOrCreate looks up a notification by (user, consultation, message
// type) and creates it when absent. Reports whether a row was created.
func (r *NotificationGormRepository) GetOrCreate(
	ctx context.Context,
	n *models.Notification,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where(
			"user_id = ? AND consultation_id = ? AND message_type = ?",
			n.UserID, n.ConsultationID, n.MessageType,
		).
		FirstOrCreate(n)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *NotificationGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Notification, error) {

	var n models.Notification
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Consultation").
		Preload("Consultation.Student").
		Preload("Consultation.Professor").
		First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationGormRepository) Update(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *NotificationGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
	unreadOnly bool,
) ([]models.Notification, error) {

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}

	var list []models.Notification
	if err := q.
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// MarkRead stamps read_at once; a second call is a no-op.
func (r *NotificationGormRepository) MarkRead(
	ctx context.Context,
	id uint,
	userID uint,
) (*models.Notification, error) {

	var n models.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error; err != nil {
		return nil, err
	}

	if n.ReadAt == nil {
		now := time.Now()
		n.ReadAt = &now
		if err := r.db.WithContext(ctx).Save(&n).Error; err != nil {
			return nil, err
		}
	}

	return &n, nil
}
