package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unidesk/consult-scheduler/internal/models"
)

type ConsultationGormRepository struct {
	db *gorm.DB
}

func NewConsultationGormRepository(db *gorm.DB) *ConsultationGormRepository {
	return &ConsultationGormRepository{db: db}
}

// --------------------------------------------------
// User / Profile
// --------------------------------------------------

func (r *ConsultationGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *ConsultationGormRepository) GetProfessorProfile(
	ctx context.Context,
	userID uint,
) (*models.ProfessorProfile, error) {

	var profile models.ProfessorProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateGoogleToken persists a refreshed calendar access token.
func (r *ConsultationGormRepository) UpdateGoogleToken(
	ctx context.Context,
	userID uint,
	accessToken string,
	expiry time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"google_access_token": accessToken,
			"google_token_expiry": expiry,
		}).Error
}

// --------------------------------------------------
// Consultation
// --------------------------------------------------

func (r *ConsultationGormRepository) GetConsultation(
	ctx context.Context,
	id uint,
) (*models.Consultation, error) {

	var cons models.Consultation
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Professor").
		First(&cons, id).Error; err != nil {
		return nil, err
	}
	return &cons, nil
}

func (r *ConsultationGormRepository) CreateConsultation(
	ctx context.Context,
	cons *models.Consultation,
) error {
	return r.db.WithContext(ctx).Create(cons).Error
}

func (r *ConsultationGormRepository) Mutate(
	ctx context.Context,
	id uint,
	fn func(cons *models.Consultation) error,
) (*models.Consultation, error) {

	var mutated models.Consultation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var cons models.Consultation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&cons, id).Error; err != nil {
			return err
		}

		if err := fn(&cons); err != nil {
			return err
		}

		if err := tx.Save(&cons).Error; err != nil {
			return err
		}

		mutated = cons
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &mutated, nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *ConsultationGormRepository) ListForProfessorOnDate(
	ctx context.Context,
	professorID uint,
	date string,
	statuses []string,
) ([]models.Consultation, error) {

	var list []models.Consultation
	if err := r.db.WithContext(ctx).
		Where(
			"professor_id = ? AND scheduled_date = ? AND status IN ?",
			professorID, date, statuses,
		).
		Order("scheduled_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConsultationGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
	role string,
	status string,
) ([]models.Consultation, error) {

	q := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Professor")

	if role == models.RoleProfessor {
		q = q.Where("professor_id = ?", userID)
	} else {
		q = q.Where("student_id = ?", userID)
	}

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Consultation
	if err := q.
		Order("scheduled_date DESC, scheduled_time DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConsultationGormRepository) ListConfirmedOnDate(
	ctx context.Context,
	date string,
) ([]models.Consultation, error) {

	var list []models.Consultation
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Professor").
		Where("scheduled_date = ? AND status = ?", date, "CONFIRMED").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConsultationGormRepository) ListConfirmedWithCalendarEvent(
	ctx context.Context,
) ([]models.Consultation, error) {

	var list []models.Consultation
	if err := r.db.WithContext(ctx).
		Preload("Professor").
		Where("status = ? AND calendar_event_id <> ''", "CONFIRMED").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
