package consultation

import (
	"context"

	"github.com/unidesk/consult-scheduler/internal/models"
)

type Repository interface {
	// -------- User / Profile --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetProfessorProfile(
		ctx context.Context,
		userID uint,
	) (*models.ProfessorProfile, error)

	// -------- Consultation --------
	GetConsultation(
		ctx context.Context,
		id uint,
	) (*models.Consultation, error)

	CreateConsultation(
		ctx context.Context,
		cons *models.Consultation,
	) error

	// Mutate runs fn against the row inside a single transaction with a
	// row lock, persisting the result only when fn returns nil. This is
	// what makes concurrent confirm/cancel races lose cleanly: the
	// loser's guard sees the winner's status and fails.
	Mutate(
		ctx context.Context,
		id uint,
		fn func(cons *models.Consultation) error,
	) (*models.Consultation, error)

	// -------- Queries --------
	ListForProfessorOnDate(
		ctx context.Context,
		professorID uint,
		date string,
		statuses []string,
	) ([]models.Consultation, error)

	ListForUser(
		ctx context.Context,
		userID uint,
		role string,
		status string,
	) ([]models.Consultation, error)

	ListConfirmedOnDate(
		ctx context.Context,
		date string,
	) ([]models.Consultation, error)

	ListConfirmedWithCalendarEvent(
		ctx context.Context,
	) ([]models.Consultation, error)
}
