package consultation

import (
	"context"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/models"
)

type RateConsultation struct {
	repo domain.Repository
}

func NewRateConsultation(repo domain.Repository) *RateConsultation {
	return &RateConsultation{repo: repo}
}

func (uc *RateConsultation) Execute(
	ctx context.Context,
	studentID uint,
	consultationID uint,
	rating int,
	feedback string,
) (*models.Consultation, error) {

	return uc.repo.Mutate(ctx, consultationID, func(c *models.Consultation) error {
		if c.StudentID != studentID {
			return httperr.ErrBusiness("forbidden")
		}
		return domain.Rate(c, rating, feedback)
	})
}
