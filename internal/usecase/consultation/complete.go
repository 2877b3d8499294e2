package consultation

import (
	"context"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/models"
)

type CompleteConsultation struct {
	repo domain.Repository
}

func NewCompleteConsultation(repo domain.Repository) *CompleteConsultation {
	return &CompleteConsultation{repo: repo}
}

func (uc *CompleteConsultation) Execute(
	ctx context.Context,
	professorID uint,
	consultationID uint,
) (*models.Consultation, error) {

	return uc.repo.Mutate(ctx, consultationID, func(c *models.Consultation) error {
		if c.ProfessorID != professorID {
			return httperr.ErrBusiness("forbidden")
		}
		return domain.Complete(c)
	})
}
