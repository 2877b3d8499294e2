package consultation

import (
	"context"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/models"
)

type AddNotes struct {
	repo domain.Repository
}

func NewAddNotes(repo domain.Repository) *AddNotes {
	return &AddNotes{repo: repo}
}

func (uc *AddNotes) Execute(
	ctx context.Context,
	professorID uint,
	consultationID uint,
	notes string,
) (*models.Consultation, error) {

	return uc.repo.Mutate(ctx, consultationID, func(c *models.Consultation) error {
		if c.ProfessorID != professorID {
			return httperr.ErrBusiness("forbidden")
		}
		c.Notes = notes
		return nil
	})
}
