package patient

import (
	"context"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

type ListPatients struct {
	repo domain.Repository
}

func NewListPatients(repo domain.Repository) *ListPatients {
	return &ListPatients{repo: repo}
}

func (uc *ListPatients) Execute(
	ctx context.Context,
	actor *access.Actor,
	query string,
) ([]models.Patient, error) {

	if err := access.Check(actor, access.ViewPatients); err != nil {
		return nil, err
	}

	return uc.repo.List(ctx, domain.Filter{Query: query})
}
