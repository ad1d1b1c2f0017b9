package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor *access.Actor,
	query string,
) ([]dto.AppointmentListDTO, error) {

	if err := access.Check(actor, access.ViewAppointments); err != nil {
		return nil, err
	}

	return uc.repo.List(ctx, domain.Filter{Query: query})
}
