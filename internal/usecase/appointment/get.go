package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	patientDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	serviceDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/service"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
)

type GetAppointment struct {
	repo     domain.Repository
	patients patientDomain.Repository
	services serviceDomain.Repository
}

func NewGetAppointment(
	repo domain.Repository,
	patients patientDomain.Repository,
	services serviceDomain.Repository,
) *GetAppointment {
	return &GetAppointment{
		repo:     repo,
		patients: patients,
		services: services,
	}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
) (*dto.AppointmentListDTO, error) {

	if err := access.Check(actor, access.ViewAppointments); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := uc.patients.GetByID(ctx, ap.PatientID)
	if err != nil {
		return nil, err
	}
	s, err := uc.services.GetByID(ctx, ap.ServiceID)
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListDTO{
		ID:           ap.ID,
		ScheduledFor: ap.ScheduledFor,
		Location:     ap.Location,
		Status:       ap.Status,
		Notes:        ap.Notes,
		PatientID:    ap.PatientID,
		PatientName:  p.FullName(),
		ServiceID:    ap.ServiceID,
		ServiceName:  s.Name,
	}, nil
}
