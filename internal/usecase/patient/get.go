package patient

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	appointmentDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

// GetPatient loads a patient together with the figures shown on its detail page.
type GetPatient struct {
	repo         domain.Repository
	appointments appointmentDomain.Repository
	now          func() time.Time
}

func NewGetPatient(
	repo domain.Repository,
	appointments appointmentDomain.Repository,
) *GetPatient {
	return &GetPatient{
		repo:         repo,
		appointments: appointments,
		now:          timezone.Now,
	}
}

func (uc *GetPatient) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
) (*dto.PatientDetailDTO, error) {

	if err := access.Check(actor, access.ViewPatients); err != nil {
		return nil, err
	}

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	next, err := uc.appointments.NextForPatient(ctx, p.ID, now)
	if err != nil {
		return nil, err
	}

	history, err := uc.appointments.ListByPatient(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &dto.PatientDetailDTO{
		Patient:           *p,
		Age:               p.Age(now),
		NextAppointment:   next,
		TotalAppointments: len(history),
		Appointments:      history,
	}, nil
}
