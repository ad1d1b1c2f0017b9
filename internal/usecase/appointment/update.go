package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	patientDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	serviceDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/service"
	"github.com/BruksfildServices01/clinic-tracker/internal/metrics"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

type UpdateAppointment struct {
	repo    domain.Repository
	refs    refChecker
	log     *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	patients patientDomain.Repository,
	services serviceDomain.Repository,
	log *zap.Logger,
	m *metrics.Collector,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:    repo,
		refs:    refChecker{patients: patients, services: services},
		log:     log,
		metrics: m,
		now:     timezone.Now,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
	in Input,
) (*models.Appointment, error) {

	if err := access.Check(actor, access.UpdateAppointment); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, v := in.validate()
	if err := uc.refs.check(ctx, p, v); err != nil {
		return nil, err
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	ap.PatientID = p.patientID
	ap.ServiceID = p.serviceID
	ap.ScheduledFor = p.scheduledFor
	ap.Location = in.Location
	ap.Status = in.Status
	ap.Notes = in.Notes
	ap.UpdatedAt = uc.now().UTC()

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.metrics.AppointmentSaved(ap.Status)
	uc.log.Info("appointment updated",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("user_id", actor.UserID),
	)

	return ap, nil
}
