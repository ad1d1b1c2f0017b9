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

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	refs    refChecker
	log     *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	patients patientDomain.Repository,
	services serviceDomain.Repository,
	log *zap.Logger,
	m *metrics.Collector,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		refs:    refChecker{patients: patients, services: services},
		log:     log,
		metrics: m,
		now:     timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor *access.Actor,
	in Input,
) (*models.Appointment, error) {

	if err := access.Check(actor, access.CreateAppointment); err != nil {
		return nil, err
	}

	p, v := in.validate()
	if err := uc.refs.check(ctx, p, v); err != nil {
		return nil, err
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	ap := &models.Appointment{
		PatientID:    p.patientID,
		ServiceID:    p.serviceID,
		ScheduledFor: p.scheduledFor,
		Location:     in.Location,
		Status:       in.Status,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	uc.metrics.AppointmentSaved(ap.Status)
	uc.log.Info("appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("patient_id", ap.PatientID),
		zap.Uint("user_id", actor.UserID),
	)

	return ap, nil
}
