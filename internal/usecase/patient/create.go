package patient

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/metrics"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type CreatePatient struct {
	repo    domain.Repository
	log     *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

func NewCreatePatient(
	repo domain.Repository,
	log *zap.Logger,
	m *metrics.Collector,
) *CreatePatient {
	return &CreatePatient{
		repo:    repo,
		log:     log,
		metrics: m,
		now:     timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePatient) Execute(
	ctx context.Context,
	actor *access.Actor,
	in Input,
) (*models.Patient, error) {

	if err := access.Check(actor, access.CreatePatient); err != nil {
		return nil, err
	}

	now := uc.now()

	dob, v := in.validate(now)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	p := &models.Patient{
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	in.apply(p, dob)

	if err := uc.repo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNHSNumberExists) {
			return nil, duplicateNHS()
		}
		return nil, err
	}

	uc.metrics.PatientCreated()
	uc.log.Info("patient created",
		zap.Uint("patient_id", p.ID),
		zap.Uint("user_id", actor.UserID),
	)

	return p, nil
}
