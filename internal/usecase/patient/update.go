package patient

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

// UpdatePatient replaces every editable field and always advances updated_at.
type UpdatePatient struct {
	repo domain.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewUpdatePatient(repo domain.Repository, log *zap.Logger) *UpdatePatient {
	return &UpdatePatient{
		repo: repo,
		log:  log,
		now:  timezone.Now,
	}
}

func (uc *UpdatePatient) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
	in Input,
) (*models.Patient, error) {

	if err := access.Check(actor, access.UpdatePatient); err != nil {
		return nil, err
	}

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	dob, v := in.validate(now)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	in.apply(p, dob)
	p.UpdatedAt = now.UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNHSNumberExists) {
			return nil, duplicateNHS()
		}
		return nil, err
	}

	uc.log.Info("patient updated",
		zap.Uint("patient_id", p.ID),
		zap.Uint("user_id", actor.UserID),
	)

	return p, nil
}
