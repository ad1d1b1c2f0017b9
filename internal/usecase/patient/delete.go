package patient

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
)

// DeletePatient removes a patient and, in the same transaction, its appointments.
type DeletePatient struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewDeletePatient(repo domain.Repository, log *zap.Logger) *DeletePatient {
	return &DeletePatient{repo: repo, log: log}
}

func (uc *DeletePatient) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
) error {

	if err := access.Check(actor, access.DeletePatient); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.log.Info("patient deleted",
		zap.Uint("patient_id", id),
		zap.Uint("user_id", actor.UserID),
	)
	return nil
}
