package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewDeleteAppointment(repo domain.Repository, log *zap.Logger) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, log: log}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
) error {

	if err := access.Check(actor, access.DeleteAppointment); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.log.Info("appointment deleted",
		zap.Uint("appointment_id", id),
		zap.Uint("user_id", actor.UserID),
	)
	return nil
}
