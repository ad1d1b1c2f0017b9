package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/metrics"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

// SetAppointmentStatus records an outcome (completed, cancelled, no-show) from
// the list view without resubmitting the whole form.
type SetAppointmentStatus struct {
	repo    domain.Repository
	log     *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

func NewSetAppointmentStatus(
	repo domain.Repository,
	log *zap.Logger,
	m *metrics.Collector,
) *SetAppointmentStatus {
	return &SetAppointmentStatus{
		repo:    repo,
		log:     log,
		metrics: m,
		now:     timezone.Now,
	}
}

func (uc *SetAppointmentStatus) Execute(
	ctx context.Context,
	actor *access.Actor,
	id uint,
	status string,
) (*models.Appointment, error) {

	if err := access.Check(actor, access.UpdateAppointment); err != nil {
		return nil, err
	}

	next := domain.NormalizeStatus(status)
	if !next.Valid() {
		v := httperr.NewValidation()
		v.Add("status", "Select a valid choice.")
		return nil, v
	}

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ap.Status == string(next) {
		return ap, nil
	}

	previous := ap.Status
	ap.Status = string(next)
	ap.UpdatedAt = uc.now().UTC()

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.metrics.AppointmentSaved(ap.Status)
	uc.log.Info("appointment status changed",
		zap.Uint("appointment_id", ap.ID),
		zap.String("from", previous),
		zap.String("to", ap.Status),
		zap.Uint("user_id", actor.UserID),
	)

	return ap, nil
}
