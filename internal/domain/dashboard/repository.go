package dashboard

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

// Repository provides the raw reads the dashboard is built from.
type Repository interface {
	CountPatients(ctx context.Context) (int64, error)
	CountServices(ctx context.Context) (int64, error)
	CountAppointments(ctx context.Context) (int64, error)

	// CountAppointmentsByStatusBetween counts over the half-open range [from, to).
	CountAppointmentsByStatusBetween(
		ctx context.Context,
		status string,
		from time.Time,
		to time.Time,
	) (int64, error)

	PatientStatusCounts(ctx context.Context) (map[string]int64, error)
	PatientPriorityCounts(ctx context.Context) (map[string]int64, error)

	RecentPatients(
		ctx context.Context,
		since time.Time,
		limit int,
	) ([]models.Patient, error)

	// UpcomingAppointments lists appointments in [from, through], earliest first.
	UpcomingAppointments(
		ctx context.Context,
		status string,
		from time.Time,
		through time.Time,
		limit int,
	) ([]dto.AppointmentListDTO, error)
}
