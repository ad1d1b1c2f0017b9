package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var ErrNotFound = httperr.New(httperr.KindNotFound, "appointment_not_found")

type Filter struct {
	// Query matches case-insensitively against the patient's last name and the service name.
	Query string
}

type Repository interface {
	// -------- Listing --------
	List(
		ctx context.Context,
		filter Filter,
	) ([]dto.AppointmentListDTO, error)

	ListByPatient(
		ctx context.Context,
		patientID uint,
	) ([]dto.AppointmentListDTO, error)

	// NextForPatient returns the earliest scheduled appointment strictly after now,
	// or nil when there is none.
	NextForPatient(
		ctx context.Context,
		patientID uint,
		now time.Time,
	) (*dto.AppointmentListDTO, error)

	// -------- CRUD --------
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Delete(
		ctx context.Context,
		id uint,
	) error
}
