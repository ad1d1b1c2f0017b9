package patient

import (
	"context"

	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var (
	ErrNotFound        = httperr.New(httperr.KindNotFound, "patient_not_found")
	ErrNHSNumberExists = httperr.New(httperr.KindAlreadyExists, "nhs_number_exists")
)

type Filter struct {
	// Query matches case-insensitively against first name, last name and NHS number.
	Query string
}

type Repository interface {
	List(
		ctx context.Context,
		filter Filter,
	) ([]models.Patient, error)

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	Create(
		ctx context.Context,
		p *models.Patient,
	) error

	Update(
		ctx context.Context,
		p *models.Patient,
	) error

	// Delete removes the patient and all of its appointments atomically.
	Delete(
		ctx context.Context,
		id uint,
	) error
}
