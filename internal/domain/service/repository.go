package service

import (
	"context"

	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var (
	ErrNotFound   = httperr.New(httperr.KindNotFound, "service_not_found")
	ErrNameExists = httperr.New(httperr.KindAlreadyExists, "service_name_exists")
	ErrInUse      = httperr.New(httperr.KindConflict, "service_in_use")
)

type Repository interface {
	List(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id uint) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error

	// Delete fails with ErrInUse while any appointment references the service.
	Delete(ctx context.Context, id uint) error
}
