package user

import (
	"context"

	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var (
	ErrNotFound    = httperr.New(httperr.KindNotFound, "user_not_found")
	ErrEmailExists = httperr.New(httperr.KindAlreadyExists, "already_exists")
)

// Repository loads users with their roles attached.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)

	// Create stores the user and its memberships in one transaction, creating
	// any missing role first.
	Create(ctx context.Context, u *models.User, roles []string) error

	// AddRoles grants roles to an existing user, creating missing roles.
	AddRoles(ctx context.Context, userID uint, roles []string) error

	UpdatePassword(ctx context.Context, userID uint, hash string) error
}
