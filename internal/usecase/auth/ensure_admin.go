package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/user"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/validators"
)

type EnsureAdminInput struct {
	Email    string
	FullName string
	Password string

	// ResetPassword overwrites the password of an existing account.
	ResetPassword bool
}

// EnsureAdmin provisions both roles and an administrator account. Running it
// again leaves an existing account in place and only grants what is missing.
type EnsureAdmin struct {
	users domain.Repository
	log   *zap.Logger
	cost  int
}

func NewEnsureAdmin(users domain.Repository, log *zap.Logger, cost int) *EnsureAdmin {
	return &EnsureAdmin{users: users, log: log, cost: cost}
}

func (uc *EnsureAdmin) Execute(ctx context.Context, in EnsureAdminInput) (user *models.User, created bool, err error) {
	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmail(email) {
		return nil, false, fmt.Errorf("invalid admin email %q", in.Email)
	}
	if len(in.Password) < 8 {
		return nil, false, errors.New("admin password must be at least 8 characters")
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		if err := uc.users.AddRoles(ctx, existing.ID, []string{access.RoleAdmin, access.RoleClinician}); err != nil {
			return nil, false, err
		}
		if in.ResetPassword {
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
			if err != nil {
				return nil, false, fmt.Errorf("hashing password: %w", err)
			}
			if err := uc.users.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
				return nil, false, err
			}
		}

		user, err := uc.users.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, false, err
		}
		uc.log.Info("admin account already present", zap.Uint("user_id", user.ID))
		return user, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, false, fmt.Errorf("hashing password: %w", err)
	}

	user = &models.User{
		Email:        email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := uc.users.Create(ctx, user, []string{access.RoleAdmin, access.RoleClinician}); err != nil {
		return nil, false, err
	}

	uc.log.Info("admin account created", zap.Uint("user_id", user.ID))
	return user, true, nil
}
