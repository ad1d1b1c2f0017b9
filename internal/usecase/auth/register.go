package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/user"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/validators"
)

type RegisterInput struct {
	FullName string `form:"full_name" json:"full_name" validate:"required,min=2,max=120"`
	Email    string `form:"email" json:"email" validate:"required,email,max=255"`
	Password string `form:"password" json:"password" validate:"required,min=8,max=72"`
}

// Register creates a clinician account. A second registration for the same
// email, in any letter case, fails with domain.ErrEmailExists.
type Register struct {
	users domain.Repository
	log   *zap.Logger
	cost  int
}

func NewRegister(users domain.Repository, log *zap.Logger, cost int) *Register {
	return &Register{users: users, log: log, cost: cost}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = validators.NormalizeEmail(in.Email)

	if err := validators.Struct(&in).OrNil(); err != nil {
		return nil, err
	}

	_, err := uc.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailExists
	case !errors.Is(err, domain.ErrNotFound):
		uc.log.Warn("identity store unavailable", zap.Error(err))
		return nil, httperr.ErrSystemNotReady
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Active:       true,
	}

	if err := uc.users.Create(ctx, user, []string{access.RoleClinician}); err != nil {
		return nil, err
	}

	uc.log.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}
