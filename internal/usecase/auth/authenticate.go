package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/user"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/metrics"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/validators"
)

type LoginInput struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Authenticate checks an email and password pair. Every kind of mismatch
// returns httperr.ErrInvalidCredentials; a store that cannot be read returns
// httperr.ErrSystemNotReady.
type Authenticate struct {
	users     domain.Repository
	log       *zap.Logger
	metrics   *metrics.Collector
	dummyHash []byte
}

func NewAuthenticate(
	users domain.Repository,
	log *zap.Logger,
	m *metrics.Collector,
	cost int,
) *Authenticate {
	// Compared against when the email is unknown so both paths pay for one bcrypt run.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("clinic-tracker-dummy-password"), cost)

	return &Authenticate{
		users:     users,
		log:       log,
		metrics:   m,
		dummyHash: dummy,
	}
}

func (uc *Authenticate) Execute(ctx context.Context, in LoginInput) (*models.User, error) {
	email := validators.NormalizeEmail(in.Email)

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
			return nil, uc.reject(email, "unknown_email")
		}

		uc.log.Warn("identity store unavailable", zap.Error(err))
		uc.metrics.LoginAttempt("system_not_ready")
		return nil, httperr.ErrSystemNotReady
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, uc.reject(email, "bad_password")
	}

	if !user.Active {
		return nil, uc.reject(email, "inactive")
	}

	uc.metrics.LoginAttempt("success")
	uc.log.Info("user signed in", zap.Uint("user_id", user.ID))
	return user, nil
}

func (uc *Authenticate) reject(email, reason string) error {
	uc.metrics.LoginAttempt("invalid_credentials")
	uc.log.Warn("failed sign-in attempt",
		zap.String("email", email),
		zap.String("reason", reason),
	)
	return httperr.ErrInvalidCredentials
}
