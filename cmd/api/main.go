package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-tracker/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-tracker/internal/db"
	infraRepo "github.com/BruksfildServices01/clinic-tracker/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-tracker/internal/logger"
	"github.com/BruksfildServices01/clinic-tracker/internal/metrics"
	"github.com/BruksfildServices01/clinic-tracker/internal/routes"
	"github.com/BruksfildServices01/clinic-tracker/internal/session"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("clinic-tracker: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	timezone.SetClinic(cfg.Timezone)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.Migrate(db, zl); err != nil {
		return err
	}

	revoker, closeRevoker, err := newRevoker(cfg, zl)
	if err != nil {
		return err
	}
	defer closeRevoker()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Dependencies{
		Config:   cfg,
		Log:      zl,
		Metrics:  metrics.NewCollector("clinic"),
		Sessions: session.NewManager(cfg.JWTSecret, cfg.SessionTTL, revoker),

		Users:        infraRepo.NewUserGormRepository(db),
		Patients:     infraRepo.NewPatientGormRepository(db),
		Services:     infraRepo.NewServiceGormRepository(db),
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Dashboard:    infraRepo.NewDashboardGormRepository(db),

		BcryptCost: bcrypt.DefaultCost,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("env", cfg.AppEnv),
			zap.String("timezone", timezone.Clinic().String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}

	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	zl.Info("server stopped")
	return nil
}

// newRevoker uses Redis when REDIS_URL is set. Without it a signed-out token
// stays valid until expiry, and only its cookie is cleared.
func newRevoker(cfg *config.Config, zl *zap.Logger) (session.Revoker, func(), error) {
	if cfg.RedisURL == "" {
		zl.Info("session revocation disabled, REDIS_URL not set")
		return session.NoopRevoker{}, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := session.DialRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return session.NewRedisRevoker(client), func() { _ = client.Close() }, nil
}
