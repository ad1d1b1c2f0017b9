package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-tracker/internal/config"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

// NewDB connects to PostgreSQL and sizes the pool from cfg.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.LogLevel == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema and rewrites legacy column values.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	start := time.Now()

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Service{},
		&models.Patient{},
		&models.Appointment{},
	); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	res := db.Exec(`
		UPDATE patients
		SET priority = 'normal'
		WHERE priority IS NULL OR priority = '' OR priority = 'medium'
	`)
	if res.Error != nil {
		return fmt.Errorf("normalising patient priority: %w", res.Error)
	}

	log.Info("migrations completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int64("priorities_normalised", res.RowsAffected),
	)
	return nil
}
