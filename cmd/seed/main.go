package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-tracker/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-tracker/internal/db"
	infraRepo "github.com/BruksfildServices01/clinic-tracker/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-tracker/internal/logger"
	"github.com/BruksfildServices01/clinic-tracker/internal/seed"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
	ucAuth "github.com/BruksfildServices01/clinic-tracker/internal/usecase/auth"
)

const (
	defaultAdminEmail    = "admin@example.nhs.uk"
	defaultAdminPassword = "ChangeMe123!"
	defaultAdminName     = "Admin User"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Prepare the clinic database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd(), adminCmd(), demoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

// open loads configuration, connects and brings the schema up to date.
func open() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	timezone.SetClinic(cfg.Timezone)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := dbpkg.Migrate(db, log); err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create the roles and the administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			password, _ := cmd.Flags().GetString("password")
			reset, _ := cmd.Flags().GetBool("reset-password")

			uc := ucAuth.NewEnsureAdmin(infraRepo.NewUserGormRepository(e.db), e.log, bcrypt.DefaultCost)
			user, created, err := uc.Execute(cmd.Context(), ucAuth.EnsureAdminInput{
				Email:         email,
				FullName:      name,
				Password:      password,
				ResetPassword: reset,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if created {
				fmt.Fprintf(out, "Created admin user: %s\n", user.Email)
				if password == defaultAdminPassword {
					fmt.Fprintln(out, "Using the default password. Change it before going live.")
				}
				return nil
			}
			fmt.Fprintf(out, "Admin user already exists: %s\n", user.Email)
			return nil
		},
	}

	cmd.Flags().String("email", envOr("ADMIN_EMAIL", defaultAdminEmail), "Administrator email")
	cmd.Flags().String("name", envOr("ADMIN_NAME", defaultAdminName), "Administrator full name")
	cmd.Flags().String("password", envOr("ADMIN_PASSWORD", defaultAdminPassword), "Administrator password")
	cmd.Flags().Bool("reset-password", false, "Overwrite the password of an existing account")
	return cmd
}

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Insert demonstration services, patients and appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			seedValue, _ := cmd.Flags().GetUint64("seed")
			if seedValue == 0 {
				seedValue = uint64(time.Now().UnixNano())
			}
			skip, _ := cmd.Flags().GetBool("skip-appointments")

			s := seed.NewSeeder(
				infraRepo.NewPatientGormRepository(e.db),
				infraRepo.NewServiceGormRepository(e.db),
				infraRepo.NewAppointmentGormRepository(e.db),
				e.log,
				seedValue,
			)
			res, err := s.Run(cmd.Context(), !skip)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Services created: %d\n", res.ServicesCreated)
			fmt.Fprintf(out, "Patients created: %d\n", res.PatientsCreated)
			fmt.Fprintf(out, "Appointments created: %d\n", res.AppointmentsCreated)
			return nil
		},
	}

	cmd.Flags().Uint64("seed", 0, "Random seed for appointments (0 picks one from the clock)")
	cmd.Flags().Bool("skip-appointments", false, "Only ensure services and patients")
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
