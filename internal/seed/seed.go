// Package seed fills an empty clinic with demonstration services, patients
// and appointments.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	appointmentDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	patientDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	serviceDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/service"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
	"github.com/BruksfildServices01/clinic-tracker/internal/validators"
)

const (
	daysBack  = 30
	daysAhead = 60
)

type Result struct {
	ServicesCreated     int
	PatientsCreated     int
	AppointmentsCreated int
}

type Seeder struct {
	patients     patientDomain.Repository
	services     serviceDomain.Repository
	appointments appointmentDomain.Repository
	log          *zap.Logger

	rnd *rand.Rand
	now func() time.Time
}

// NewSeeder draws appointments from a generator seeded with seed, so a given
// seed and clock always produce the same schedule.
func NewSeeder(
	patients patientDomain.Repository,
	services serviceDomain.Repository,
	appointments appointmentDomain.Repository,
	log *zap.Logger,
	seed uint64,
) *Seeder {
	return &Seeder{
		patients:     patients,
		services:     services,
		appointments: appointments,
		log:          log,
		rnd:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:          timezone.Now,
	}
}

// Run ensures the demo services and patients exist, then books appointments
// for every day from 30 days ago to 60 days ahead. Services and patients that
// already exist are left alone; appointments are added on every run.
func (s *Seeder) Run(ctx context.Context, withAppointments bool) (Result, error) {
	var res Result
	var err error

	if res.ServicesCreated, err = s.ensureServices(ctx); err != nil {
		return res, err
	}
	if res.PatientsCreated, err = s.ensurePatients(ctx); err != nil {
		return res, err
	}
	if withAppointments {
		if res.AppointmentsCreated, err = s.bookAppointments(ctx); err != nil {
			return res, err
		}
	}

	s.log.Info("demo data seeded",
		zap.Int("services_created", res.ServicesCreated),
		zap.Int("patients_created", res.PatientsCreated),
		zap.Int("appointments_created", res.AppointmentsCreated),
	)
	return res, nil
}

func (s *Seeder) ensureServices(ctx context.Context) (int, error) {
	created := 0
	for _, row := range demoServices {
		err := s.services.Create(ctx, &models.Service{Name: row.Name, Description: row.Description})
		switch {
		case err == nil:
			created++
		case errors.Is(err, serviceDomain.ErrNameExists):
		default:
			return created, fmt.Errorf("seeding service %q: %w", row.Name, err)
		}
	}
	return created, nil
}

func (s *Seeder) ensurePatients(ctx context.Context) (int, error) {
	created := 0
	for _, row := range demoPatients {
		dob, err := time.Parse(validators.DateLayout, row.DOB)
		if err != nil {
			return created, fmt.Errorf("seeding patient %s: %w", row.NHSNumber, err)
		}

		err = s.patients.Create(ctx, &models.Patient{
			NHSNumber:    row.NHSNumber,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			DateOfBirth:  dob,
			ContactPhone: row.Phone,
			ContactEmail: row.Email,
			Status:       string(patientDomain.StatusActive),
			Priority:     string(patientDomain.PriorityNormal),
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, patientDomain.ErrNHSNumberExists):
		default:
			return created, fmt.Errorf("seeding patient %s: %w", row.NHSNumber, err)
		}
	}
	return created, nil
}

func (s *Seeder) bookAppointments(ctx context.Context) (int, error) {
	patients, err := s.patients.List(ctx, patientDomain.Filter{})
	if err != nil {
		return 0, err
	}
	services, err := s.services.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(patients) == 0 || len(services) == 0 {
		s.log.Warn("no patients or services, skipping appointments")
		return 0, nil
	}

	today := timezone.StartOfDay(s.now())
	created := 0

	for offset := -daysBack; offset <= daysAhead; offset++ {
		day := timezone.AddDays(today, offset)
		weights := futureWeights
		if offset < 0 {
			weights = pastWeights
		}

		for n := 1 + s.rnd.IntN(4); n > 0; n-- {
			p := patients[s.rnd.IntN(len(patients))]
			svc := services[s.rnd.IntN(len(services))]
			at := time.Date(day.Year(), day.Month(), day.Day(), 9+s.rnd.IntN(9), 15*s.rnd.IntN(4), 0, 0, day.Location())

			ap := &models.Appointment{
				PatientID:    p.ID,
				ServiceID:    svc.ID,
				ScheduledFor: at.UTC(),
				Location:     demoLocations[s.rnd.IntN(len(demoLocations))],
				Status:       string(appointmentDomain.Statuses[s.pick(weights)]),
				Notes:        "Patient appointment for " + svc.Name,
			}
			if err := s.appointments.Create(ctx, ap); err != nil {
				return created, fmt.Errorf("seeding appointment: %w", err)
			}
			created++
		}
	}
	return created, nil
}

// pick returns an index into weights, chosen with probability proportional
// to its weight.
func (s *Seeder) pick(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	r := s.rnd.IntN(total)
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}
