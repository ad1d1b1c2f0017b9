package memory

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*AppointmentRepository)(nil)

type AppointmentRepository struct {
	s *Store
}

func (r *AppointmentRepository) List(_ context.Context, filter domain.Filter) ([]dto.AppointmentListDTO, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.TrimSpace(filter.Query)
	rows := r.s.appointmentRows(func(ap models.Appointment) bool {
		if q == "" {
			return true
		}
		return contains(r.s.patients[ap.PatientID].LastName, q) || contains(r.s.services[ap.ServiceID].Name, q)
	})
	sortNewestFirst(rows)
	return rows, nil
}

func (r *AppointmentRepository) ListByPatient(_ context.Context, patientID uint) ([]dto.AppointmentListDTO, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.s.appointmentRows(func(ap models.Appointment) bool {
		return ap.PatientID == patientID
	})
	sortNewestFirst(rows)
	return rows, nil
}

func (r *AppointmentRepository) NextForPatient(_ context.Context, patientID uint, now time.Time) (*dto.AppointmentListDTO, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.s.appointmentRows(func(ap models.Appointment) bool {
		return ap.PatientID == patientID &&
			ap.Status == string(domain.StatusScheduled) &&
			ap.ScheduledFor.After(now)
	})
	if len(rows) == 0 {
		return nil, nil
	}
	sortEarliestFirst(rows)
	return &rows[0], nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id uint) (*models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ap, ok := r.s.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *AppointmentRepository) Create(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkRefs(ap); err != nil {
		return err
	}

	ap.ID = r.s.id()
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = r.s.now()
	}
	if ap.UpdatedAt.IsZero() {
		ap.UpdatedAt = ap.CreatedAt
	}
	r.s.appointments[ap.ID] = *ap
	return nil
}

func (r *AppointmentRepository) Update(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.appointments[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.checkRefs(ap); err != nil {
		return err
	}

	updated := *ap
	updated.CreatedAt = current.CreatedAt
	r.s.appointments[ap.ID] = updated
	return nil
}

func (r *AppointmentRepository) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

// checkRefs stands in for the foreign keys of the SQL schema.
func (r *AppointmentRepository) checkRefs(ap *models.Appointment) error {
	if _, ok := r.s.patients[ap.PatientID]; !ok {
		return errForeignKey
	}
	if _, ok := r.s.services[ap.ServiceID]; !ok {
		return errForeignKey
	}
	return nil
}
