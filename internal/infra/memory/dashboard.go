package memory

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/dashboard"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*DashboardRepository)(nil)

type DashboardRepository struct {
	s *Store
}

func (r *DashboardRepository) CountPatients(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.patients)), nil
}

func (r *DashboardRepository) CountServices(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.services)), nil
}

func (r *DashboardRepository) CountAppointments(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.appointments)), nil
}

func (r *DashboardRepository) CountAppointmentsByStatusBetween(_ context.Context, status string, from, to time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, ap := range r.s.appointments {
		if ap.Status == status && !ap.ScheduledFor.Before(from) && ap.ScheduledFor.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepository) PatientStatusCounts(_ context.Context) (map[string]int64, error) {
	return r.groupPatients(func(p models.Patient) string { return p.Status }), nil
}

func (r *DashboardRepository) PatientPriorityCounts(_ context.Context) (map[string]int64, error) {
	return r.groupPatients(func(p models.Patient) string { return p.Priority }), nil
}

func (r *DashboardRepository) groupPatients(key func(models.Patient) string) map[string]int64 {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := map[string]int64{}
	for _, p := range r.s.patients {
		out[key(p)]++
	}
	return out
}

func (r *DashboardRepository) RecentPatients(_ context.Context, since time.Time, limit int) ([]models.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Patient, 0)
	for _, p := range r.s.patients {
		if !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *DashboardRepository) UpcomingAppointments(_ context.Context, status string, from, through time.Time, limit int) ([]dto.AppointmentListDTO, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.s.appointmentRows(func(ap models.Appointment) bool {
		return ap.Status == status && !ap.ScheduledFor.Before(from) && !ap.ScheduledFor.After(through)
	})
	sortEarliestFirst(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
