package memory

import (
	"context"
	"sort"
	"strings"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*PatientRepository)(nil)

type PatientRepository struct {
	s *Store
}

func (r *PatientRepository) List(_ context.Context, filter domain.Filter) ([]models.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.TrimSpace(filter.Query)
	out := make([]models.Patient, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		if q == "" || contains(p.FirstName, q) || contains(p.LastName, q) || contains(p.NHSNumber, q) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PatientRepository) GetByID(_ context.Context, id uint) (*models.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.patients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *PatientRepository) Create(_ context.Context, p *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nhsTaken(p.NHSNumber, 0) {
		return domain.ErrNHSNumberExists
	}

	p.ID = r.s.id()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	r.s.patients[p.ID] = *p
	return nil
}

func (r *PatientRepository) Update(_ context.Context, p *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.patients[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.nhsTaken(p.NHSNumber, p.ID) {
		return domain.ErrNHSNumberExists
	}

	updated := *p
	updated.CreatedAt = current.CreatedAt
	r.s.patients[p.ID] = updated
	return nil
}

func (r *PatientRepository) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.patients[id]; !ok {
		return domain.ErrNotFound
	}

	for apID, ap := range r.s.appointments {
		if ap.PatientID == id {
			delete(r.s.appointments, apID)
		}
	}
	delete(r.s.patients, id)
	return nil
}

func (r *PatientRepository) nhsTaken(nhs string, except uint) bool {
	for id, p := range r.s.patients {
		if id != except && p.NHSNumber == nhs {
			return true
		}
	}
	return false
}
