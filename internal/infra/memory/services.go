package memory

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/service"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*ServiceRepository)(nil)

type ServiceRepository struct {
	s *Store
}

func (r *ServiceRepository) List(_ context.Context) ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ServiceRepository) GetByID(_ context.Context, id uint) (*models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (r *ServiceRepository) Create(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(svc.Name, 0) {
		return domain.ErrNameExists
	}
	svc.ID = r.s.id()
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *ServiceRepository) Update(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[svc.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(svc.Name, svc.ID) {
		return domain.ErrNameExists
	}
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *ServiceRepository) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[id]; !ok {
		return domain.ErrNotFound
	}
	for _, ap := range r.s.appointments {
		if ap.ServiceID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.services, id)
	return nil
}

func (r *ServiceRepository) nameTaken(name string, except uint) bool {
	for id, svc := range r.s.services {
		if id != except && svc.Name == name {
			return true
		}
	}
	return false
}
