package memory

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/user"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*UserRepository)(nil)

type UserRepository struct {
	s *Store
}

// withRoles must be called with s.mu held.
func (r *UserRepository) withRoles(u models.User) *models.User {
	names := append([]string(nil), r.s.userRoles[u.ID]...)
	sort.Strings(names)

	u.Roles = make([]models.Role, 0, len(names))
	for _, name := range names {
		u.Roles = append(u.Roles, r.s.roles[name])
	}
	return &u
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return r.withRoles(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.withRoles(u), nil
}

func (r *UserRepository) Create(_ context.Context, u *models.User, roles []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailExists
		}
	}

	u.ID = r.s.id()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.now()
		u.UpdatedAt = u.CreatedAt
	}

	stored := *u
	stored.Roles = nil
	r.s.users[u.ID] = stored
	r.grant(u.ID, roles)

	u.Roles = r.withRoles(stored).Roles
	return nil
}

func (r *UserRepository) AddRoles(_ context.Context, userID uint, roles []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return domain.ErrNotFound
	}
	r.grant(userID, roles)
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, userID uint, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	r.s.users[userID] = u
	return nil
}

// CountByEmail reports how many stored users carry email.
func (r *UserRepository) CountByEmail(email string) int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, u := range r.s.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

// grant must be called with s.mu held.
func (r *UserRepository) grant(userID uint, roles []string) {
	for _, name := range roles {
		if _, ok := r.s.roles[name]; !ok {
			r.s.roles[name] = models.Role{ID: r.s.id(), Name: name}
		}

		held := false
		for _, have := range r.s.userRoles[userID] {
			if have == name {
				held = true
				break
			}
		}
		if !held {
			r.s.userRoles[userID] = append(r.s.userRoles[userID], name)
		}
	}
}
