package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/user"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*UserGormRepository)(nil)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, orNotFound(err, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&u, id).Error; err != nil {
		return nil, orNotFound(err, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User, roles []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := ensureRoles(tx, roles)
		if err != nil {
			return err
		}

		if err := tx.Omit("Roles").Create(u).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrEmailExists
			}
			return err
		}

		if len(found) > 0 {
			if err := tx.Model(u).Association("Roles").Append(found); err != nil {
				return err
			}
		}
		u.Roles = found
		return nil
	})
}

func (r *UserGormRepository) AddRoles(ctx context.Context, userID uint, roles []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.Preload("Roles").First(&u, userID).Error; err != nil {
			return orNotFound(err, domain.ErrNotFound)
		}

		var missing []string
		for _, name := range roles {
			if !u.HasRole(name) {
				missing = append(missing, name)
			}
		}
		if len(missing) == 0 {
			return nil
		}

		found, err := ensureRoles(tx, missing)
		if err != nil {
			return err
		}
		return tx.Model(&u).Association("Roles").Append(found)
	})
}

func (r *UserGormRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ensureRoles returns the named roles, creating the ones that do not exist yet.
func ensureRoles(tx *gorm.DB, names []string) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(names))

	for _, name := range names {
		var role models.Role
		err := tx.Where("name = ?", name).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = models.Role{Name: name}
			err = tx.Create(&role).Error
		}
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, nil
}
