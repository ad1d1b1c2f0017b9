package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*PatientGormRepository)(nil)

type PatientGormRepository struct {
	db *gorm.DB
}

func NewPatientGormRepository(db *gorm.DB) *PatientGormRepository {
	return &PatientGormRepository{db: db}
}

func (r *PatientGormRepository) List(
	ctx context.Context,
	filter domain.Filter,
) ([]models.Patient, error) {

	q := r.db.WithContext(ctx).Model(&models.Patient{})

	if strings.TrimSpace(filter.Query) != "" {
		like := likePattern(filter.Query)
		q = q.Where(
			"LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\' OR LOWER(nhs_number) LIKE ? ESCAPE '\\'",
			like, like, like,
		)
	}

	var patients []models.Patient
	if err := q.Order("last_name ASC, first_name ASC, id ASC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, orNotFound(err, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *PatientGormRepository) Create(
	ctx context.Context,
	p *models.Patient,
) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if isUniqueViolation(err) {
		return domain.ErrNHSNumberExists
	}
	return err
}

// Update writes every editable column, with updated_at taken from p rather
// than the database clock.
func (r *PatientGormRepository) Update(
	ctx context.Context,
	p *models.Patient,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ?", p.ID).
		UpdateColumns(map[string]any{
			"nhs_number":    p.NHSNumber,
			"first_name":    p.FirstName,
			"last_name":     p.LastName,
			"date_of_birth": p.DateOfBirth,
			"contact_phone": p.ContactPhone,
			"contact_email": p.ContactEmail,
			"status":        p.Status,
			"priority":      p.Priority,
			"medical_notes": p.MedicalNotes,
			"updated_at":    p.UpdatedAt,
		})

	if isUniqueViolation(res.Error) {
		return domain.ErrNHSNumberExists
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PatientGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Patient{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
