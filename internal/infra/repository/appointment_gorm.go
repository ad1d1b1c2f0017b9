package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*AppointmentGormRepository)(nil)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// appointmentRows selects appointments joined with their patient and service,
// shaped for dto.AppointmentListDTO.
func appointmentRows(db *gorm.DB) *gorm.DB {
	return db.Table("appointments AS a").
		Select(`a.id, a.scheduled_for, a.location, a.status, a.notes,
			a.patient_id, p.first_name || ' ' || p.last_name AS patient_name,
			a.service_id, s.name AS service_name`).
		Joins("JOIN patients p ON p.id = a.patient_id").
		Joins("JOIN services s ON s.id = a.service_id")
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	filter domain.Filter,
) ([]dto.AppointmentListDTO, error) {

	q := appointmentRows(r.db.WithContext(ctx))

	if strings.TrimSpace(filter.Query) != "" {
		like := likePattern(filter.Query)
		q = q.Where("LOWER(p.last_name) LIKE ? ESCAPE '\\' OR LOWER(s.name) LIKE ? ESCAPE '\\'", like, like)
	}

	var out []dto.AppointmentListDTO
	if err := q.Order("a.scheduled_for DESC, a.id DESC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) ListByPatient(
	ctx context.Context,
	patientID uint,
) ([]dto.AppointmentListDTO, error) {

	var out []dto.AppointmentListDTO
	if err := appointmentRows(r.db.WithContext(ctx)).
		Where("a.patient_id = ?", patientID).
		Order("a.scheduled_for DESC, a.id DESC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) NextForPatient(
	ctx context.Context,
	patientID uint,
	now time.Time,
) (*dto.AppointmentListDTO, error) {

	var out []dto.AppointmentListDTO
	if err := appointmentRows(r.db.WithContext(ctx)).
		Where("a.patient_id = ? AND a.status = ? AND a.scheduled_for > ?",
			patientID, string(domain.StatusScheduled), now.UTC()).
		Order("a.scheduled_for ASC, a.id ASC").
		Limit(1).
		Scan(&out).Error; err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, orNotFound(err, domain.ErrNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Patient", "Service").Create(ap).Error
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		UpdateColumns(map[string]any{
			"patient_id":    ap.PatientID,
			"service_id":    ap.ServiceID,
			"scheduled_for": ap.ScheduledFor,
			"location":      ap.Location,
			"status":        ap.Status,
			"notes":         ap.Notes,
			"updated_at":    ap.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
