package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/dashboard"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var _ domain.Repository = (*DashboardGormRepository)(nil)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

// --------------------------------------------------
// Totals
// --------------------------------------------------

func (r *DashboardGormRepository) CountPatients(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Patient{})
}

func (r *DashboardGormRepository) CountServices(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Service{})
}

func (r *DashboardGormRepository) CountAppointments(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Appointment{})
}

func (r *DashboardGormRepository) count(ctx context.Context, model any) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *DashboardGormRepository) CountAppointmentsByStatusBetween(
	ctx context.Context,
	status string,
	from time.Time,
	to time.Time,
) (int64, error) {

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("status = ? AND scheduled_for >= ? AND scheduled_for < ?", status, from.UTC(), to.UTC()).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// --------------------------------------------------
// Histograms
// --------------------------------------------------

type groupCount struct {
	Value string
	Count int64
}

func (r *DashboardGormRepository) PatientStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.groupPatientsBy(ctx, "status")
}

func (r *DashboardGormRepository) PatientPriorityCounts(ctx context.Context) (map[string]int64, error) {
	return r.groupPatientsBy(ctx, "priority")
}

// column is one of a fixed set of names, never user input.
func (r *DashboardGormRepository) groupPatientsBy(ctx context.Context, column string) (map[string]int64, error) {
	var rows []groupCount
	if err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Value] += row.Count
	}
	return out, nil
}

// --------------------------------------------------
// Lists
// --------------------------------------------------

func (r *DashboardGormRepository) RecentPatients(
	ctx context.Context,
	since time.Time,
	limit int,
) ([]models.Patient, error) {

	var patients []models.Patient
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", since.UTC()).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *DashboardGormRepository) UpcomingAppointments(
	ctx context.Context,
	status string,
	from time.Time,
	through time.Time,
	limit int,
) ([]dto.AppointmentListDTO, error) {

	var out []dto.AppointmentListDTO
	if err := appointmentRows(r.db.WithContext(ctx)).
		Where("a.status = ? AND a.scheduled_for >= ? AND a.scheduled_for <= ?", status, from.UTC(), through.UTC()).
		Order("a.scheduled_for ASC, a.id ASC").
		Limit(limit).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

