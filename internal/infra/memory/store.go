// Package memory keeps every record in process memory. It backs the use-case
// and handler tests and behaves like the gorm repositories for ordering,
// search, uniqueness and cascades.
package memory

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var errForeignKey = errors.New("memory: foreign key constraint failed")

type Store struct {
	mu sync.RWMutex

	now func() time.Time

	nextID       uint
	users        map[uint]models.User
	roles        map[string]models.Role
	userRoles    map[uint][]string
	patients     map[uint]models.Patient
	services     map[uint]models.Service
	appointments map[uint]models.Appointment
}

func NewStore() *Store {
	return &Store{
		now:          time.Now,
		users:        map[uint]models.User{},
		roles:        map[string]models.Role{},
		userRoles:    map[uint][]string{},
		patients:     map[uint]models.Patient{},
		services:     map[uint]models.Service{},
		appointments: map[uint]models.Appointment{},
	}
}

// SetClock replaces the clock used for created_at defaults.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) Patients() *PatientRepository         { return &PatientRepository{s} }
func (s *Store) Services() *ServiceRepository         { return &ServiceRepository{s} }
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s} }
func (s *Store) Users() *UserRepository               { return &UserRepository{s} }
func (s *Store) Dashboard() *DashboardRepository      { return &DashboardRepository{s} }

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

// listRow must be called with s.mu held.
func (s *Store) listRow(ap models.Appointment) dto.AppointmentListDTO {
	p := s.patients[ap.PatientID]
	svc := s.services[ap.ServiceID]
	return dto.AppointmentListDTO{
		ID:           ap.ID,
		ScheduledFor: ap.ScheduledFor,
		Location:     ap.Location,
		Status:       ap.Status,
		Notes:        ap.Notes,
		PatientID:    ap.PatientID,
		PatientName:  p.FirstName + " " + p.LastName,
		ServiceID:    ap.ServiceID,
		ServiceName:  svc.Name,
	}
}

// appointmentRows must be called with s.mu held.
func (s *Store) appointmentRows(keep func(models.Appointment) bool) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0)
	for _, ap := range s.appointments {
		if keep(ap) {
			out = append(out, s.listRow(ap))
		}
	}
	return out
}

func sortNewestFirst(rows []dto.AppointmentListDTO) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ScheduledFor.Equal(rows[j].ScheduledFor) {
			return rows[i].ScheduledFor.After(rows[j].ScheduledFor)
		}
		return rows[i].ID > rows[j].ID
	})
}

func sortEarliestFirst(rows []dto.AppointmentListDTO) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ScheduledFor.Equal(rows[j].ScheduledFor) {
			return rows[i].ScheduledFor.Before(rows[j].ScheduledFor)
		}
		return rows[i].ID < rows[j].ID
	})
}
