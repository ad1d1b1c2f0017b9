package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

var viewer = &access.Actor{UserID: 1}

type seeder struct {
	t     *testing.T
	store *memory.Store
	svc   *models.Service
	n     int
}

func (s *seeder) patient(status, priority string, created time.Time) *models.Patient {
	s.t.Helper()
	s.n++
	p := &models.Patient{
		NHSNumber: "99900000" + string(rune('0'+s.n/10)) + string(rune('0'+s.n%10)),
		FirstName: "P",
		LastName:  string(rune('A' + s.n)),
		Status:    status,
		Priority:  priority,
		CreatedAt: created,
	}
	require.NoError(s.t, s.store.Patients().Create(context.Background(), p))
	return p
}

func (s *seeder) appointment(p *models.Patient, at time.Time, status string) {
	s.t.Helper()
	require.NoError(s.t, s.store.Appointments().Create(context.Background(), &models.Appointment{
		PatientID: p.ID, ServiceID: s.svc.ID, ScheduledFor: at, Location: "Ward 3", Status: status,
	}))
}

func newSeeder(t *testing.T) *seeder {
	store := memory.NewStore()
	svc := &models.Service{Name: "Cardiology"}
	require.NoError(t, store.Services().Create(context.Background(), svc))
	return &seeder{t: t, store: store, svc: svc}
}

func TestSummaryFigures(t *testing.T) {
	timezone.SetClinic("Europe/London")

	// Wednesday 15 January 2025, 10:00 in London (GMT).
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	s := newSeeder(t)

	alice := s.patient("active", "high", now.Add(-time.Hour))
	s.patient("active", "urgent", now.Add(-48*time.Hour))
	s.patient("inactive", "urgent", now.Add(-6*24*time.Hour))
	s.patient("discharged", "low", now.Add(-8*24*time.Hour))

	s.appointment(alice, now.Add(-9*time.Hour), "scheduled")             // today 01:00, before now
	s.appointment(alice, now.Add(2*time.Hour), "scheduled")              // today, upcoming
	s.appointment(alice, now.Add(3*time.Hour), "cancelled")              // today, not scheduled
	s.appointment(alice, now.Add(24*time.Hour), "scheduled")             // tomorrow, exactly 24h ahead
	s.appointment(alice, now.Add(26*time.Hour), "scheduled")             // tomorrow, beyond 24h
	s.appointment(alice, time.Date(2025, 1, 22, 23, 0, 0, 0, time.UTC), "scheduled") // day 7, still in week
	s.appointment(alice, time.Date(2025, 1, 23, 0, 30, 0, 0, time.UTC), "scheduled") // day 8
	s.appointment(alice, now.Add(-48*time.Hour), "completed")

	uc := NewSummary(s.store.Dashboard())
	uc.now = func() time.Time { return now }

	got, err := uc.Execute(context.Background(), viewer)
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.TotalPatients)
	assert.Equal(t, int64(2), got.ActivePatients)
	assert.Equal(t, int64(1), got.HighPriority)
	assert.Equal(t, int64(2), got.UrgentPriority)
	assert.Equal(t, int64(1), got.TotalServices)
	assert.Equal(t, int64(8), got.TotalAppointments)
	assert.Equal(t, int64(2), got.TodayAppointments)
	assert.Equal(t, int64(4), got.WeekAppointments)

	require.Len(t, got.UpcomingAppointments, 2)
	assert.True(t, got.UpcomingAppointments[0].ScheduledFor.Before(got.UpcomingAppointments[1].ScheduledFor))

	require.Len(t, got.RecentPatients, 3)
	assert.Equal(t, alice.ID, got.RecentPatients[0].ID)

	assert.Equal(t, []dto.Bucket{
		{Value: "active", Count: 2},
		{Value: "inactive", Count: 1},
		{Value: "discharged", Count: 1},
		{Value: "deceased", Count: 0},
	}, got.StatusHistogram)
	assert.Equal(t, []dto.Bucket{
		{Value: "low", Count: 1},
		{Value: "normal", Count: 0},
		{Value: "high", Count: 1},
		{Value: "urgent", Count: 2},
	}, got.PriorityHistogram)
}

func TestSummaryLimitsLists(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	s := newSeeder(t)

	var first *models.Patient
	for i := 0; i < 7; i++ {
		p := s.patient("active", "normal", now.Add(-time.Duration(i+1)*time.Minute))
		if first == nil {
			first = p
		}
		s.appointment(p, now.Add(time.Duration(i+1)*time.Hour), "scheduled")
	}

	uc := NewSummary(s.store.Dashboard())
	uc.now = func() time.Time { return now }

	got, err := uc.Execute(context.Background(), viewer)
	require.NoError(t, err)

	require.Len(t, got.RecentPatients, 5)
	assert.Equal(t, first.ID, got.RecentPatients[0].ID)
	require.Len(t, got.UpcomingAppointments, 5)
	assert.True(t, now.Add(time.Hour).Equal(got.UpcomingAppointments[0].ScheduledFor))
}

func TestWeekCountSkipsEarlierToday(t *testing.T) {
	timezone.SetClinic("Europe/London")

	// 17:00 in London; the morning appointment has already happened.
	now := time.Date(2025, time.January, 15, 17, 0, 0, 0, time.UTC)
	s := newSeeder(t)

	p := s.patient("active", "normal", now)
	s.appointment(p, time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC), "scheduled")

	uc := NewSummary(s.store.Dashboard())
	uc.now = func() time.Time { return now }

	got, err := uc.Execute(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TodayAppointments)
	assert.Zero(t, got.WeekAppointments)
	assert.Empty(t, got.UpcomingAppointments)

	s.appointment(p, now, "scheduled")
	got, err = uc.Execute(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.WeekAppointments)
}

func TestFarFutureAppointmentIsNotUpcoming(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	s := newSeeder(t)

	p := s.patient("active", "normal", now)
	s.appointment(p, time.Date(2030, time.January, 1, 9, 30, 0, 0, time.UTC), "scheduled")

	uc := NewSummary(s.store.Dashboard())
	uc.now = func() time.Time { return now }

	got, err := uc.Execute(context.Background(), viewer)
	require.NoError(t, err)
	assert.Empty(t, got.UpcomingAppointments)
	assert.NotNil(t, got.UpcomingAppointments)
}

func TestSummaryRecomputesOnEveryCall(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	s := newSeeder(t)
	p := s.patient("active", "normal", now)
	s.appointment(p, now.Add(30*time.Second), "scheduled")

	uc := NewSummary(s.store.Dashboard())

	uc.now = func() time.Time { return now }
	before, err := uc.Execute(context.Background(), viewer)
	require.NoError(t, err)

	uc.now = func() time.Time { return now.Add(time.Minute) }
	after, err := uc.Execute(context.Background(), viewer)
	require.NoError(t, err)

	assert.Len(t, before.UpcomingAppointments, 1)
	assert.Empty(t, after.UpcomingAppointments)
}

func TestSummaryRequiresSignIn(t *testing.T) {
	_, err := NewSummary(memory.NewStore().Dashboard()).Execute(context.Background(), nil)
	assert.ErrorIs(t, err, httperr.ErrUnauthenticated)
}
