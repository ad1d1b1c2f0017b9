package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appointmentDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-tracker/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

func newSeeder(store *memory.Store, now time.Time) *Seeder {
	s := NewSeeder(store.Patients(), store.Services(), store.Appointments(), zap.NewNop(), 42)
	s.now = func() time.Time { return now }
	return s
}

func TestRunSeedsDemoClinic(t *testing.T) {
	timezone.SetClinic("Europe/London")
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	ctx := context.Background()

	res, err := newSeeder(store, now).Run(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 12, res.ServicesCreated)
	assert.Equal(t, 15, res.PatientsCreated)

	days := daysBack + daysAhead + 1
	assert.GreaterOrEqual(t, res.AppointmentsCreated, days)
	assert.LessOrEqual(t, res.AppointmentsCreated, 4*days)

	rows, err := store.Appointments().List(ctx, appointmentDomain.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, res.AppointmentsCreated)

	first := timezone.AddDays(timezone.StartOfDay(now), -daysBack)
	last := timezone.AddDays(timezone.StartOfDay(now), daysAhead+1)
	for _, r := range rows {
		local := r.ScheduledFor.In(timezone.Clinic())
		assert.True(t, appointmentDomain.Status(r.Status).Valid(), r.Status)
		assert.Contains(t, demoLocations, r.Location)
		assert.GreaterOrEqual(t, local.Hour(), 9)
		assert.LessOrEqual(t, local.Hour(), 17)
		assert.Zero(t, local.Minute()%15)
		assert.False(t, r.ScheduledFor.Before(first))
		assert.True(t, r.ScheduledFor.Before(last))
		assert.Equal(t, "Patient appointment for "+r.ServiceName, r.Notes)
	}
}

func TestRunIsSafeToRepeat(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	_, err := newSeeder(store, now).Run(ctx, false)
	require.NoError(t, err)

	res, err := newSeeder(store, now).Run(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, res.ServicesCreated)
	assert.Zero(t, res.PatientsCreated)
	assert.Zero(t, res.AppointmentsCreated)

	services, err := store.Services().List(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 12)
}

func TestSameSeedSameSchedule(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	a, b := memory.NewStore(), memory.NewStore()

	ra, err := newSeeder(a, now).Run(context.Background(), true)
	require.NoError(t, err)
	rb, err := newSeeder(b, now).Run(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, ra, rb)
}

func TestPickFollowsWeights(t *testing.T) {
	s := newSeeder(memory.NewStore(), time.Now())

	counts := make([]int, 4)
	for i := 0; i < 10000; i++ {
		counts[s.pick(pastWeights)]++
	}
	assert.Greater(t, counts[1], counts[0])
	assert.Greater(t, counts[1], counts[2])
	assert.Greater(t, counts[2], counts[3])

	assert.Equal(t, 0, s.pick([]int{1, 0, 0}))
}
