package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

var (
	admin     = &access.Actor{UserID: 1, Roles: []string{access.RoleAdmin}}
	clinician = &access.Actor{UserID: 2, Roles: []string{access.RoleClinician}}
)

// steppingClock returns start on the first call and one minute later on each following call.
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

type fixture struct {
	store  *memory.Store
	create *CreatePatient
	update *UpdatePatient
	delete *DeletePatient
	get    *GetPatient
	list   *ListPatients
}

func newFixture(now func() time.Time) *fixture {
	store := memory.NewStore()
	log := zap.NewNop()

	f := &fixture{
		store:  store,
		create: NewCreatePatient(store.Patients(), log, nil),
		update: NewUpdatePatient(store.Patients(), log),
		delete: NewDeletePatient(store.Patients(), log),
		get:    NewGetPatient(store.Patients(), store.Appointments()),
		list:   NewListPatients(store.Patients()),
	}
	f.create.now = now
	f.update.now = now
	f.get.now = now
	return f
}

func aliceBrown() Input {
	return Input{
		NHSNumber:   "9990001111",
		FirstName:   "Alice",
		LastName:    "Brown",
		DateOfBirth: "1991-02-03",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *httperr.ValidationError
	require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
	return ve.Fields
}

func TestCreateAppliesDefaults(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	p, err := f.create.Execute(ctx, clinician, aliceBrown())
	require.NoError(t, err)

	got, err := f.get.Execute(ctx, clinician, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", got.Patient.Status)
	assert.Equal(t, "normal", got.Patient.Priority)
	assert.Equal(t, time.Date(1991, time.February, 3, 0, 0, 0, 0, time.UTC), got.Patient.DateOfBirth)
	assert.Equal(t, 33, got.Age)
}

func TestCreateAcceptsLegacyMediumPriority(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))

	in := aliceBrown()
	in.Priority = "medium"

	p, err := f.create.Execute(context.Background(), admin, in)
	require.NoError(t, err)
	assert.Equal(t, "normal", p.Priority)
}

func TestEditScenario(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	p, err := f.create.Execute(ctx, clinician, aliceBrown())
	require.NoError(t, err)
	assert.Equal(t, "active", p.Status)

	in := aliceBrown()
	in.LastName = "Green"
	in.Status = "inactive"
	_, err = f.update.Execute(ctx, clinician, p.ID, in)
	require.NoError(t, err)

	got, err := f.get.Execute(ctx, clinician, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green", got.Patient.LastName)
	assert.Equal(t, "inactive", got.Patient.Status)
	assert.True(t, got.Patient.UpdatedAt.After(got.Patient.CreatedAt))
}

func TestUpdateIsIdempotentApartFromTimestamp(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	p, err := f.create.Execute(ctx, admin, aliceBrown())
	require.NoError(t, err)

	in := aliceBrown()
	in.Priority = "high"
	in.ContactEmail = "Alice@Example.org"

	first, err := f.update.Execute(ctx, admin, p.ID, in)
	require.NoError(t, err)
	firstCopy := *first

	second, err := f.update.Execute(ctx, admin, p.ID, in)
	require.NoError(t, err)

	assert.True(t, second.UpdatedAt.After(firstCopy.UpdatedAt))
	firstCopy.UpdatedAt = second.UpdatedAt
	assert.Equal(t, firstCopy, *second)
	assert.Equal(t, "alice@example.org", second.ContactEmail)
}

func TestValidationListsEveryField(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))

	_, err := f.create.Execute(context.Background(), admin, Input{
		NHSNumber:    "123",
		ContactEmail: "not-an-email",
		Status:       "archived",
		Priority:     "critical",
	})

	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "nhs_number")
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "last_name")
	assert.Contains(t, fields, "date_of_birth")
	assert.Contains(t, fields, "contact_email")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "priority")
	assert.NotContains(t, fields, "contact_phone")
}

func TestValidationRejectsFutureAndMalformedBirthDates(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	in := aliceBrown()
	in.DateOfBirth = "2025-01-07"
	_, err := f.create.Execute(ctx, admin, in)
	assert.Equal(t, "Date of birth cannot be in the future.", fieldErrors(t, err)["date_of_birth"])

	in.DateOfBirth = "1991-02-30"
	_, err = f.create.Execute(ctx, admin, in)
	assert.Contains(t, fieldErrors(t, err), "date_of_birth")
}

func TestDuplicateNHSNumberIsAFieldError(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	_, err := f.create.Execute(ctx, admin, aliceBrown())
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, admin, aliceBrown())
	assert.Equal(t, "A patient with this NHS number already exists.", fieldErrors(t, err)["nhs_number"])
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	_, err := f.create.Execute(ctx, admin, aliceBrown())
	require.NoError(t, err)

	for _, q := range []string{"brown", "BROWN", "aLiCe", "9990001"} {
		got, err := f.list.Execute(ctx, clinician, q)
		require.NoError(t, err)
		require.Len(t, got, 1, q)
		assert.Equal(t, "Brown", got[0].LastName)
	}

	got, err := f.list.Execute(ctx, clinician, "green")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClinicianCannotDelete(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	p, err := f.create.Execute(ctx, clinician, aliceBrown())
	require.NoError(t, err)

	err = f.delete.Execute(ctx, clinician, p.ID)
	assert.ErrorIs(t, err, httperr.ErrForbidden)

	_, err = f.get.Execute(ctx, clinician, p.ID)
	assert.NoError(t, err)
}

func TestAnonymousCallerIsUnauthenticated(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	_, err := f.list.Execute(ctx, nil, "")
	assert.ErrorIs(t, err, httperr.ErrUnauthenticated)

	_, err = f.create.Execute(ctx, nil, aliceBrown())
	assert.ErrorIs(t, err, httperr.ErrUnauthenticated)

	assert.ErrorIs(t, f.delete.Execute(ctx, nil, 1), httperr.ErrUnauthenticated)
}

func TestRoleLessUserCanViewButNotCreate(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	viewer := &access.Actor{UserID: 9}

	_, err := f.list.Execute(context.Background(), viewer, "")
	assert.NoError(t, err)

	_, err = f.create.Execute(context.Background(), viewer, aliceBrown())
	assert.ErrorIs(t, err, httperr.ErrForbidden)
}

func TestDeleteRemovesAllAppointments(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	p, err := f.create.Execute(ctx, admin, aliceBrown())
	require.NoError(t, err)

	svc := &models.Service{Name: "Cardiology"}
	require.NoError(t, f.store.Services().Create(ctx, svc))

	const n = 4
	for i := 0; i < n; i++ {
		require.NoError(t, f.store.Appointments().Create(ctx, &models.Appointment{
			PatientID:    p.ID,
			ServiceID:    svc.ID,
			ScheduledFor: time.Date(2025, time.February, 1+i, 9, 0, 0, 0, time.UTC),
			Location:     "Room 101",
			Status:       "scheduled",
		}))
	}

	detail, err := f.get.Execute(ctx, admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, n, detail.TotalAppointments)

	require.NoError(t, f.delete.Execute(ctx, admin, p.ID))

	left, err := f.store.Appointments().ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = f.get.Execute(ctx, admin, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.delete.Execute(ctx, admin, p.ID), domain.ErrNotFound)
}

func TestNextAppointmentOnDetail(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	p, err := f.create.Execute(ctx, admin, aliceBrown())
	require.NoError(t, err)

	svc := &models.Service{Name: "General Practice"}
	require.NoError(t, f.store.Services().Create(ctx, svc))

	at := time.Date(2030, time.January, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, f.store.Appointments().Create(ctx, &models.Appointment{
		PatientID: p.ID, ServiceID: svc.ID, ScheduledFor: at, Location: "Clinic A", Status: "scheduled",
	}))

	detail, err := f.get.Execute(ctx, admin, p.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.NextAppointment)
	assert.True(t, at.Equal(detail.NextAppointment.ScheduledFor))
	assert.Equal(t, "General Practice", detail.NextAppointment.ServiceName)

	f.get.now = func() time.Time { return at.Add(time.Minute) }
	detail, err = f.get.Execute(ctx, admin, p.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.NextAppointment)
}

func TestUpdateMissingPatient(t *testing.T) {
	f := newFixture(steppingClock(time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)))

	_, err := f.update.Execute(context.Background(), admin, 404, aliceBrown())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
