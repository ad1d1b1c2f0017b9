package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	appointmentDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/dashboard"
	patientDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
)

const (
	listLimit      = 5
	recentWindow   = 7 * 24 * time.Hour
	upcomingWindow = 24 * time.Hour
	weekDays       = 7
)

// Summary recomputes every dashboard figure from the store on each call, using
// the clock reading taken at the start of the call.
type Summary struct {
	repo domain.Repository
	now  func() time.Time
}

func NewSummary(repo domain.Repository) *Summary {
	return &Summary{repo: repo, now: timezone.Now}
}

func (uc *Summary) Execute(ctx context.Context, actor *access.Actor) (*dto.DashboardSummaryDTO, error) {
	if err := access.Check(actor, access.ViewDashboard); err != nil {
		return nil, err
	}

	now := uc.now()
	today := timezone.StartOfDay(now)
	scheduled := string(appointmentDomain.StatusScheduled)

	out := &dto.DashboardSummaryDTO{GeneratedAt: now}
	var err error

	// --------------------------------------------------
	// Patients
	// --------------------------------------------------
	if out.TotalPatients, err = uc.repo.CountPatients(ctx); err != nil {
		return nil, err
	}

	statuses, err := uc.repo.PatientStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	priorities, err := uc.repo.PatientPriorityCounts(ctx)
	if err != nil {
		return nil, err
	}

	out.ActivePatients = statuses[string(patientDomain.StatusActive)]
	out.HighPriority = priorities[string(patientDomain.PriorityHigh)]
	out.UrgentPriority = priorities[string(patientDomain.PriorityUrgent)]
	out.StatusHistogram = histogram(statuses, patientDomain.Statuses)
	out.PriorityHistogram = histogram(priorities, patientDomain.Priorities)

	recent, err := uc.repo.RecentPatients(ctx, now.Add(-recentWindow), listLimit)
	if err != nil {
		return nil, err
	}
	out.RecentPatients = make([]dto.RecentPatientDTO, 0, len(recent))
	for _, p := range recent {
		out.RecentPatients = append(out.RecentPatients, dto.RecentPatientDTO{
			ID:        p.ID,
			NHSNumber: p.NHSNumber,
			FullName:  p.FullName(),
			Status:    p.Status,
			Priority:  p.Priority,
			CreatedAt: p.CreatedAt,
		})
	}

	// --------------------------------------------------
	// Services
	// --------------------------------------------------
	if out.TotalServices, err = uc.repo.CountServices(ctx); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Appointments
	// --------------------------------------------------
	if out.TotalAppointments, err = uc.repo.CountAppointments(ctx); err != nil {
		return nil, err
	}

	if out.TodayAppointments, err = uc.repo.CountAppointmentsByStatusBetween(
		ctx, scheduled, today, timezone.AddDays(today, 1),
	); err != nil {
		return nil, err
	}

	if out.WeekAppointments, err = uc.repo.CountAppointmentsByStatusBetween(
		ctx, scheduled, now, timezone.AddDays(today, weekDays+1),
	); err != nil {
		return nil, err
	}

	upcoming, err := uc.repo.UpcomingAppointments(ctx, scheduled, now, now.Add(upcomingWindow), listLimit)
	if err != nil {
		return nil, err
	}
	if upcoming == nil {
		upcoming = []dto.AppointmentListDTO{}
	}
	out.UpcomingAppointments = upcoming

	return out, nil
}

// histogram lists every declared value in order, then any value found in the
// store that is not declared.
func histogram[T ~string](counts map[string]int64, declared []T) []dto.Bucket {
	out := make([]dto.Bucket, 0, len(declared))
	seen := make(map[string]bool, len(declared))

	for _, v := range declared {
		out = append(out, dto.Bucket{Value: string(v), Count: counts[string(v)]})
		seen[string(v)] = true
	}
	var extra []dto.Bucket
	for v, n := range counts {
		if !seen[v] {
			extra = append(extra, dto.Bucket{Value: v, Count: n})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Value < extra[j].Value })

	return append(out, extra...)
}
