package dto

import "time"

type RecentPatientDTO struct {
	ID        uint      `json:"id"`
	NHSNumber string    `json:"nhs_number"`
	FullName  string    `json:"full_name"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// Bucket is one entry of a histogram, kept ordered so templates render it stably.
type Bucket struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type DashboardSummaryDTO struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalPatients  int64 `json:"total_patients"`
	ActivePatients int64 `json:"active_patients"`
	HighPriority   int64 `json:"high_priority"`
	UrgentPriority int64 `json:"urgent_priority"`

	TotalServices int64 `json:"total_services"`

	TodayAppointments int64 `json:"today_appointments"`
	WeekAppointments  int64 `json:"week_appointments"`
	TotalAppointments int64 `json:"total_appointments"`

	RecentPatients       []RecentPatientDTO   `json:"recent_patients"`
	UpcomingAppointments []AppointmentListDTO `json:"upcoming_appointments"`

	StatusHistogram   []Bucket `json:"status_histogram"`
	PriorityHistogram []Bucket `json:"priority_histogram"`
}
