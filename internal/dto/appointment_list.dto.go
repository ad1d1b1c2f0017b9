package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	PatientID    uint      `json:"patient_id"`
	PatientName  string    `json:"patient_name"`
	ServiceID    uint      `json:"service_id"`
	ServiceName  string    `json:"service_name"`
}
