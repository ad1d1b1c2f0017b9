package dto

import "github.com/BruksfildServices01/clinic-tracker/internal/models"

type PatientDetailDTO struct {
	Patient           models.Patient       `json:"patient"`
	Age               int                  `json:"age"`
	NextAppointment   *AppointmentListDTO  `json:"next_appointment"`
	TotalAppointments int                  `json:"total_appointments"`
	Appointments      []AppointmentListDTO `json:"appointments"`
}
