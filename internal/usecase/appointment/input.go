package appointment

import (
	"strconv"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
	"github.com/BruksfildServices01/clinic-tracker/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

// Input carries the appointment form. Ids stay strings so a tampered select
// is reported as a field error instead of a bind failure.
type Input struct {
	PatientID    string `form:"patient_id" json:"patient_id" validate:"required,number"`
	ServiceID    string `form:"service_id" json:"service_id" validate:"required,number"`
	ScheduledFor string `form:"scheduled_for" json:"scheduled_for" validate:"required,datetime=2006-01-02T15:04"`
	Location     string `form:"location" json:"location" validate:"required,max=120"`
	Status       string `form:"status" json:"status" validate:"oneof=scheduled completed cancelled no-show"`
	Notes        string `form:"notes" json:"notes"`
}

// InputFrom fills a form from a stored appointment, for the edit page.
func InputFrom(ap *dto.AppointmentListDTO) Input {
	return Input{
		PatientID:    strconv.FormatUint(uint64(ap.PatientID), 10),
		ServiceID:    strconv.FormatUint(uint64(ap.ServiceID), 10),
		ScheduledFor: ap.ScheduledFor.In(timezone.Clinic()).Format(validators.DateTimeLayout),
		Location:     ap.Location,
		Status:       ap.Status,
		Notes:        ap.Notes,
	}
}

type parsed struct {
	patientID    uint
	serviceID    uint
	scheduledFor time.Time
}

func (in *Input) normalize() {
	in.PatientID = strings.TrimSpace(in.PatientID)
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	in.ScheduledFor = strings.TrimSpace(in.ScheduledFor)
	in.Location = strings.TrimSpace(in.Location)
	in.Status = string(domain.NormalizeStatus(in.Status))
	in.Notes = strings.TrimSpace(in.Notes)
}

// validate returns the accumulated field errors together with whatever could
// be parsed, so reference checks can add to the same set.
func (in *Input) validate() (parsed, *httperr.ValidationError) {
	in.normalize()
	v := validators.Struct(in)

	var out parsed
	if !v.Has("patient_id") {
		out.patientID = parseID(in.PatientID)
	}
	if !v.Has("service_id") {
		out.serviceID = parseID(in.ServiceID)
	}
	if !v.Has("scheduled_for") {
		at, err := timezone.ParseLocal(validators.DateTimeLayout, in.ScheduledFor)
		if err != nil {
			v.Add("scheduled_for", "Enter a valid date and time.")
		} else {
			out.scheduledFor = at.UTC()
		}
	}
	return out, v
}

func parseID(raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
