package patient

import (
	"strings"
	"time"

	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/timezone"
	"github.com/BruksfildServices01/clinic-tracker/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type Input struct {
	NHSNumber    string `form:"nhs_number" json:"nhs_number" validate:"required,min=10,max=12"`
	FirstName    string `form:"first_name" json:"first_name" validate:"required,max=80"`
	LastName     string `form:"last_name" json:"last_name" validate:"required,max=80"`
	DateOfBirth  string `form:"date_of_birth" json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	ContactPhone string `form:"contact_phone" json:"contact_phone" validate:"max=30"`
	ContactEmail string `form:"contact_email" json:"contact_email" validate:"omitempty,email,max=255"`
	Status       string `form:"status" json:"status" validate:"oneof=active inactive discharged deceased"`
	Priority     string `form:"priority" json:"priority" validate:"oneof=low normal high urgent"`
	MedicalNotes string `form:"medical_notes" json:"medical_notes"`
}

// InputFrom fills a form from a stored patient, for the edit page.
func InputFrom(p *models.Patient) Input {
	return Input{
		NHSNumber:    p.NHSNumber,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		DateOfBirth:  p.DateOfBirth.Format(validators.DateLayout),
		ContactPhone: p.ContactPhone,
		ContactEmail: p.ContactEmail,
		Status:       p.Status,
		Priority:     p.Priority,
		MedicalNotes: p.MedicalNotes,
	}
}

func (in *Input) normalize() {
	in.NHSNumber = strings.TrimSpace(in.NHSNumber)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.DateOfBirth = strings.TrimSpace(in.DateOfBirth)
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	in.ContactEmail = strings.ToLower(strings.TrimSpace(in.ContactEmail))
	in.Status = string(domain.NormalizeStatus(in.Status))
	in.Priority = string(domain.NormalizePriority(in.Priority))
	in.MedicalNotes = strings.TrimSpace(in.MedicalNotes)
}

// validate checks every field and returns the parsed date of birth. A date of
// birth later than today's clinic date is rejected.
func (in *Input) validate(now time.Time) (time.Time, *httperr.ValidationError) {
	in.normalize()
	v := validators.Struct(in)

	var dob time.Time
	if !v.Has("date_of_birth") {
		parsed, err := time.Parse(validators.DateLayout, in.DateOfBirth)
		if err != nil {
			v.Add("date_of_birth", "Enter a valid date (YYYY-MM-DD).")
		} else if parsed.After(today(now)) {
			v.Add("date_of_birth", "Date of birth cannot be in the future.")
		} else {
			dob = parsed
		}
	}
	return dob, v
}

// today is the clinic calendar date of now, as a UTC midnight comparable to a parsed date.
func today(now time.Time) time.Time {
	d := timezone.StartOfDay(now)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (in *Input) apply(p *models.Patient, dob time.Time) {
	p.NHSNumber = in.NHSNumber
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.DateOfBirth = dob
	p.ContactPhone = in.ContactPhone
	p.ContactEmail = in.ContactEmail
	p.Status = in.Status
	p.Priority = in.Priority
	p.MedicalNotes = in.MedicalNotes
}

func duplicateNHS() error {
	v := httperr.NewValidation()
	v.Add("nhs_number", "A patient with this NHS number already exists.")
	return v
}
