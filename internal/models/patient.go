package models

import "time"

type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	NHSNumber   string    `gorm:"column:nhs_number;size:12;uniqueIndex;not null" json:"nhs_number"`
	FirstName   string    `gorm:"size:80;not null" json:"first_name"`
	LastName    string    `gorm:"size:80;not null;index" json:"last_name"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`

	ContactPhone string `gorm:"size:30" json:"contact_phone"`
	ContactEmail string `gorm:"size:255" json:"contact_email"`

	Status       string `gorm:"size:20;default:'active';index" json:"status"`
	Priority     string `gorm:"size:20;default:'normal';index" json:"priority"`
	MedicalNotes string `gorm:"type:text" json:"medical_notes"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age counts completed years between the date of birth and now.
func (p *Patient) Age(now time.Time) int {
	dob := p.DateOfBirth
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
