package patient

import "strings"

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusDischarged Status = "discharged"
	StatusDeceased   Status = "deceased"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusDischarged, StatusDeceased}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"

	// legacyPriorityMedium is what older records and forms used for PriorityNormal.
	legacyPriorityMedium = "medium"
)

var Priorities = []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// NormalizeStatus maps an empty value to the default status.
func NormalizeStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusActive
	}
	return Status(s)
}

// NormalizePriority maps an empty value and the legacy "medium" alias to PriorityNormal.
func NormalizePriority(raw string) Priority {
	p := strings.ToLower(strings.TrimSpace(raw))
	if p == "" || p == legacyPriorityMedium {
		return PriorityNormal
	}
	return Priority(p)
}
