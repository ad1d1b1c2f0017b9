package appointment

import "strings"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

var Statuses = []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusScheduled
}

// NormalizeStatus maps an empty value to InitialStatus.
func NormalizeStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return InitialStatus()
	}
	return Status(s)
}
