// Package access decides which signed-in users may run which record operations.
package access

import (
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

const (
	RoleAdmin     = "admin"
	RoleClinician = "clinician"
)

// Actor is the signed-in caller of an operation. A nil *Actor is an anonymous caller.
type Actor struct {
	UserID   uint
	Email    string
	FullName string
	Roles    []string
}

func ActorFromUser(u *models.User) *Actor {
	if u == nil {
		return nil
	}
	return &Actor{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    u.RoleNames(),
	}
}

func (a *Actor) HasRole(role string) bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Can reports whether the actor would pass Check for action.
func (a *Actor) Can(action Action) bool {
	return Check(a, action) == nil
}

type Action string

const (
	ViewDashboard Action = "dashboard.view"

	ViewPatients  Action = "patient.view"
	CreatePatient Action = "patient.create"
	UpdatePatient Action = "patient.update"
	DeletePatient Action = "patient.delete"

	ViewServices  Action = "service.view"
	CreateService Action = "service.create"
	UpdateService Action = "service.update"
	DeleteService Action = "service.delete"

	ViewAppointments  Action = "appointment.view"
	CreateAppointment Action = "appointment.create"
	UpdateAppointment Action = "appointment.update"
	DeleteAppointment Action = "appointment.delete"
)

// policy lists the roles that may run each action. An empty list means any
// signed-in user.
var policy = map[Action][]string{
	ViewDashboard: nil,

	ViewPatients:  nil,
	CreatePatient: {RoleAdmin, RoleClinician},
	UpdatePatient: {RoleAdmin, RoleClinician},
	DeletePatient: {RoleAdmin},

	ViewServices:  nil,
	CreateService: {RoleAdmin},
	UpdateService: {RoleAdmin},
	DeleteService: {RoleAdmin},

	ViewAppointments:  nil,
	CreateAppointment: {RoleAdmin, RoleClinician},
	UpdateAppointment: {RoleAdmin, RoleClinician},
	DeleteAppointment: {RoleAdmin},
}

// Authorize reports whether roles holds at least one of required.
func Authorize(roles []string, required []string) bool {
	for _, want := range required {
		for _, have := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Check returns httperr.ErrUnauthenticated for an anonymous actor and
// httperr.ErrForbidden when the actor lacks every role the action requires.
// Unknown actions are refused.
func Check(actor *Actor, action Action) error {
	if actor == nil {
		return httperr.ErrUnauthenticated
	}

	required, known := policy[action]
	if !known {
		return httperr.ErrForbidden
	}
	if len(required) == 0 {
		return nil
	}
	if !Authorize(actor.Roles, required) {
		return httperr.ErrForbidden
	}
	return nil
}
