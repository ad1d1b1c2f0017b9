package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPatientAge(t *testing.T) {
	p := Patient{DateOfBirth: time.Date(1991, time.February, 3, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, 33, p.Age(time.Date(2025, time.February, 2, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, p.Age(time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, p.Age(time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestUserRoles(t *testing.T) {
	u := User{Roles: []Role{{Name: "clinician"}}}

	assert.True(t, u.HasRole("clinician"))
	assert.False(t, u.HasRole("admin"))
	assert.Equal(t, []string{"clinician"}, u.RoleNames())
}
