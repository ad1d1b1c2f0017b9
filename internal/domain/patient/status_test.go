package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, PriorityNormal, NormalizePriority(""))
	assert.Equal(t, PriorityNormal, NormalizePriority("medium"))
	assert.Equal(t, PriorityNormal, NormalizePriority(" Medium "))
	assert.Equal(t, PriorityUrgent, NormalizePriority("URGENT"))
	assert.False(t, NormalizePriority("critical").Valid())
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusActive, NormalizeStatus(""))
	assert.Equal(t, StatusDischarged, NormalizeStatus("discharged"))
	assert.True(t, StatusDeceased.Valid())
	assert.False(t, Status("archived").Valid())
}
