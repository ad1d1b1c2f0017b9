package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector("clinic")

	c.PatientCreated()
	c.PatientCreated()
	c.AppointmentSaved("scheduled")
	c.LoginAttempt("invalid_credentials")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.PatientsCreatedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AppointmentsTotal.WithLabelValues("scheduled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.LoginAttemptsTotal.WithLabelValues("invalid_credentials")))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.PatientCreated()
		c.AppointmentSaved("completed")
		c.LoginAttempt("success")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	c := NewCollector("clinic")
	c.PatientCreated()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clinic_clinical_patients_created_total 1")
}
