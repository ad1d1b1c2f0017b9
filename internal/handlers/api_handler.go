package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/httpresp"
	"github.com/BruksfildServices01/clinic-tracker/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-tracker/internal/usecase/appointment"
	ucDashboard "github.com/BruksfildServices01/clinic-tracker/internal/usecase/dashboard"
	ucPatient "github.com/BruksfildServices01/clinic-tracker/internal/usecase/patient"
)

// APIHandler serves read-only JSON views for the signed-in browser session.
type APIHandler struct {
	summary      *ucDashboard.Summary
	patients     *ucPatient.ListPatients
	appointments *ucAppointment.ListAppointments
	log          *zap.Logger
}

func NewAPIHandler(
	summary *ucDashboard.Summary,
	patients *ucPatient.ListPatients,
	appointments *ucAppointment.ListAppointments,
	log *zap.Logger,
) *APIHandler {
	return &APIHandler{
		summary:      summary,
		patients:     patients,
		appointments: appointments,
		log:          log,
	}
}

func (h *APIHandler) Dashboard(c *gin.Context) {
	s, err := h.summary.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *APIHandler) Patients(c *gin.Context) {
	rows, err := h.patients.Execute(c.Request.Context(), middleware.ActorFrom(c), searchQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *APIHandler) Appointments(c *gin.Context) {
	rows, err := h.appointments.Execute(c.Request.Context(), middleware.ActorFrom(c), searchQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	httpresp.List(c, rows)
}

func (h *APIHandler) fail(c *gin.Context, err error) {
	if httperr.Status(err) == http.StatusInternalServerError {
		h.log.Error("api request failed",
			zap.Error(err),
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.String("path", c.Request.URL.Path),
		)
	}
	httperr.FromError(c, err)
}
