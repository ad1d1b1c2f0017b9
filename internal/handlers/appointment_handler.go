package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	appointmentDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-tracker/internal/dto"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-tracker/internal/usecase/appointment"
	ucPatient "github.com/BruksfildServices01/clinic-tracker/internal/usecase/patient"
	ucService "github.com/BruksfildServices01/clinic-tracker/internal/usecase/service"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list      *ucAppointment.ListAppointments
	get       *ucAppointment.GetAppointment
	create    *ucAppointment.CreateAppointment
	update    *ucAppointment.UpdateAppointment
	setStatus *ucAppointment.SetAppointmentStatus
	delete    *ucAppointment.DeleteAppointment

	patients *ucPatient.ListPatients
	services *ucService.ListServices

	resp *Responder
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	setStatus *ucAppointment.SetAppointmentStatus,
	del *ucAppointment.DeleteAppointment,
	patients *ucPatient.ListPatients,
	services *ucService.ListServices,
	resp *Responder,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:      list,
		get:       get,
		create:    create,
		update:    update,
		setStatus: setStatus,
		delete:    del,
		patients:  patients,
		services:  services,
		resp:      resp,
	}
}

// ======================================================
// LIST / SHOW
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	q := searchQuery(c)

	rows, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c), q)
	if err != nil {
		h.resp.Fail(c, err, "/")
		return
	}

	h.resp.HTML(c, http.StatusOK, "appointments", gin.H{
		"Title":        "Appointments",
		"Query":        q,
		"Appointments": rows,
	})
}

func (h *AppointmentHandler) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		h.resp.Fail(c, err, "/appointments")
		return
	}

	h.resp.HTML(c, http.StatusOK, "appointment_detail", gin.H{
		"Title":       "Appointment",
		"Appointment": ap,
		"Statuses":    stringsOf(appointmentDomain.Statuses),
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) New(c *gin.Context) {
	if err := access.Check(middleware.ActorFrom(c), access.CreateAppointment); err != nil {
		h.resp.Fail(c, err, "/appointments")
		return
	}

	h.form(c, http.StatusOK, nil, ucAppointment.Input{
		PatientID: c.Query("patient_id"),
		Status:    string(appointmentDomain.InitialStatus()),
	}, nil)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var in ucAppointment.Input
	_ = c.ShouldBind(&in)

	ap, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), in)
	if err != nil {
		var ve *httperr.ValidationError
		if errors.As(err, &ve) {
			h.form(c, http.StatusUnprocessableEntity, nil, in, ve.Fields)
			return
		}
		h.resp.Fail(c, err, "/appointments")
		return
	}

	h.resp.RedirectWithFlash(c, fmt.Sprintf("/appointments/%d", ap.ID), FlashSuccess, "Appointment created.")
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}
	actor := middleware.ActorFrom(c)
	if err := access.Check(actor, access.UpdateAppointment); err != nil {
		h.resp.Fail(c, err, "/appointments")
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), actor, id)
	if err != nil {
		h.resp.Fail(c, err, "/appointments")
		return
	}

	h.form(c, http.StatusOK, ap, ucAppointment.InputFrom(ap), nil)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	var in ucAppointment.Input
	_ = c.ShouldBind(&in)

	ap, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, in)
	if err != nil {
		var ve *httperr.ValidationError
		if errors.As(err, &ve) {
			h.form(c, http.StatusUnprocessableEntity, &dto.AppointmentListDTO{ID: id}, in, ve.Fields)
			return
		}
		h.resp.Fail(c, err, fmt.Sprintf("/appointments/%d", id))
		return
	}

	h.resp.RedirectWithFlash(c, fmt.Sprintf("/appointments/%d", ap.ID), FlashSuccess, "Appointment updated.")
}

// SetStatus marks an appointment completed, cancelled, no-show or scheduled
// again without touching its other fields.
func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}
	back := fmt.Sprintf("/appointments/%d", id)

	ap, err := h.setStatus.Execute(c.Request.Context(), middleware.ActorFrom(c), id, c.PostForm("status"))
	if err != nil {
		var ve *httperr.ValidationError
		if errors.As(err, &ve) {
			h.resp.RedirectWithFlash(c, back, FlashWarning, "Select a valid status.")
			return
		}
		h.resp.Fail(c, err, back)
		return
	}

	h.resp.RedirectWithFlash(c, back, FlashSuccess, "Appointment marked "+strings.ReplaceAll(ap.Status, "-", " ")+".")
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.resp.Fail(c, err, fmt.Sprintf("/appointments/%d", id))
		return
	}

	h.resp.RedirectWithFlash(c, "/appointments", FlashSuccess, "Appointment deleted.")
}

// ------------------------------------------------------

func (h *AppointmentHandler) form(
	c *gin.Context,
	status int,
	existing *dto.AppointmentListDTO,
	in ucAppointment.Input,
	errs map[string]string,
) {
	ctx := c.Request.Context()
	actor := middleware.ActorFrom(c)

	patients, err := h.patients.Execute(ctx, actor, "")
	if err != nil {
		h.resp.Fail(c, err, "/appointments")
		return
	}
	services, err := h.services.Execute(ctx, actor)
	if err != nil {
		h.resp.Fail(c, err, "/appointments")
		return
	}

	title := "Book appointment"
	action := "/appointments"
	if existing != nil {
		title = "Edit appointment"
		action = fmt.Sprintf("/appointments/%d", existing.ID)
	}
	if errs == nil {
		errs = map[string]string{}
	}

	h.resp.HTML(c, status, "appointment_form", gin.H{
		"Title":       title,
		"Action":      action,
		"Appointment": existing,
		"Form":        in,
		"Errors":      errs,
		"Patients":    patients,
		"Services":    services,
		"Statuses":    stringsOf(appointmentDomain.Statuses),
	})
}
