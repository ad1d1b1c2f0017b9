package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	patientDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/middleware"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	ucPatient "github.com/BruksfildServices01/clinic-tracker/internal/usecase/patient"
)

// ======================================================
// HANDLER
// ======================================================

type PatientHandler struct {
	list   *ucPatient.ListPatients
	get    *ucPatient.GetPatient
	create *ucPatient.CreatePatient
	update *ucPatient.UpdatePatient
	delete *ucPatient.DeletePatient
	resp   *Responder
}

func NewPatientHandler(
	list *ucPatient.ListPatients,
	get *ucPatient.GetPatient,
	create *ucPatient.CreatePatient,
	update *ucPatient.UpdatePatient,
	del *ucPatient.DeletePatient,
	resp *Responder,
) *PatientHandler {
	return &PatientHandler{
		list:   list,
		get:    get,
		create: create,
		update: update,
		delete: del,
		resp:   resp,
	}
}

// ======================================================
// LIST / SHOW
// ======================================================

func (h *PatientHandler) List(c *gin.Context) {
	q := searchQuery(c)

	patients, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c), q)
	if err != nil {
		h.resp.Fail(c, err, "/")
		return
	}

	h.resp.HTML(c, http.StatusOK, "patients", gin.H{
		"Title":    "Patients",
		"Query":    q,
		"Patients": patients,
	})
}

func (h *PatientHandler) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	detail, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		h.resp.Fail(c, err, "/patients")
		return
	}

	h.resp.HTML(c, http.StatusOK, "patient_detail", gin.H{
		"Title":  detail.Patient.FullName(),
		"Detail": detail,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *PatientHandler) New(c *gin.Context) {
	if err := access.Check(middleware.ActorFrom(c), access.CreatePatient); err != nil {
		h.resp.Fail(c, err, "/patients")
		return
	}

	h.form(c, http.StatusOK, nil, ucPatient.Input{
		Status:   string(patientDomain.StatusActive),
		Priority: string(patientDomain.PriorityNormal),
	}, nil)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var in ucPatient.Input
	_ = c.ShouldBind(&in)

	p, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), in)
	if err != nil {
		var ve *httperr.ValidationError
		if errors.As(err, &ve) {
			h.form(c, http.StatusUnprocessableEntity, nil, in, ve.Fields)
			return
		}
		h.resp.Fail(c, err, "/patients")
		return
	}

	h.resp.RedirectWithFlash(c, fmt.Sprintf("/patients/%d", p.ID), FlashSuccess, "Patient created.")
}

// ======================================================
// UPDATE
// ======================================================

func (h *PatientHandler) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}
	actor := middleware.ActorFrom(c)
	if err := access.Check(actor, access.UpdatePatient); err != nil {
		h.resp.Fail(c, err, "/patients")
		return
	}

	detail, err := h.get.Execute(c.Request.Context(), actor, id)
	if err != nil {
		h.resp.Fail(c, err, "/patients")
		return
	}

	h.form(c, http.StatusOK, &detail.Patient, ucPatient.InputFrom(&detail.Patient), nil)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	var in ucPatient.Input
	_ = c.ShouldBind(&in)

	p, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, in)
	if err != nil {
		var ve *httperr.ValidationError
		if errors.As(err, &ve) {
			h.form(c, http.StatusUnprocessableEntity, &models.Patient{ID: id, FirstName: in.FirstName, LastName: in.LastName}, in, ve.Fields)
			return
		}
		h.resp.Fail(c, err, fmt.Sprintf("/patients/%d", id))
		return
	}

	h.resp.RedirectWithFlash(c, fmt.Sprintf("/patients/%d", p.ID), FlashSuccess, "Patient updated.")
}

// ======================================================
// DELETE
// ======================================================

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.resp.Fail(c, err, fmt.Sprintf("/patients/%d", id))
		return
	}

	h.resp.RedirectWithFlash(c, "/patients", FlashSuccess, "Patient deleted.")
}

// ------------------------------------------------------

func (h *PatientHandler) form(
	c *gin.Context,
	status int,
	existing *models.Patient,
	in ucPatient.Input,
	errs map[string]string,
) {
	title := "New patient"
	action := "/patients"
	if existing != nil {
		title = "Edit patient"
		action = fmt.Sprintf("/patients/%d", existing.ID)
	}
	if errs == nil {
		errs = map[string]string{}
	}

	h.resp.HTML(c, status, "patient_form", gin.H{
		"Title":      title,
		"Action":     action,
		"Patient":    existing,
		"Form":       in,
		"Errors":     errs,
		"Statuses":   stringsOf(patientDomain.Statuses),
		"Priorities": stringsOf(patientDomain.Priorities),
	})
}
