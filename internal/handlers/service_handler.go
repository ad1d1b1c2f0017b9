package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/middleware"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	ucService "github.com/BruksfildServices01/clinic-tracker/internal/usecase/service"
)

type ServiceHandler struct {
	list   *ucService.ListServices
	get    *ucService.GetService
	create *ucService.CreateService
	update *ucService.UpdateService
	delete *ucService.DeleteService
	resp   *Responder
}

func NewServiceHandler(
	list *ucService.ListServices,
	get *ucService.GetService,
	create *ucService.CreateService,
	update *ucService.UpdateService,
	del *ucService.DeleteService,
	resp *Responder,
) *ServiceHandler {
	return &ServiceHandler{
		list:   list,
		get:    get,
		create: create,
		update: update,
		delete: del,
		resp:   resp,
	}
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		h.resp.Fail(c, err, "/")
		return
	}

	h.resp.HTML(c, http.StatusOK, "services", gin.H{
		"Title":    "Services",
		"Services": services,
	})
}

func (h *ServiceHandler) Show(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	s, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		h.resp.Fail(c, err, "/services")
		return
	}

	h.resp.HTML(c, http.StatusOK, "service_detail", gin.H{
		"Title":   s.Name,
		"Service": s,
	})
}

func (h *ServiceHandler) New(c *gin.Context) {
	if err := access.Check(middleware.ActorFrom(c), access.CreateService); err != nil {
		h.resp.Fail(c, err, "/services")
		return
	}
	h.form(c, http.StatusOK, nil, ucService.Input{}, nil)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var in ucService.Input
	_ = c.ShouldBind(&in)

	s, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), in)
	if err != nil {
		var ve *httperr.ValidationError
		if errors.As(err, &ve) {
			h.form(c, http.StatusUnprocessableEntity, nil, in, ve.Fields)
			return
		}
		h.resp.Fail(c, err, "/services")
		return
	}

	h.resp.RedirectWithFlash(c, fmt.Sprintf("/services/%d", s.ID), FlashSuccess, "Service created.")
}

func (h *ServiceHandler) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}
	actor := middleware.ActorFrom(c)
	if err := access.Check(actor, access.UpdateService); err != nil {
		h.resp.Fail(c, err, "/services")
		return
	}

	s, err := h.get.Execute(c.Request.Context(), actor, id)
	if err != nil {
		h.resp.Fail(c, err, "/services")
		return
	}

	h.form(c, http.StatusOK, s, ucService.Input{Name: s.Name, Description: s.Description}, nil)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	var in ucService.Input
	_ = c.ShouldBind(&in)

	s, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, in)
	if err != nil {
		var ve *httperr.ValidationError
		if errors.As(err, &ve) {
			h.form(c, http.StatusUnprocessableEntity, &models.Service{ID: id, Name: in.Name}, in, ve.Fields)
			return
		}
		h.resp.Fail(c, err, fmt.Sprintf("/services/%d", id))
		return
	}

	h.resp.RedirectWithFlash(c, fmt.Sprintf("/services/%d", s.ID), FlashSuccess, "Service updated.")
}

// Delete is refused while appointments still reference the service.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.resp.NotFound(c)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.resp.Fail(c, err, fmt.Sprintf("/services/%d", id))
		return
	}

	h.resp.RedirectWithFlash(c, "/services", FlashSuccess, "Service deleted.")
}

func (h *ServiceHandler) form(
	c *gin.Context,
	status int,
	existing *models.Service,
	in ucService.Input,
	errs map[string]string,
) {
	title := "New service"
	action := "/services"
	if existing != nil {
		title = "Edit service"
		action = fmt.Sprintf("/services/%d", existing.ID)
	}
	if errs == nil {
		errs = map[string]string{}
	}

	h.resp.HTML(c, status, "service_form", gin.H{
		"Title":   title,
		"Action":  action,
		"Service": existing,
		"Form":    in,
		"Errors":  errs,
	})
}
