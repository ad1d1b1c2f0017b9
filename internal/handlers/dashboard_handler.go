package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-tracker/internal/middleware"
	ucDashboard "github.com/BruksfildServices01/clinic-tracker/internal/usecase/dashboard"
)

type DashboardHandler struct {
	summary *ucDashboard.Summary
	resp    *Responder
}

func NewDashboardHandler(summary *ucDashboard.Summary, resp *Responder) *DashboardHandler {
	return &DashboardHandler{summary: summary, resp: resp}
}

func (h *DashboardHandler) Index(c *gin.Context) {
	s, err := h.summary.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		h.resp.Fail(c, err, "/auth/login")
		return
	}

	h.resp.HTML(c, http.StatusOK, "dashboard", gin.H{
		"Title":   "Dashboard",
		"Summary": s,
	})
}
