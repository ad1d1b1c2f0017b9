package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/middleware"
)

const flashCookie = "clinic_flash"

type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashInfo    FlashLevel = "info"
	FlashWarning FlashLevel = "warning"
	FlashDanger  FlashLevel = "danger"
)

type Flash struct {
	Level   FlashLevel `json:"l"`
	Message string     `json:"m"`
}

// Responder renders pages through the "base" template and turns use-case
// errors into the matching page, redirect or flash.
type Responder struct {
	log    *zap.Logger
	secure bool
}

func NewResponder(log *zap.Logger, secureCookie bool) *Responder {
	return &Responder{log: log, secure: secureCookie}
}

// HTML renders page with data. The signed-in actor and any pending flash are
// added unless data already sets them.
func (r *Responder) HTML(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Page"] = page
	if _, ok := data["Actor"]; !ok {
		data["Actor"] = middleware.ActorFrom(c)
	}
	if _, ok := data["Flash"]; !ok {
		if f := r.popFlash(c); f != nil {
			data["Flash"] = f
		}
	}
	c.HTML(status, "base", data)
}

// Redirect answers 303 so the browser follows with a GET.
func (r *Responder) Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// RedirectWithFlash sets a one-shot message shown on the next page.
func (r *Responder) RedirectWithFlash(c *gin.Context, location string, level FlashLevel, message string) {
	r.SetFlash(c, level, message)
	r.Redirect(c, location)
}

func (r *Responder) SetFlash(c *gin.Context, level FlashLevel, message string) {
	raw, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", r.secure, true)
}

func (r *Responder) popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", r.secure, true)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(decoded, &f); err != nil || f.Message == "" {
		return nil
	}
	switch f.Level {
	case FlashSuccess, FlashInfo, FlashWarning, FlashDanger:
	default:
		f.Level = FlashInfo
	}
	return &f
}

// Fail answers for an error a use case returned. back is where conflicts
// redirect to. Validation errors are handled by the caller, which re-renders
// its form.
func (r *Responder) Fail(c *gin.Context, err error, back string) {
	kind, ok := httperr.KindOf(err)
	if !ok {
		var ve *httperr.ValidationError
		if errors.As(err, &ve) {
			r.RedirectWithFlash(c, back, FlashWarning, "Please correct the highlighted fields.")
			return
		}
		r.internal(c, err)
		return
	}

	switch kind {
	case httperr.KindUnauthenticated:
		next := "/"
		if c.Request.Method == http.MethodGet {
			next = c.Request.URL.RequestURI()
		}
		r.Redirect(c, middleware.LoginURL(next))
	case httperr.KindForbidden:
		r.HTML(c, http.StatusForbidden, "forbidden", gin.H{"Title": "Not allowed"})
	case httperr.KindNotFound:
		r.NotFound(c)
	case httperr.KindConflict, httperr.KindAlreadyExists:
		r.RedirectWithFlash(c, back, FlashWarning, conflictMessage(err))
	case httperr.KindUnavailable:
		r.RedirectWithFlash(c, middleware.LoginPath, FlashWarning, systemNotReadyMessage)
	default:
		r.RedirectWithFlash(c, back, FlashWarning, "That action is not allowed in the current state.")
	}
}

func (r *Responder) NotFound(c *gin.Context) {
	r.HTML(c, http.StatusNotFound, "not_found", gin.H{"Title": "Not found"})
}

func (r *Responder) internal(c *gin.Context, err error) {
	r.log.Error("request failed",
		zap.Error(err),
		zap.String("request_id", c.GetString(middleware.ContextRequestID)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	_ = c.Error(err)
	r.HTML(c, http.StatusInternalServerError, "error", gin.H{"Title": "Error"})
}

const systemNotReadyMessage = "The system is not ready yet. Run the database migrations and create an admin account first."

var conflictMessages = map[string]string{
	"service_in_use": "This service still has appointments and cannot be deleted.",
	"already_exists": "Email already registered.",
}

func conflictMessage(err error) string {
	for code, msg := range conflictMessages {
		if httperr.IsBusiness(err, code) {
			return msg
		}
	}
	return "That change conflicts with existing records."
}
