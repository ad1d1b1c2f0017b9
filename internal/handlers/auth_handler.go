package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	userDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/user"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/middleware"
	"github.com/BruksfildServices01/clinic-tracker/internal/session"
	ucAuth "github.com/BruksfildServices01/clinic-tracker/internal/usecase/auth"
)

type AuthHandler struct {
	authenticate *ucAuth.Authenticate
	register     *ucAuth.Register
	sessions     *session.Manager
	resp         *Responder
	log          *zap.Logger
	secure       bool
}

func NewAuthHandler(
	authenticate *ucAuth.Authenticate,
	register *ucAuth.Register,
	sessions *session.Manager,
	resp *Responder,
	log *zap.Logger,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		authenticate: authenticate,
		register:     register,
		sessions:     sessions,
		resp:         resp,
		log:          log,
		secure:       secureCookie,
	}
}

// ======================================================
// LOGIN
// ======================================================

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.ActorFrom(c) != nil {
		h.resp.Redirect(c, "/")
		return
	}
	h.resp.HTML(c, http.StatusOK, "login", gin.H{
		"Title": "Sign in",
		"Next":  safeNext(c.Query("next")),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in ucAuth.LoginInput
	_ = c.ShouldBind(&in)
	next := safeNext(c.PostForm("next"))

	user, err := h.authenticate.Execute(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, httperr.ErrInvalidCredentials):
			h.resp.HTML(c, http.StatusUnauthorized, "login", gin.H{
				"Title": "Sign in",
				"Next":  next,
				"Email": in.Email,
				"Flash": &Flash{Level: FlashDanger, Message: "Invalid credentials."},
			})
		case errors.Is(err, httperr.ErrSystemNotReady):
			h.resp.HTML(c, http.StatusServiceUnavailable, "login", gin.H{
				"Title": "Sign in",
				"Next":  next,
				"Email": in.Email,
				"Flash": &Flash{Level: FlashWarning, Message: systemNotReadyMessage},
			})
		default:
			h.resp.Fail(c, err, middleware.LoginPath)
		}
		return
	}

	token, _, err := h.sessions.Issue(user.ID)
	if err != nil {
		h.resp.Fail(c, err, middleware.LoginPath)
		return
	}
	middleware.SetSessionCookie(c, token, h.sessions.TTL(), h.secure)

	if next == "" {
		next = "/"
	}
	h.resp.RedirectWithFlash(c, next, FlashSuccess, "Signed in successfully.")
}

// ======================================================
// REGISTER
// ======================================================

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.ActorFrom(c) != nil {
		h.resp.Redirect(c, "/")
		return
	}
	h.resp.HTML(c, http.StatusOK, "register", gin.H{
		"Title":  "Register",
		"Form":   ucAuth.RegisterInput{},
		"Errors": map[string]string{},
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in ucAuth.RegisterInput
	_ = c.ShouldBind(&in)

	_, err := h.register.Execute(c.Request.Context(), in)
	if err != nil {
		form := ucAuth.RegisterInput{FullName: in.FullName, Email: in.Email}

		var ve *httperr.ValidationError
		switch {
		case errors.As(err, &ve):
			h.resp.HTML(c, http.StatusUnprocessableEntity, "register", gin.H{
				"Title":  "Register",
				"Form":   form,
				"Errors": ve.Fields,
			})
		case errors.Is(err, userDomain.ErrEmailExists):
			h.resp.HTML(c, http.StatusConflict, "register", gin.H{
				"Title":  "Register",
				"Form":   form,
				"Errors": map[string]string{},
				"Flash":  &Flash{Level: FlashWarning, Message: "Email already registered."},
			})
		default:
			h.resp.Fail(c, err, "/auth/register")
		}
		return
	}

	h.resp.RedirectWithFlash(c, middleware.LoginPath, FlashSuccess, "Account created. You can sign in now.")
}

// ======================================================
// LOGOUT
// ======================================================

func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.SessionFrom(c); claims != nil {
		if err := h.sessions.Revoke(c.Request.Context(), claims); err != nil {
			h.log.Warn("session revoke failed", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c, h.secure)
	h.resp.RedirectWithFlash(c, middleware.LoginPath, FlashInfo, "Signed out.")
}

func safeNext(next string) string {
	if middleware.IsLocalPath(next) {
		return next
	}
	return ""
}
