package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	userDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/user"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/session"
)

const (
	ContextActor   = "actor"
	ContextSession = "session"

	LoginPath = "/auth/login"
)

// SessionMiddleware resolves the actor from the session cookie. The user and
// its roles are read from the store on every request, so a deactivated account
// or a revoked role takes effect immediately. Requests without a valid session
// continue anonymously.
func SessionMiddleware(
	sessions *session.Manager,
	users userDomain.Repository,
	secureCookie bool,
	log *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		// Storage failures keep the cookie; only a rejected token clears it.
		claims, err := sessions.Parse(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, session.ErrExpired) ||
				errors.Is(err, session.ErrInvalid) ||
				errors.Is(err, session.ErrRevoked) {
				ClearSessionCookie(c, secureCookie)
			} else {
				log.Warn("session check failed", zap.Error(err))
			}
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, userDomain.ErrNotFound) {
				ClearSessionCookie(c, secureCookie)
			} else {
				log.Warn("session user lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}
		if !user.Active {
			ClearSessionCookie(c, secureCookie)
			c.Next()
			return
		}

		c.Set(ContextActor, access.ActorFromUser(user))
		c.Set(ContextSession, claims)
		c.Next()
	}
}

// RequireActor stops anonymous requests. Pages redirect to the sign-in form
// with the requested path in next; /api answers 401.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ActorFrom(c) != nil {
			c.Next()
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			httperr.Unauthorized(c, "unauthenticated", "Sign in required.")
			c.Abort()
			return
		}

		c.Redirect(http.StatusSeeOther, LoginURL(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// ActorFrom returns nil for anonymous requests.
func ActorFrom(c *gin.Context) *access.Actor {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil
	}
	actor, _ := v.(*access.Actor)
	return actor
}

func SessionFrom(c *gin.Context) *session.Claims {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	claims, _ := v.(*session.Claims)
	return claims
}

func LoginURL(next string) string {
	if !IsLocalPath(next) || next == "/" {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// IsLocalPath accepts only same-site absolute paths, so next cannot send the
// browser to another host.
func IsLocalPath(p string) bool {
	if p == "" || !strings.HasPrefix(p, "/") {
		return false
	}
	if strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return false
	}
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// ------------------------------------------------------
// Cookie
// ------------------------------------------------------

func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", secure, true)
}
