package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	"github.com/BruksfildServices01/clinic-tracker/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-tracker/internal/metrics"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
	"github.com/BruksfildServices01/clinic-tracker/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIsLocalPath(t *testing.T) {
	cases := map[string]bool{
		"/patients":            true,
		"/patients?q=smith":    true,
		"":                     false,
		"patients":             false,
		"//evil.example":       false,
		"/\\evil.example":      false,
		"https://evil.example": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsLocalPath(in), in)
	}
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/auth/login", LoginURL("/"))
	assert.Equal(t, "/auth/login", LoginURL("//evil.example"))
	assert.Equal(t, "/auth/login?next=%2Fpatients%3Fq%3Dsmith", LoginURL("/patients?q=smith"))
}

type fixture struct {
	store    *memory.Store
	sessions *session.Manager
	router   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	sessions := session.NewManager("middleware-test-secret-0123456789abcdef", time.Hour, session.NewMemoryRevoker())

	r := gin.New()
	r.Use(SessionMiddleware(sessions, store.Users(), false, zap.NewNop()))

	r.GET("/open", func(c *gin.Context) {
		if actor := ActorFrom(c); actor != nil {
			c.String(http.StatusOK, actor.Email)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	private := r.Group("/")
	private.Use(RequireActor())
	private.GET("/patients", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	private.GET("/api/dashboard", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	return &fixture{store: store, sessions: sessions, router: r}
}

func (f *fixture) user(t *testing.T, email string, active bool) *models.User {
	t.Helper()
	u := &models.User{Email: email, FullName: "Test User", PasswordHash: "x", Active: active}
	require.NoError(t, f.store.Users().Create(context.Background(), u, []string{access.RoleClinician}))
	return u
}

func (f *fixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRequireActorRedirectsPages(t *testing.T) {
	f := newFixture(t)

	w := f.get("/patients?q=smith", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login?next=%2Fpatients%3Fq%3Dsmith", w.Header().Get("Location"))
}

func TestRequireActorRejectsAPI(t *testing.T) {
	f := newFixture(t)

	w := f.get("/api/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
}

func TestSessionResolvesActor(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "alice@example.nhs.uk", true)

	token, _, err := f.sessions.Issue(u.ID)
	require.NoError(t, err)

	w := f.get("/open", token)
	assert.Equal(t, "alice@example.nhs.uk", w.Body.String())

	w = f.get("/patients", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionIgnoresInactiveAndUnknownUsers(t *testing.T) {
	f := newFixture(t)
	inactive := f.user(t, "gone@example.nhs.uk", false)

	token, _, err := f.sessions.Issue(inactive.ID)
	require.NoError(t, err)
	w := f.get("/open", token)
	assert.Equal(t, "anonymous", w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), session.CookieName+"=;")

	token, _, err = f.sessions.Issue(9999)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", f.get("/open", token).Body.String())

	assert.Equal(t, "anonymous", f.get("/open", "garbage").Body.String())
}

func TestRevokedSessionIsAnonymous(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "bob@example.nhs.uk", true)

	token, claims, err := f.sessions.Issue(u.ID)
	require.NoError(t, err)
	require.NoError(t, f.sessions.Revoke(context.Background(), claims))

	w := f.get("/patients", token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

type unreachableRevoker struct{}

func (unreachableRevoker) Revoke(context.Context, string, time.Duration) error {
	return errors.New("dial tcp: connection refused")
}

func (unreachableRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("dial tcp: connection refused")
}

func TestRevocationOutageKeepsCookie(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "carol@example.nhs.uk", true)

	sessions := session.NewManager("middleware-test-secret-0123456789abcdef", time.Hour, unreachableRevoker{})
	token, _, err := sessions.Issue(u.ID)
	require.NoError(t, err)

	r := gin.New()
	r.Use(SessionMiddleware(sessions, f.store.Users(), false, zap.NewNop()))
	r.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://clinic.example/"}))
	r.GET("/api/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Origin", "https://clinic.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://clinic.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Origin", "https://other.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "0b8a4c5e-4c3f-4d2b-9d0f-3c1b2a4f5e6d")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "0b8a4c5e-4c3f-4d2b-9d0f-3c1b2a4f5e6d", w.Header().Get(HeaderRequestID))
}

func TestMetricsLabelsByRoute(t *testing.T) {
	m := metrics.NewCollector("test")
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/patients/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/patients/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/patients/:id", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
}
