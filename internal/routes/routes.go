package routes

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/config"
	appointmentDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/appointment"
	dashboardDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/dashboard"
	patientDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	serviceDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/service"
	userDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/user"
	"github.com/BruksfildServices01/clinic-tracker/internal/handlers"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
	"github.com/BruksfildServices01/clinic-tracker/internal/metrics"
	"github.com/BruksfildServices01/clinic-tracker/internal/middleware"
	"github.com/BruksfildServices01/clinic-tracker/internal/session"
	ucAppointment "github.com/BruksfildServices01/clinic-tracker/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/clinic-tracker/internal/usecase/auth"
	ucDashboard "github.com/BruksfildServices01/clinic-tracker/internal/usecase/dashboard"
	ucPatient "github.com/BruksfildServices01/clinic-tracker/internal/usecase/patient"
	ucService "github.com/BruksfildServices01/clinic-tracker/internal/usecase/service"
	"github.com/BruksfildServices01/clinic-tracker/internal/web"
)

// Dependencies are the stores and collaborators the routes are built from.
// Metrics and Ping may be nil.
type Dependencies struct {
	Config   *config.Config
	Log      *zap.Logger
	Metrics  *metrics.Collector
	Sessions *session.Manager

	Users        userDomain.Repository
	Patients     patientDomain.Repository
	Services     serviceDomain.Repository
	Appointments appointmentDomain.Repository
	Dashboard    dashboardDomain.Repository

	BcryptCost int
	Ping       func(ctx context.Context) error
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	log := deps.Log

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.Metrics(deps.Metrics),
		middleware.SessionMiddleware(deps.Sessions, deps.Users, cfg.CookieSecure, log),
	)
	r.SetHTMLTemplate(web.MustParse())

	// ======================================================
	// USE CASES
	// ======================================================
	authenticateUC := ucAuth.NewAuthenticate(deps.Users, log, deps.Metrics, deps.BcryptCost)
	registerUC := ucAuth.NewRegister(deps.Users, log, deps.BcryptCost)

	listPatientsUC := ucPatient.NewListPatients(deps.Patients)
	getPatientUC := ucPatient.NewGetPatient(deps.Patients, deps.Appointments)
	createPatientUC := ucPatient.NewCreatePatient(deps.Patients, log, deps.Metrics)
	updatePatientUC := ucPatient.NewUpdatePatient(deps.Patients, log)
	deletePatientUC := ucPatient.NewDeletePatient(deps.Patients, log)

	listServicesUC := ucService.NewListServices(deps.Services)
	getServiceUC := ucService.NewGetService(deps.Services)
	createServiceUC := ucService.NewCreateService(deps.Services, log)
	updateServiceUC := ucService.NewUpdateService(deps.Services, log)
	deleteServiceUC := ucService.NewDeleteService(deps.Services, log)

	listAppointmentsUC := ucAppointment.NewListAppointments(deps.Appointments)
	getAppointmentUC := ucAppointment.NewGetAppointment(deps.Appointments, deps.Patients, deps.Services)
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		deps.Appointments,
		deps.Patients,
		deps.Services,
		log,
		deps.Metrics,
	)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		deps.Appointments,
		deps.Patients,
		deps.Services,
		log,
		deps.Metrics,
	)
	setAppointmentStatusUC := ucAppointment.NewSetAppointmentStatus(deps.Appointments, log, deps.Metrics)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(deps.Appointments, log)

	summaryUC := ucDashboard.NewSummary(deps.Dashboard)

	// ======================================================
	// HANDLERS
	// ======================================================
	resp := handlers.NewResponder(log, cfg.CookieSecure)

	authHandler := handlers.NewAuthHandler(
		authenticateUC,
		registerUC,
		deps.Sessions,
		resp,
		log,
		cfg.CookieSecure,
	)
	dashboardHandler := handlers.NewDashboardHandler(summaryUC, resp)
	patientHandler := handlers.NewPatientHandler(
		listPatientsUC,
		getPatientUC,
		createPatientUC,
		updatePatientUC,
		deletePatientUC,
		resp,
	)
	serviceHandler := handlers.NewServiceHandler(
		listServicesUC,
		getServiceUC,
		createServiceUC,
		updateServiceUC,
		deleteServiceUC,
		resp,
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		getAppointmentUC,
		createAppointmentUC,
		updateAppointmentUC,
		setAppointmentStatusUC,
		deleteAppointmentUC,
		listPatientsUC,
		listServicesUC,
		resp,
	)
	apiHandler := handlers.NewAPIHandler(summaryUC, listPatientsUC, listAppointmentsUC, log)
	healthHandler := handlers.NewHealthHandler(deps.Ping)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Check)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// ======================================================
	// AUTH
	// ======================================================
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/login", authHandler.LoginPage)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/register", authHandler.RegisterPage)
		authGroup.POST("/register", authHandler.Register)
		authGroup.GET("/logout", authHandler.Logout)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// ======================================================
	// WEB (HTML)
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.RequireActor())
	{
		secured.GET("/", dashboardHandler.Index)

		secured.GET("/patients", patientHandler.List)
		secured.GET("/patients/new", patientHandler.New)
		secured.POST("/patients", patientHandler.Create)
		secured.GET("/patients/:id", patientHandler.Show)
		secured.GET("/patients/:id/edit", patientHandler.Edit)
		secured.POST("/patients/:id", patientHandler.Update)
		secured.POST("/patients/:id/delete", patientHandler.Delete)

		secured.GET("/services", serviceHandler.List)
		secured.GET("/services/new", serviceHandler.New)
		secured.POST("/services", serviceHandler.Create)
		secured.GET("/services/:id", serviceHandler.Show)
		secured.GET("/services/:id/edit", serviceHandler.Edit)
		secured.POST("/services/:id", serviceHandler.Update)
		secured.POST("/services/:id/delete", serviceHandler.Delete)

		secured.GET("/appointments", appointmentHandler.List)
		secured.GET("/appointments/new", appointmentHandler.New)
		secured.POST("/appointments", appointmentHandler.Create)
		secured.GET("/appointments/:id", appointmentHandler.Show)
		secured.GET("/appointments/:id/edit", appointmentHandler.Edit)
		secured.POST("/appointments/:id", appointmentHandler.Update)
		secured.POST("/appointments/:id/status", appointmentHandler.SetStatus)
		secured.POST("/appointments/:id/delete", appointmentHandler.Delete)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.CORSMiddleware(cfg.CORSOrigins), middleware.RequireActor())
	{
		api.GET("/dashboard", apiHandler.Dashboard)
		api.GET("/patients", apiHandler.Patients)
		api.GET("/appointments", apiHandler.Appointments)
	}
	r.OPTIONS("/api/*path", middleware.CORSMiddleware(cfg.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			httperr.NotFound(c, "not_found", "Not found.")
			return
		}
		resp.NotFound(c)
	})
}
