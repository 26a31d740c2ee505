package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/priyanshupatel84/ai-healthcare/docs"
	"github.com/priyanshupatel84/ai-healthcare/internal/api/handler"
	"github.com/priyanshupatel84/ai-healthcare/internal/api/middleware"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
	"github.com/priyanshupatel84/ai-healthcare/internal/session"
)

// Dependencies are the wired services the router exposes.
type Dependencies struct {
	Auth         ports.AuthService
	Resets       ports.PasswordResetService
	Appointments ports.AppointmentService
	Resources    ports.ResourceService
	Reports      ports.ReportService
	Approver     ports.DoctorApprover
	Resolver     *session.Resolver
	Health       map[string]handler.Pinger
	Cookie       handler.CookieOptions
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Guard(middleware.GuardConfig{
		Skipper:  opsSkipper,
		Resolver: deps.Resolver,
		Log:      deps.Log,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Resets, deps.Cookie, deps.Log)
	adminHandler := handler.NewAdminHandler(deps.Approver, deps.Log)
	appointmentHandler := handler.NewAppointmentHandler(deps.Appointments)
	resourceHandler := handler.NewResourceHandler(deps.Resources)
	reportHandler := handler.NewReportHandler(deps.Reports)
	pageHandler := handler.NewPageHandler(deps.Auth, deps.Appointments, deps.Reports, deps.Resources, deps.Approver)
	healthHandler := handler.NewHealthHandler(deps.Health)

	// --- Pages ---
	e.GET("/", pageHandler.Landing())
	e.GET(middleware.LoginPath, pageHandler.Login())
	e.GET("/register", pageHandler.Register())
	e.GET("/forgot-password", pageHandler.ForgotPassword())
	e.GET(domain.RolePatient.Dashboard(), pageHandler.PatientDashboard)
	e.GET(domain.RoleDoctor.Dashboard(), pageHandler.DoctorDashboard)
	e.GET(domain.RoleAdmin.Dashboard(), pageHandler.AdminDashboard)
	e.GET("/profile", pageHandler.Profile)

	// --- Auth routes (public) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Records (authenticated; per-role scoping lives in the services) ---
	appointments := e.Group("/api/appointments")
	appointments.GET("", appointmentHandler.List)
	appointments.POST("", appointmentHandler.Create, middleware.RBAC(domain.RolePatient, domain.RoleAdmin))
	appointments.PUT("/:id", appointmentHandler.Update)

	adminOnly := middleware.RBAC(domain.RoleAdmin)
	resources := e.Group("/api/hospital-resources")
	resources.GET("", resourceHandler.List)
	resources.POST("", resourceHandler.Create, adminOnly)
	resources.PUT("/:id", resourceHandler.Update, adminOnly)
	resources.DELETE("/:id", resourceHandler.Delete, adminOnly)

	reports := e.Group("/api/medical-reports")
	reports.GET("", reportHandler.List)
	reports.POST("", reportHandler.Create, middleware.RBAC(domain.RoleDoctor))

	admin := e.Group("/api/admin", adminOnly)
	admin.GET("/doctors/pending", adminHandler.PendingDoctors)
	admin.POST("/doctors/:id/approve", adminHandler.ApproveDoctor)

	// --- Ops (guard skipped) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// opsSkipper exempts operational endpoints from the guard.
func opsSkipper(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/health" || strings.HasPrefix(p, "/health/") ||
		p == "/metrics" || strings.HasPrefix(p, "/swagger/")
}

// requestLogger bridges echo's request logger to zerolog, one line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
