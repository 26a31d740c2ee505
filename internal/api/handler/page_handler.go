package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/priyanshupatel84/ai-healthcare/internal/api/middleware"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

// PageHandler serves the page entry points as JSON descriptors. Rendering is
// left to the client.
type PageHandler struct {
	auth         ports.AuthService
	appointments ports.AppointmentService
	reports      ports.ReportService
	resources    ports.ResourceService
	approver     ports.DoctorApprover
}

func NewPageHandler(
	auth ports.AuthService,
	appointments ports.AppointmentService,
	reports ports.ReportService,
	resources ports.ResourceService,
	approver ports.DoctorApprover,
) *PageHandler {
	return &PageHandler{
		auth:         auth,
		appointments: appointments,
		reports:      reports,
		resources:    resources,
		approver:     approver,
	}
}

func (h *PageHandler) page(name, title string, actions map[string]string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := pageResponse{Page: name, Title: title, Actions: actions}
		if id, ok := middleware.IdentityFrom(c); ok {
			resp.User = &id
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func (h *PageHandler) Landing() echo.HandlerFunc {
	return h.page("landing", "Hospital Management", map[string]string{
		"login":    "/login",
		"register": "/register",
	})
}

func (h *PageHandler) Login() echo.HandlerFunc {
	return h.page("login", "Sign in", map[string]string{
		"submit":         "POST /api/auth/login",
		"forgotPassword": "/forgot-password",
	})
}

func (h *PageHandler) Register() echo.HandlerFunc {
	return h.page("register", "Create an account", map[string]string{
		"submit": "POST /api/auth/register",
	})
}

func (h *PageHandler) ForgotPassword() echo.HandlerFunc {
	return h.page("forgot-password", "Reset your password", map[string]string{
		"request": "POST /api/auth/forgot-password",
		"reset":   "POST /api/auth/reset-password",
	})
}

// PatientDashboard and DoctorDashboard share a shape; the services scope the
// lists by the caller's role.
func (h *PageHandler) PatientDashboard(c echo.Context) error { return h.careDashboard(c) }

func (h *PageHandler) DoctorDashboard(c echo.Context) error { return h.careDashboard(c) }

func (h *PageHandler) careDashboard(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	appointments, err := h.appointments.List(ctx, id)
	if err != nil {
		return err
	}
	reports, err := h.reports.List(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		User:         id,
		Appointments: nonNil(appointments),
		Reports:      nonNil(reports),
	})
}

func (h *PageHandler) AdminDashboard(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	pending, err := h.approver.ListPendingDoctors(ctx)
	if err != nil {
		return err
	}
	resources, err := h.resources.List(ctx, "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminDashboardResponse{
		User:           id,
		PendingDoctors: nonNil(pending),
		Resources:      nonNil(resources),
	})
}

// Profile returns the caller's full account view.
//
// @Summary      Current user's profile
// @Tags         pages
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Router       /profile [get]
func (h *PageHandler) Profile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	p, err := h.auth.Profile(c.Request().Context(), id.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
