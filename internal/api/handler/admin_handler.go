package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/api/metrics"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

// AdminHandler exposes the doctor approval queue.
type AdminHandler struct {
	approver ports.DoctorApprover
	log      zerolog.Logger
}

func NewAdminHandler(approver ports.DoctorApprover, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{approver: approver, log: log}
}

// PendingDoctors lists doctor accounts awaiting approval.
//
// @Summary      List doctors pending approval
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Profile
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/doctors/pending [get]
func (h *AdminHandler) PendingDoctors(c echo.Context) error {
	list, err := h.approver.ListPendingDoctors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// ApproveDoctor lets a doctor account log in.
//
// @Summary      Approve a doctor
// @Tags         admin
// @Produce      json
// @Param        id  path      string  true  "User ID"
// @Success      200  {object}  domain.Profile
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/admin/doctors/{id}/approve [post]
func (h *AdminHandler) ApproveDoctor(c echo.Context) error {
	profile, err := h.approver.ApproveDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.DoctorApprovalsTotal.Inc()
	if admin, err := ctxIdentity(c); err == nil {
		h.log.Info().Str("admin_id", admin.ID).Str("user_id", profile.ID).Msg("doctor approved via api")
	}
	return c.JSON(http.StatusOK, profile)
}
