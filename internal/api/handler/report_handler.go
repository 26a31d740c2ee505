package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// List returns the medical reports visible to the caller.
//
// @Summary      List medical reports
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.MedicalReport
// @Router       /api/medical-reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// Create records report metadata. Only doctors may author reports.
//
// @Summary      Create a medical report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body      createReportRequest  true  "Report"
// @Success      201   {object}  domain.MedicalReport
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/medical-reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var date time.Time
	if req.Date != "" {
		if date, err = parseDate("date", req.Date); err != nil {
			return err
		}
	}

	created, err := h.service.Create(c.Request().Context(), actor, ports.CreateReportInput{
		PatientID: req.Patient,
		Title:     req.Title,
		Type:      req.Type,
		FileURL:   req.FileURL,
		Summary:   req.Summary,
		Date:      date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}
