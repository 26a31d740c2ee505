package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

// ResourceHandler serves hospital capacity records. Writes are admin-only;
// the router applies RBAC.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// List returns resources, optionally filtered by type.
//
// @Summary      List hospital resources
// @Tags         resources
// @Produce      json
// @Param        type  query     string  false  "bed, equipment, staff, room or other"
// @Success      200   {array}   domain.HospitalResource
// @Failure      422   {object}  errorResponse
// @Router       /api/hospital-resources [get]
func (h *ResourceHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// Create adds a resource.
//
// @Summary      Create a hospital resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        body  body      resourceRequest  true  "Resource"
// @Success      201   {object}  domain.HospitalResource
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/hospital-resources [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	var req resourceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update replaces a resource's writable fields.
//
// @Summary      Update a hospital resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Resource ID"
// @Param        body  body      resourceRequest  true  "Resource"
// @Success      200   {object}  domain.HospitalResource
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/hospital-resources/{id} [put]
func (h *ResourceHandler) Update(c echo.Context) error {
	var req resourceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a resource.
//
// @Summary      Delete a hospital resource
// @Tags         resources
// @Param        id  path  string  true  "Resource ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/hospital-resources/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r resourceRequest) input() ports.ResourceInput {
	return ports.ResourceInput{
		Name:      r.Name,
		Type:      r.Type,
		Total:     r.Total,
		Available: r.Available,
		Location:  r.Location,
		Details:   r.Details,
	}
}
