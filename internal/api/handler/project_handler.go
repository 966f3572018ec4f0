package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/testivo/testimonial-system/internal/api/metrics"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

// ProjectHandler handles the admin-side project CRUD.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /api/admin/projects.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	_, adminID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientCompany: req.ClientCompany,
		ProjectURL:    req.ProjectURL,
		ProjectImage:  req.ProjectImage,
		Tags:          req.Tags,
		Status:        req.Status,
		AdminID:       adminID,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toProjectResponse(view))
}

// List handles GET /api/admin/projects.
func (h *ProjectHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectListResponse(views))
}

// Get handles GET /api/admin/projects/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(view))
}

// Update handles PUT /api/admin/projects/:id.
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientCompany: req.ClientCompany,
		ProjectURL:    req.ProjectURL,
		ProjectImage:  req.ProjectImage,
		Tags:          req.Tags,
		Status:        req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(view))
}

// Delete handles DELETE /api/admin/projects/:id. The delete cascades to the
// project's invite tokens and testimonials.
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted"})
}
