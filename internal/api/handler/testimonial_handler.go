package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/testivo/testimonial-system/internal/core/ports"
)

// TestimonialHandler handles the admin-side testimonial curation.
type TestimonialHandler struct {
	service ports.TestimonialService
}

func NewTestimonialHandler(service ports.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{service: service}
}

// List handles GET /api/testimonials. Optional query parameters:
// project_id scopes the listing, featured_only=true keeps featured entries only.
func (h *TestimonialHandler) List(c echo.Context) error {
	projectID := c.QueryParam("project_id")
	featuredOnly := c.QueryParam("featured_only") == "true"

	views, err := h.service.List(c.Request().Context(), projectID, featuredOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTestimonialListResponse(views))
}

// Get handles GET /api/testimonials/:id.
func (h *TestimonialHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTestimonialResponse(view))
}

// Update handles PUT /api/testimonials/:id.
func (h *TestimonialHandler) Update(c echo.Context) error {
	var req updateTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateTestimonialInput{
		ClientName:    req.ClientName,
		ClientRole:    req.ClientRole,
		ClientCompany: req.ClientCompany,
		ClientAvatar:  req.ClientAvatar,
		Rating:        req.Rating,
		Title:         req.Title,
		Content:       req.Content,
		IsFeatured:    req.IsFeatured,
		IsPublished:   req.IsPublished,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTestimonialResponse(view))
}

// Delete handles DELETE /api/testimonials/:id.
func (h *TestimonialHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "testimonial deleted"})
}

// ToggleFeatured handles POST /api/testimonials/:id/toggle-featured.
func (h *TestimonialHandler) ToggleFeatured(c echo.Context) error {
	value, err := h.service.ToggleFeatured(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toggleResponse{ID: c.Param("id"), Field: "is_featured", Value: value})
}

// TogglePublished handles POST /api/testimonials/:id/toggle-published.
func (h *TestimonialHandler) TogglePublished(c echo.Context) error {
	value, err := h.service.TogglePublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toggleResponse{ID: c.Param("id"), Field: "is_published", Value: value})
}
