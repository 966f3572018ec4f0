package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/testivo/testimonial-system/internal/core/ports"
)

// PublicHandler serves the unauthenticated read API. Only published
// testimonials and non-archived projects ever leave this surface.
type PublicHandler struct {
	service ports.PublicService
}

func NewPublicHandler(service ports.PublicService) *PublicHandler {
	return &PublicHandler{service: service}
}

const (
	defaultPublicLimit   = 50
	defaultFeaturedLimit = 10
)

// Testimonials handles GET /api/public/testimonials. Optional limit query
// parameter caps the result; non-numeric values fall back to the default.
func (h *PublicHandler) Testimonials(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit <= 0 {
		limit = defaultPublicLimit
	}

	views, err := h.service.Testimonials(c.Request().Context(), false, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicTestimonialListResponse(views))
}

// Featured handles GET /api/public/testimonials/featured.
func (h *PublicHandler) Featured(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	views, err := h.service.Testimonials(c.Request().Context(), true, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicTestimonialListResponse(views))
}

// Projects handles GET /api/public/projects.
func (h *PublicHandler) Projects(c echo.Context) error {
	views, err := h.service.Projects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPublicProjectListResponse(views))
}

// Stats handles GET /api/public/stats.
func (h *PublicHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicStatsResponse{
		TotalProjects:      stats.TotalProjects,
		TotalTestimonials:  stats.TotalTestimonials,
		AverageRating:      stats.AverageRating,
		RatingDistribution: stats.RatingDistribution,
		SatisfactionRate:   stats.SatisfactionRate,
	})
}
