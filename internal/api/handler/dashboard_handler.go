package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/testivo/testimonial-system/internal/core/ports"
)

// DashboardHandler serves the admin dashboard aggregate.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardResponse struct {
	TotalProjects      int64                 `json:"total_projects"`
	TotalTestimonials  int64                 `json:"total_testimonials"`
	TotalTokens        int64                 `json:"total_tokens"`
	ActiveTokens       int64                 `json:"active_tokens"`
	AverageRating      float64               `json:"average_rating"`
	FeaturedCount      int64                 `json:"featured_count"`
	RecentTestimonials []testimonialResponse `json:"recent_testimonials"`
}

// Stats handles GET /api/admin/dashboard.
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TotalProjects:      stats.TotalProjects,
		TotalTestimonials:  stats.TotalTestimonials,
		TotalTokens:        stats.TotalTokens,
		ActiveTokens:       stats.ActiveTokens,
		AverageRating:      stats.AverageRating,
		FeaturedCount:      stats.FeaturedCount,
		RecentTestimonials: toTestimonialListResponse(stats.RecentTestimonials),
	})
}
