package ports

import "context"

// DashboardStats are the admin dashboard aggregates, computed on demand over
// the full collections. The mean rating defaults to 0.0 when no testimonial
// exists (the public stats default differs deliberately).
type DashboardStats struct {
	TotalProjects      int64
	TotalTestimonials  int64
	TotalTokens        int64
	ActiveTokens       int64
	AverageRating      float64
	FeaturedCount      int64
	RecentTestimonials []TestimonialView
}

// DashboardService computes the admin dashboard aggregate.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}
