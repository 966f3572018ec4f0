package ports

import (
	"context"
	"time"
)

// PublicTestimonialView is the de-privileged testimonial shape exposed to
// unauthenticated consumers. No token or publication internals are included.
type PublicTestimonialView struct {
	ID            string
	ClientName    string
	ClientRole    string
	ClientCompany string
	ClientAvatar  string
	Rating        int
	Title         string
	Content       string
	ProjectName   string
	IsFeatured    bool
	CreatedAt     time.Time
}

// PublicProjectView is a non-archived project with its published testimonials
// embedded.
type PublicProjectView struct {
	ID           string
	Name         string
	Description  string
	ProjectURL   string
	ProjectImage string
	Tags         []string
	Testimonials []PublicTestimonialView
}

// PublicStats are the aggregate figures shown on the public site. The mean
// rating defaults to 5.0 when no published testimonial exists.
type PublicStats struct {
	TotalProjects      int64
	TotalTestimonials  int64
	AverageRating      float64
	RatingDistribution map[string]int64
	SatisfactionRate   float64
}

// PublicService serves the unauthenticated read API. Only published
// testimonials and non-archived projects are ever returned.
type PublicService interface {
	Testimonials(ctx context.Context, featuredOnly bool, limit int64) ([]PublicTestimonialView, error)
	Projects(ctx context.Context) ([]PublicProjectView, error)
	Stats(ctx context.Context) (*PublicStats, error)
}
