package ports

import (
	"context"
	"time"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

// ListTestimonialsFilter carries the query parameters for listing testimonials.
type ListTestimonialsFilter struct {
	ProjectID     string // empty = all projects
	FeaturedOnly  bool
	PublishedOnly bool
	Limit         int64 // 0 = no limit
}

// TestimonialRepository defines persistence operations for testimonials.
type TestimonialRepository interface {
	Insert(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error)
	FindByID(ctx context.Context, id string) (*domain.Testimonial, error)
	// List returns testimonials matching filter, newest first.
	List(ctx context.Context, filter ListTestimonialsFilter) ([]*domain.Testimonial, error)
	// Update applies only the non-nil fields of upd and bumps updated_at.
	Update(ctx context.Context, id string, upd domain.TestimonialUpdate, now time.Time) error
	SetFeatured(ctx context.Context, id string, featured bool, now time.Time) error
	SetPublished(ctx context.Context, id string, published bool, now time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
	Count(ctx context.Context, filter ListTestimonialsFilter) (int64, error)
	// AverageRating returns the mean rating and whether any testimonial
	// matched; callers choose their own default for the empty case.
	AverageRating(ctx context.Context, publishedOnly bool) (float64, bool, error)
	// RatingHistogram buckets published testimonials by integer rating.
	// Only ratings with at least one testimonial appear in the result.
	RatingHistogram(ctx context.Context) (map[int]int64, error)
}
