package ports

import (
	"context"
	"time"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

// UpdateTestimonialInput carries a partial testimonial update; nil fields are
// ignored.
type UpdateTestimonialInput struct {
	ClientName    *string
	ClientRole    *string
	ClientCompany *string
	ClientAvatar  *string
	Rating        *int
	Title         *string
	Content       *string
	IsFeatured    *bool
	IsPublished   *bool
}

// TestimonialView is the admin-facing testimonial representation with the
// denormalized project name.
type TestimonialView struct {
	ID            string
	ProjectID     string
	ProjectName   string
	ClientName    string
	ClientRole    string
	ClientCompany string
	ClientAvatar  string
	Rating        int
	Title         string
	Content       string
	IsFeatured    bool
	IsPublished   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TestimonialService defines admin-side curation operations.
type TestimonialService interface {
	List(ctx context.Context, projectID string, featuredOnly bool) ([]TestimonialView, error)
	Get(ctx context.Context, id string) (*TestimonialView, error)
	Update(ctx context.Context, id string, in UpdateTestimonialInput) (*TestimonialView, error)
	Delete(ctx context.Context, id string) error
	// ToggleFeatured flips is_featured and returns the new value.
	ToggleFeatured(ctx context.Context, id string) (bool, error)
	// TogglePublished flips is_published and returns the new value.
	TogglePublished(ctx context.Context, id string) (bool, error)
}

// NewTestimonialView maps a domain testimonial and its project name to a view.
func NewTestimonialView(t *domain.Testimonial, projectName string) TestimonialView {
	return TestimonialView{
		ID:            t.ID,
		ProjectID:     t.ProjectID,
		ProjectName:   projectName,
		ClientName:    t.ClientName,
		ClientRole:    t.ClientRole,
		ClientCompany: t.ClientCompany,
		ClientAvatar:  t.ClientAvatar,
		Rating:        t.Rating,
		Title:         t.Title,
		Content:       t.Content,
		IsFeatured:    t.IsFeatured,
		IsPublished:   t.IsPublished,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
