package ports

import (
	"context"
	"time"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

// CreateProjectInput carries the data needed to create a project.
type CreateProjectInput struct {
	Name          string
	Description   string
	ClientName    string
	ClientEmail   string
	ClientCompany string
	ProjectURL    string
	ProjectImage  string
	Tags          []string
	Status        string // defaults to "active" when empty
	AdminID       string
}

// UpdateProjectInput carries a partial project update; nil fields are ignored.
type UpdateProjectInput struct {
	Name          *string
	Description   *string
	ClientName    *string
	ClientEmail   *string
	ClientCompany *string
	ProjectURL    *string
	ProjectImage  *string
	Tags          *[]string
	Status        *string
}

// ProjectView is the admin-facing project representation, including the
// denormalized testimonial count.
type ProjectView struct {
	ID               string
	Name             string
	Description      string
	ClientName       string
	ClientEmail      string
	ClientCompany    string
	ProjectURL       string
	ProjectImage     string
	Tags             []string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	TestimonialCount int64
	HasTestimonial   bool
}

// ProjectService defines use-case operations over projects. Delete cascades
// to the project's tokens and testimonials.
type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*ProjectView, error)
	List(ctx context.Context) ([]ProjectView, error)
	Get(ctx context.Context, id string) (*ProjectView, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) (*ProjectView, error)
	Delete(ctx context.Context, id string) error
}

// NewProjectView maps a domain project and its testimonial count to a view.
func NewProjectView(p *domain.Project, testimonialCount int64) ProjectView {
	return ProjectView{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		ClientName:       p.ClientName,
		ClientEmail:      p.ClientEmail,
		ClientCompany:    p.ClientCompany,
		ProjectURL:       p.ProjectURL,
		ProjectImage:     p.ProjectImage,
		Tags:             p.Tags,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		TestimonialCount: testimonialCount,
		HasTestimonial:   testimonialCount > 0,
	}
}
