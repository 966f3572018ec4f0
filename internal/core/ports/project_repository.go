package ports

import (
	"context"
	"time"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Insert(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns projects ordered by creation time descending. When
	// includeArchived is false, archived projects are excluded (public view).
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	// Update applies only the non-nil fields of upd and bumps updated_at.
	Update(ctx context.Context, id string, upd domain.ProjectUpdate, now time.Time) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, includeArchived bool) (int64, error)
}
