package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

// TestimonialService implements the admin-side curation operations. Every
// read denormalizes the project name by a secondary lookup; testimonials
// deliberately outlive their project reference.
type TestimonialService struct {
	testimonials ports.TestimonialRepository
	projects     ports.ProjectRepository
	log          zerolog.Logger
}

func NewTestimonialService(
	testimonials ports.TestimonialRepository,
	projects ports.ProjectRepository,
	log zerolog.Logger,
) *TestimonialService {
	return &TestimonialService{testimonials: testimonials, projects: projects, log: log}
}

func (s *TestimonialService) List(ctx context.Context, projectID string, featuredOnly bool) ([]ports.TestimonialView, error) {
	items, err := s.testimonials.List(ctx, ports.ListTestimonialsFilter{
		ProjectID:    projectID,
		FeaturedOnly: featuredOnly,
	})
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	views := make([]ports.TestimonialView, 0, len(items))
	for _, t := range items {
		name, ok := names[t.ProjectID]
		if !ok {
			name = s.projectName(ctx, t.ProjectID)
			names[t.ProjectID] = name
		}
		views = append(views, ports.NewTestimonialView(t, name))
	}
	return views, nil
}

func (s *TestimonialService) Get(ctx context.Context, id string) (*ports.TestimonialView, error) {
	t, err := s.testimonials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := ports.NewTestimonialView(t, s.projectName(ctx, t.ProjectID))
	return &view, nil
}

// Update applies only the provided fields and returns the fresh view.
func (s *TestimonialService) Update(ctx context.Context, id string, in ports.UpdateTestimonialInput) (*ports.TestimonialView, error) {
	upd := domain.TestimonialUpdate{
		ClientName:    in.ClientName,
		ClientRole:    in.ClientRole,
		ClientCompany: in.ClientCompany,
		ClientAvatar:  in.ClientAvatar,
		Rating:        in.Rating,
		Title:         in.Title,
		Content:       in.Content,
		IsFeatured:    in.IsFeatured,
		IsPublished:   in.IsPublished,
	}

	if err := s.testimonials.Update(ctx, id, upd, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	if err := s.testimonials.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("testimonial_id", id).Msg("testimonial deleted")
	return nil
}

func (s *TestimonialService) ToggleFeatured(ctx context.Context, id string) (bool, error) {
	t, err := s.testimonials.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	next := !t.IsFeatured
	if err := s.testimonials.SetFeatured(ctx, id, next, time.Now().UTC()); err != nil {
		return false, err
	}
	return next, nil
}

func (s *TestimonialService) TogglePublished(ctx context.Context, id string) (bool, error) {
	t, err := s.testimonials.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	next := !t.IsPublished
	if err := s.testimonials.SetPublished(ctx, id, next, time.Now().UTC()); err != nil {
		return false, err
	}
	return next, nil
}

func (s *TestimonialService) projectName(ctx context.Context, projectID string) string {
	project, err := s.projects.FindByID(ctx, projectID)
	switch {
	case err == nil:
		return project.Name
	case errors.Is(err, domain.ErrProjectNotFound):
		return "Deleted Project"
	default:
		return "Unknown Project"
	}
}
