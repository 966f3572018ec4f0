package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

// ProjectService implements project CRUD. Deleting a project cascades to its
// tokens and testimonials.
type ProjectService struct {
	projects     ports.ProjectRepository
	tokens       ports.TokenRepository
	testimonials ports.TestimonialRepository
	log          zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	tokens ports.TokenRepository,
	testimonials ports.TestimonialRepository,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{projects: projects, tokens: tokens, testimonials: testimonials, log: log}
}

func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*ports.ProjectView, error) {
	status := domain.ProjectStatus(in.Status)
	if in.Status == "" {
		status = domain.ProjectActive
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:          in.Name,
		Description:   in.Description,
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientCompany: in.ClientCompany,
		ProjectURL:    in.ProjectURL,
		ProjectImage:  in.ProjectImage,
		Tags:          tags,
		Status:        status,
		AdminID:       in.AdminID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.projects.Insert(ctx, project)
	if err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Msg("failed to create project")
		return nil, err
	}

	s.log.Info().Str("project_id", created.ID).Str("name", created.Name).Msg("project created")

	view := ports.NewProjectView(created, 0)
	return &view, nil
}

func (s *ProjectService) List(ctx context.Context) ([]ports.ProjectView, error) {
	projects, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ProjectView, 0, len(projects))
	for _, p := range projects {
		count, err := s.testimonials.Count(ctx, ports.ListTestimonialsFilter{ProjectID: p.ID})
		if err != nil {
			return nil, err
		}
		views = append(views, ports.NewProjectView(p, count))
	}
	return views, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*ports.ProjectView, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.testimonials.Count(ctx, ports.ListTestimonialsFilter{ProjectID: project.ID})
	if err != nil {
		return nil, err
	}

	view := ports.NewProjectView(project, count)
	return &view, nil
}

// Update applies only the provided fields and returns the fresh view.
func (s *ProjectService) Update(ctx context.Context, id string, in ports.UpdateProjectInput) (*ports.ProjectView, error) {
	upd := domain.ProjectUpdate{
		Name:          in.Name,
		Description:   in.Description,
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientCompany: in.ClientCompany,
		ProjectURL:    in.ProjectURL,
		ProjectImage:  in.ProjectImage,
		Tags:          in.Tags,
	}
	if in.Status != nil {
		status := domain.ProjectStatus(*in.Status)
		upd.Status = &status
	}

	if err := s.projects.Update(ctx, id, upd, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the project and then its dependent tokens and testimonials,
// in that order. A missing project aborts before any deletion. Dependent
// failures after the root delete are logged, not surfaced.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	tokenCount, err := s.tokens.DeleteByProject(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", id).Msg("cascade: failed to delete project tokens")
	}

	testimonialCount, err := s.testimonials.DeleteByProject(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", id).Msg("cascade: failed to delete project testimonials")
	}

	s.log.Info().
		Str("project_id", id).
		Int64("tokens_deleted", tokenCount).
		Int64("testimonials_deleted", testimonialCount).
		Msg("project deleted")
	return nil
}
