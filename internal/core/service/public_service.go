package service

import (
	"context"
	"math"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

// PublicService serves the unauthenticated read API: published testimonials,
// non-archived projects with embedded testimonials, and aggregate stats.
type PublicService struct {
	projects     ports.ProjectRepository
	testimonials ports.TestimonialRepository
	log          zerolog.Logger
}

func NewPublicService(
	projects ports.ProjectRepository,
	testimonials ports.TestimonialRepository,
	log zerolog.Logger,
) *PublicService {
	return &PublicService{projects: projects, testimonials: testimonials, log: log}
}

func (s *PublicService) Testimonials(ctx context.Context, featuredOnly bool, limit int64) ([]ports.PublicTestimonialView, error) {
	items, err := s.testimonials.List(ctx, ports.ListTestimonialsFilter{
		FeaturedOnly:  featuredOnly,
		PublishedOnly: true,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	views := make([]ports.PublicTestimonialView, 0, len(items))
	for _, t := range items {
		name, ok := names[t.ProjectID]
		if !ok {
			name = s.projectName(ctx, t.ProjectID)
			names[t.ProjectID] = name
		}
		views = append(views, publicTestimonialView(t, name))
	}
	return views, nil
}

func (s *PublicService) Projects(ctx context.Context) ([]ports.PublicProjectView, error) {
	projects, err := s.projects.List(ctx, false)
	if err != nil {
		return nil, err
	}

	views := make([]ports.PublicProjectView, 0, len(projects))
	for _, p := range projects {
		items, err := s.testimonials.List(ctx, ports.ListTestimonialsFilter{
			ProjectID:     p.ID,
			PublishedOnly: true,
		})
		if err != nil {
			return nil, err
		}

		embedded := make([]ports.PublicTestimonialView, 0, len(items))
		for _, t := range items {
			embedded = append(embedded, publicTestimonialView(t, p.Name))
		}

		views = append(views, ports.PublicProjectView{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			ProjectURL:   p.ProjectURL,
			ProjectImage: p.ProjectImage,
			Tags:         p.Tags,
			Testimonials: embedded,
		})
	}
	return views, nil
}

// Stats computes the public aggregates. With no published testimonials the
// mean defaults to 5.0, unlike the admin dashboard's 0.0 default.
func (s *PublicService) Stats(ctx context.Context) (*ports.PublicStats, error) {
	totalProjects, err := s.projects.Count(ctx, false)
	if err != nil {
		return nil, err
	}

	totalTestimonials, err := s.testimonials.Count(ctx, ports.ListTestimonialsFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	avg, any, err := s.testimonials.AverageRating(ctx, true)
	if err != nil {
		return nil, err
	}
	if !any {
		avg = 5.0
	}

	histogram, err := s.testimonials.RatingHistogram(ctx)
	if err != nil {
		return nil, err
	}
	distribution := make(map[string]int64, len(histogram))
	for rating, count := range histogram {
		distribution[strconv.Itoa(rating)] = count
	}

	return &ports.PublicStats{
		TotalProjects:      totalProjects,
		TotalTestimonials:  totalTestimonials,
		AverageRating:      math.Round(avg*100) / 100,
		RatingDistribution: distribution,
		SatisfactionRate:   math.Round(avg/5*100*10) / 10,
	}, nil
}

func (s *PublicService) projectName(ctx context.Context, projectID string) string {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		// The public view uses a neutral placeholder, not the admin sentinel.
		return "Project"
	}
	return project.Name
}

func publicTestimonialView(t *domain.Testimonial, projectName string) ports.PublicTestimonialView {
	return ports.PublicTestimonialView{
		ID:            t.ID,
		ClientName:    t.ClientName,
		ClientRole:    t.ClientRole,
		ClientCompany: t.ClientCompany,
		ClientAvatar:  t.ClientAvatar,
		Rating:        t.Rating,
		Title:         t.Title,
		Content:       t.Content,
		ProjectName:   projectName,
		IsFeatured:    t.IsFeatured,
		CreatedAt:     t.CreatedAt,
	}
}
