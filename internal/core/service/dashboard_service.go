package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

const recentTestimonialsLimit = 5

// DashboardService computes the admin dashboard aggregate on demand; nothing
// is cached.
type DashboardService struct {
	projects     ports.ProjectRepository
	tokens       ports.TokenRepository
	testimonials ports.TestimonialRepository
	log          zerolog.Logger
}

func NewDashboardService(
	projects ports.ProjectRepository,
	tokens ports.TokenRepository,
	testimonials ports.TestimonialRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{projects: projects, tokens: tokens, testimonials: testimonials, log: log}
}

func (s *DashboardService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	totalProjects, err := s.projects.Count(ctx, true)
	if err != nil {
		return nil, err
	}

	totalTestimonials, err := s.testimonials.Count(ctx, ports.ListTestimonialsFilter{})
	if err != nil {
		return nil, err
	}

	totalTokens, err := s.tokens.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeTokens, err := s.tokens.CountActive(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	avg, any, err := s.testimonials.AverageRating(ctx, false)
	if err != nil {
		return nil, err
	}
	if !any {
		avg = 0.0
	}

	featuredCount, err := s.testimonials.Count(ctx, ports.ListTestimonialsFilter{FeaturedOnly: true})
	if err != nil {
		return nil, err
	}

	recent, err := s.testimonials.List(ctx, ports.ListTestimonialsFilter{Limit: recentTestimonialsLimit})
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	recentViews := make([]ports.TestimonialView, 0, len(recent))
	for _, t := range recent {
		name, ok := names[t.ProjectID]
		if !ok {
			name = s.projectName(ctx, t.ProjectID)
			names[t.ProjectID] = name
		}
		recentViews = append(recentViews, ports.NewTestimonialView(t, name))
	}

	return &ports.DashboardStats{
		TotalProjects:      totalProjects,
		TotalTestimonials:  totalTestimonials,
		TotalTokens:        totalTokens,
		ActiveTokens:       activeTokens,
		AverageRating:      math.Round(avg*100) / 100,
		FeaturedCount:      featuredCount,
		RecentTestimonials: recentViews,
	}, nil
}

func (s *DashboardService) projectName(ctx context.Context, projectID string) string {
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
