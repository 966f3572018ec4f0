package service

import (
	"context"
	"testing"
	"time"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

func newDashboardService(projects *stubProjectRepo, tokens *stubTokenRepo, testimonials *stubTestimonialRepo) *DashboardService {
	return NewDashboardService(projects, tokens, testimonials, discardLogger)
}

func TestDashboardService_Stats_EmptyDefaults(t *testing.T) {
	svc := newDashboardService(newStubProjectRepo(), newStubTokenRepo(), newStubTestimonialRepo())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.AverageRating != 0.0 {
		t.Errorf("empty dashboard must default the mean to 0.0, got %v", stats.AverageRating)
	}
	if len(stats.RecentTestimonials) != 0 {
		t.Errorf("expected no recent testimonials, got %d", len(stats.RecentTestimonials))
	}
}

func TestDashboardService_Stats_Aggregates(t *testing.T) {
	projects := newStubProjectRepo()
	tokens := newStubTokenRepo()
	testimonials := newStubTestimonialRepo()
	svc := newDashboardService(projects, tokens, testimonials)

	p := seedProject(projects, "P")
	archived := seedProject(projects, "A")
	projects.projects[archived.ID].Status = domain.ProjectArchived

	now := time.Now().UTC()
	seedToken(tokens, p.ID, domain.TokenActive, now.Add(time.Hour))
	seedToken(tokens, p.ID, domain.TokenUsed, now.Add(time.Hour))
	stale := seedToken(tokens, p.ID, domain.TokenActive, now.Add(-time.Hour)) // past expiry
	_ = stale

	seedTestimonial(testimonials, p.ID, 5, true, true)
	seedTestimonial(testimonials, p.ID, 2, false, false) // unpublished still counts here

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalProjects != 2 {
		t.Errorf("dashboard counts archived projects too, got %d", stats.TotalProjects)
	}
	if stats.TotalTestimonials != 2 {
		t.Errorf("expected 2 testimonials, got %d", stats.TotalTestimonials)
	}
	if stats.TotalTokens != 3 {
		t.Errorf("expected 3 tokens, got %d", stats.TotalTokens)
	}
	if stats.ActiveTokens != 1 {
		t.Errorf("active count must exclude past-expiry tokens, got %d", stats.ActiveTokens)
	}
	// mean of 5 and 2 over all testimonials = 3.5
	if stats.AverageRating != 3.5 {
		t.Errorf("expected mean 3.5, got %v", stats.AverageRating)
	}
	if stats.FeaturedCount != 1 {
		t.Errorf("expected 1 featured, got %d", stats.FeaturedCount)
	}
}

func TestDashboardService_Stats_RecentCappedAtFive(t *testing.T) {
	projects := newStubProjectRepo()
	tokens := newStubTokenRepo()
	testimonials := newStubTestimonialRepo()
	svc := newDashboardService(projects, tokens, testimonials)

	p := seedProject(projects, "P")
	for i := 0; i < 8; i++ {
		seeded := seedTestimonial(testimonials, p.ID, 5, true, false)
		// Spread creation times so ordering is deterministic.
		testimonials.items[seeded.ID].CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats.RecentTestimonials) != 5 {
		t.Fatalf("expected 5 recent testimonials, got %d", len(stats.RecentTestimonials))
	}
	for _, v := range stats.RecentTestimonials {
		if v.ProjectName != "P" {
			t.Errorf("expected denormalized project name, got %q", v.ProjectName)
		}
	}
}
