package service

import (
	"context"
	"errors"
	"testing"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

func newTestimonialService(testimonials *stubTestimonialRepo, projects *stubProjectRepo) *TestimonialService {
	return NewTestimonialService(testimonials, projects, discardLogger)
}

func TestTestimonialService_List_DenormalizesProjectName(t *testing.T) {
	testimonials := newStubTestimonialRepo()
	projects := newStubProjectRepo()
	svc := newTestimonialService(testimonials, projects)

	p := seedProject(projects, "Live Project")
	seedTestimonial(testimonials, p.ID, 5, true, false)
	seedTestimonial(testimonials, "proj_gone", 4, true, false)

	views, err := svc.List(context.Background(), "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 testimonials, got %d", len(views))
	}

	names := map[string]bool{}
	for _, v := range views {
		names[v.ProjectName] = true
	}
	if !names["Live Project"] || !names["Deleted Project"] {
		t.Errorf("expected real and sentinel project names, got %v", names)
	}
}

func TestTestimonialService_List_FeaturedFilter(t *testing.T) {
	testimonials := newStubTestimonialRepo()
	projects := newStubProjectRepo()
	svc := newTestimonialService(testimonials, projects)

	p := seedProject(projects, "P")
	seedTestimonial(testimonials, p.ID, 5, true, true)
	seedTestimonial(testimonials, p.ID, 4, true, false)

	views, err := svc.List(context.Background(), "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || !views[0].IsFeatured {
		t.Errorf("expected only the featured testimonial, got %d", len(views))
	}
}

func TestTestimonialService_Update_PartialFields(t *testing.T) {
	testimonials := newStubTestimonialRepo()
	projects := newStubProjectRepo()
	svc := newTestimonialService(testimonials, projects)

	p := seedProject(projects, "P")
	seeded := seedTestimonial(testimonials, p.ID, 3, true, false)

	rating := 5
	view, err := svc.Update(context.Background(), seeded.ID, ports.UpdateTestimonialInput{Rating: &rating})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Rating != 5 {
		t.Errorf("rating not updated: %d", view.Rating)
	}
	if view.Title != seeded.Title {
		t.Errorf("untouched field changed: %q", view.Title)
	}
}

func TestTestimonialService_ToggleFeatured_DoubleToggleRestores(t *testing.T) {
	testimonials := newStubTestimonialRepo()
	projects := newStubProjectRepo()
	svc := newTestimonialService(testimonials, projects)

	p := seedProject(projects, "P")
	seeded := seedTestimonial(testimonials, p.ID, 5, true, false)

	first, err := svc.ToggleFeatured(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first {
		t.Error("first toggle must flip false to true")
	}

	second, err := svc.ToggleFeatured(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second {
		t.Error("second toggle must restore the original value")
	}
	if testimonials.items[seeded.ID].IsFeatured {
		t.Error("stored flag must be back to false")
	}
}

func TestTestimonialService_TogglePublished(t *testing.T) {
	testimonials := newStubTestimonialRepo()
	projects := newStubProjectRepo()
	svc := newTestimonialService(testimonials, projects)

	p := seedProject(projects, "P")
	seeded := seedTestimonial(testimonials, p.ID, 5, true, false)

	value, err := svc.TogglePublished(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value {
		t.Error("toggling a published testimonial must unpublish it")
	}
	if testimonials.items[seeded.ID].IsPublished {
		t.Error("stored flag must be false")
	}
}

func TestTestimonialService_Delete_NotFound(t *testing.T) {
	svc := newTestimonialService(newStubTestimonialRepo(), newStubProjectRepo())

	if err := svc.Delete(context.Background(), "test_missing"); !errors.Is(err, domain.ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound, got %v", err)
	}
}
