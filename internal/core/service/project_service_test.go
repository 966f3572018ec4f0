package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

func newProjectService(projects *stubProjectRepo, tokens *stubTokenRepo, testimonials *stubTestimonialRepo) *ProjectService {
	return NewProjectService(projects, tokens, testimonials, discardLogger)
}

func TestProjectService_Create_Defaults(t *testing.T) {
	projects := newStubProjectRepo()
	svc := newProjectService(projects, newStubTokenRepo(), newStubTestimonialRepo())

	view, err := svc.Create(context.Background(), ports.CreateProjectInput{
		Name:       "Website Redesign",
		ClientName: "Acme",
		AdminID:    "admin_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Status != string(domain.ProjectActive) {
		t.Errorf("expected default active status, got %q", view.Status)
	}
	if view.Tags == nil {
		t.Error("tags must default to an empty slice, not nil")
	}
	if view.TestimonialCount != 0 || view.HasTestimonial {
		t.Error("new project must report zero testimonials")
	}
}

func TestProjectService_List_CountsTestimonials(t *testing.T) {
	projects := newStubProjectRepo()
	testimonials := newStubTestimonialRepo()
	svc := newProjectService(projects, newStubTokenRepo(), testimonials)

	p1 := seedProject(projects, "One")
	p2 := seedProject(projects, "Two")
	seedTestimonial(testimonials, p1.ID, 5, true, false)
	seedTestimonial(testimonials, p1.ID, 4, false, false)

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(views))
	}

	byID := map[string]ports.ProjectView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	if byID[p1.ID].TestimonialCount != 2 || !byID[p1.ID].HasTestimonial {
		t.Errorf("project one: expected 2 testimonials, got %+v", byID[p1.ID])
	}
	if byID[p2.ID].TestimonialCount != 0 || byID[p2.ID].HasTestimonial {
		t.Errorf("project two: expected 0 testimonials, got %+v", byID[p2.ID])
	}
}

func TestProjectService_Get_NotFound(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), newStubTokenRepo(), newStubTestimonialRepo())

	if _, err := svc.Get(context.Background(), "proj_missing"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Update_PartialFields(t *testing.T) {
	projects := newStubProjectRepo()
	svc := newProjectService(projects, newStubTokenRepo(), newStubTestimonialRepo())

	p := seedProject(projects, "Before")
	originalClient := p.ClientName

	name := "After"
	status := "completed"
	view, err := svc.Update(context.Background(), p.ID, ports.UpdateProjectInput{
		Name:   &name,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Name != "After" {
		t.Errorf("name not updated: %q", view.Name)
	}
	if view.Status != "completed" {
		t.Errorf("status not updated: %q", view.Status)
	}
	if view.ClientName != originalClient {
		t.Errorf("untouched field changed: %q", view.ClientName)
	}
}

func TestProjectService_Update_NotFound(t *testing.T) {
	svc := newProjectService(newStubProjectRepo(), newStubTokenRepo(), newStubTestimonialRepo())

	name := "x"
	if _, err := svc.Update(context.Background(), "proj_missing", ports.UpdateProjectInput{Name: &name}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Delete_Cascades(t *testing.T) {
	projects := newStubProjectRepo()
	tokens := newStubTokenRepo()
	testimonials := newStubTestimonialRepo()
	svc := newProjectService(projects, tokens, testimonials)

	doomed := seedProject(projects, "Doomed")
	other := seedProject(projects, "Other")

	for i := 0; i < 3; i++ {
		seedToken(tokens, doomed.ID, domain.TokenActive, time.Now().UTC().Add(time.Hour))
	}
	seedToken(tokens, other.ID, domain.TokenActive, time.Now().UTC().Add(time.Hour))
	seedTestimonial(testimonials, doomed.ID, 5, true, false)
	seedTestimonial(testimonials, doomed.ID, 4, true, false)
	seedTestimonial(testimonials, other.ID, 3, true, false)

	if err := svc.Delete(context.Background(), doomed.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := projects.projects[doomed.ID]; ok {
		t.Error("project must be deleted")
	}
	if n, _ := tokens.Count(context.Background()); n != 1 {
		t.Errorf("expected only the other project's token to remain, got %d", n)
	}
	if n, _ := testimonials.Count(context.Background(), ports.ListTestimonialsFilter{}); n != 1 {
		t.Errorf("expected only the other project's testimonial to remain, got %d", n)
	}
}

func TestProjectService_Delete_NotFoundAbortsCascade(t *testing.T) {
	projects := newStubProjectRepo()
	tokens := newStubTokenRepo()
	testimonials := newStubTestimonialRepo()
	svc := newProjectService(projects, tokens, testimonials)

	orphan := seedToken(tokens, "proj_missing", domain.TokenActive, time.Now().UTC().Add(time.Hour))

	if err := svc.Delete(context.Background(), "proj_missing"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if _, ok := tokens.tokens[orphan.ID]; !ok {
		t.Error("cascade must not run when the root delete fails")
	}
}
