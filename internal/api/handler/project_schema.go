package handler

import (
	"time"

	"github.com/testivo/testimonial-system/internal/core/ports"
)

type createProjectRequest struct {
	Name          string   `json:"name"           validate:"required,min=2,max=200"`
	Description   string   `json:"description"    validate:"omitempty,max=2000"`
	ClientName    string   `json:"client_name"    validate:"required,min=2,max=100"`
	ClientEmail   string   `json:"client_email"   validate:"omitempty,email"`
	ClientCompany string   `json:"client_company" validate:"omitempty,max=200"`
	ProjectURL    string   `json:"project_url"    validate:"omitempty,max=500"`
	ProjectImage  string   `json:"project_image"  validate:"omitempty,max=500"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status" validate:"omitempty,oneof=active completed archived"`
}

type updateProjectRequest struct {
	Name          *string   `json:"name"           validate:"omitempty,min=2,max=200"`
	Description   *string   `json:"description"    validate:"omitempty,max=2000"`
	ClientName    *string   `json:"client_name"    validate:"omitempty,min=2,max=100"`
	ClientEmail   *string   `json:"client_email"   validate:"omitempty,email"`
	ClientCompany *string   `json:"client_company" validate:"omitempty,max=200"`
	ProjectURL    *string   `json:"project_url"    validate:"omitempty,max=500"`
	ProjectImage  *string   `json:"project_image"  validate:"omitempty,max=500"`
	Tags          *[]string `json:"tags"`
	Status        *string   `json:"status" validate:"omitempty,oneof=active completed archived"`
}

type projectResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	ClientName       string    `json:"client_name"`
	ClientEmail      string    `json:"client_email,omitempty"`
	ClientCompany    string    `json:"client_company,omitempty"`
	ProjectURL       string    `json:"project_url,omitempty"`
	ProjectImage     string    `json:"project_image,omitempty"`
	Tags             []string  `json:"tags"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	TestimonialCount int64     `json:"testimonial_count"`
	HasTestimonial   bool      `json:"has_testimonial"`
}

func toProjectResponse(v *ports.ProjectView) projectResponse {
	return projectResponse{
		ID:               v.ID,
		Name:             v.Name,
		Description:      v.Description,
		ClientName:       v.ClientName,
		ClientEmail:      v.ClientEmail,
		ClientCompany:    v.ClientCompany,
		ProjectURL:       v.ProjectURL,
		ProjectImage:     v.ProjectImage,
		Tags:             v.Tags,
		Status:           v.Status,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
		TestimonialCount: v.TestimonialCount,
		HasTestimonial:   v.HasTestimonial,
	}
}

func toProjectListResponse(views []ports.ProjectView) []projectResponse {
	out := make([]projectResponse, len(views))
	for i := range views {
		out[i] = toProjectResponse(&views[i])
	}
	return out
}
