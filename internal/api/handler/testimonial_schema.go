package handler

import (
	"time"

	"github.com/testivo/testimonial-system/internal/core/ports"
)

type updateTestimonialRequest struct {
	ClientName    *string `json:"client_name"    validate:"omitempty,min=2,max=100"`
	ClientRole    *string `json:"client_role"    validate:"omitempty,max=100"`
	ClientCompany *string `json:"client_company" validate:"omitempty,max=200"`
	ClientAvatar  *string `json:"client_avatar"  validate:"omitempty,max=500"`
	Rating        *int    `json:"rating"         validate:"omitempty,gte=1,lte=5"`
	Title         *string `json:"title"          validate:"omitempty,min=5,max=200"`
	Content       *string `json:"content"        validate:"omitempty,min=20,max=5000"`
	IsFeatured    *bool   `json:"is_featured"`
	IsPublished   *bool   `json:"is_published"`
}

type testimonialResponse struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	ClientName    string    `json:"client_name"`
	ClientRole    string    `json:"client_role,omitempty"`
	ClientCompany string    `json:"client_company,omitempty"`
	ClientAvatar  string    `json:"client_avatar,omitempty"`
	Rating        int       `json:"rating"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	IsFeatured    bool      `json:"is_featured"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type toggleResponse struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value bool   `json:"value"`
}

func toTestimonialResponse(v *ports.TestimonialView) testimonialResponse {
	return testimonialResponse{
		ID:            v.ID,
		ProjectID:     v.ProjectID,
		ProjectName:   v.ProjectName,
		ClientName:    v.ClientName,
		ClientRole:    v.ClientRole,
		ClientCompany: v.ClientCompany,
		ClientAvatar:  v.ClientAvatar,
		Rating:        v.Rating,
		Title:         v.Title,
		Content:       v.Content,
		IsFeatured:    v.IsFeatured,
		IsPublished:   v.IsPublished,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toTestimonialListResponse(views []ports.TestimonialView) []testimonialResponse {
	out := make([]testimonialResponse, len(views))
	for i := range views {
		out[i] = toTestimonialResponse(&views[i])
	}
	return out
}
