package handler

import (
	"time"

	"github.com/testivo/testimonial-system/internal/core/ports"
)

type publicTestimonialResponse struct {
	ID            string    `json:"id"`
	ClientName    string    `json:"client_name"`
	ClientRole    string    `json:"client_role,omitempty"`
	ClientCompany string    `json:"client_company,omitempty"`
	ClientAvatar  string    `json:"client_avatar,omitempty"`
	Rating        int       `json:"rating"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ProjectName   string    `json:"project_name"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
}

type publicProjectResponse struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	Description  string                      `json:"description,omitempty"`
	ProjectURL   string                      `json:"project_url,omitempty"`
	ProjectImage string                      `json:"project_image,omitempty"`
	Tags         []string                    `json:"tags"`
	Testimonials []publicTestimonialResponse `json:"testimonials"`
}

type publicStatsResponse struct {
	TotalProjects      int64            `json:"total_projects"`
	TotalTestimonials  int64            `json:"total_testimonials"`
	AverageRating      float64          `json:"average_rating"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
	SatisfactionRate   float64          `json:"satisfaction_rate"`
}

func toPublicTestimonialResponse(v *ports.PublicTestimonialView) publicTestimonialResponse {
	return publicTestimonialResponse{
		ID:            v.ID,
		ClientName:    v.ClientName,
		ClientRole:    v.ClientRole,
		ClientCompany: v.ClientCompany,
		ClientAvatar:  v.ClientAvatar,
		Rating:        v.Rating,
		Title:         v.Title,
		Content:       v.Content,
		ProjectName:   v.ProjectName,
		IsFeatured:    v.IsFeatured,
		CreatedAt:     v.CreatedAt,
	}
}

func toPublicTestimonialListResponse(views []ports.PublicTestimonialView) []publicTestimonialResponse {
	out := make([]publicTestimonialResponse, len(views))
	for i := range views {
		out[i] = toPublicTestimonialResponse(&views[i])
	}
	return out
}

func toPublicProjectListResponse(views []ports.PublicProjectView) []publicProjectResponse {
	out := make([]publicProjectResponse, len(views))
	for i, v := range views {
		out[i] = publicProjectResponse{
			ID:           v.ID,
			Name:         v.Name,
			Description:  v.Description,
			ProjectURL:   v.ProjectURL,
			ProjectImage: v.ProjectImage,
			Tags:         v.Tags,
			Testimonials: toPublicTestimonialListResponse(v.Testimonials),
		}
	}
	return out
}
