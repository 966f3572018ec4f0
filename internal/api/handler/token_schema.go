package handler

import (
	"time"

	"github.com/testivo/testimonial-system/internal/core/ports"
)

type generateTokenRequest struct {
	ProjectID    string `json:"project_id"    validate:"required"`
	ExpiresHours int    `json:"expires_hours" validate:"omitempty,gte=1,lte=720"`
	Note         string `json:"note"          validate:"omitempty,max=500"`
}

type tokenResponse struct {
	ID          string     `json:"id"`
	Token       string     `json:"token"`
	ProjectID   string     `json:"project_id"`
	ProjectName string     `json:"project_name"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	Note        string     `json:"note,omitempty"`
	InviteURL   string     `json:"invite_url"`
}

type validateTokenResponse struct {
	Valid   bool             `json:"valid"`
	Project *projectResponse `json:"project,omitempty"`
	Message string           `json:"message"`
}

type submitTestimonialRequest struct {
	Token         string `json:"token"          validate:"required"`
	ClientName    string `json:"client_name"    validate:"required,min=2,max=100"`
	ClientRole    string `json:"client_role"    validate:"omitempty,max=100"`
	ClientCompany string `json:"client_company" validate:"omitempty,max=200"`
	ClientAvatar  string `json:"client_avatar"  validate:"omitempty,max=500"`
	Rating        int    `json:"rating"         validate:"required,gte=1,lte=5"`
	Title         string `json:"title"          validate:"required,min=5,max=200"`
	Content       string `json:"content"        validate:"required,min=20,max=5000"`
	IsFeatured    bool   `json:"is_featured"`
}

func toTokenResponse(v *ports.TokenView) tokenResponse {
	return tokenResponse{
		ID:          v.ID,
		Token:       v.Token,
		ProjectID:   v.ProjectID,
		ProjectName: v.ProjectName,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		ExpiresAt:   v.ExpiresAt,
		UsedAt:      v.UsedAt,
		Note:        v.Note,
		InviteURL:   v.InviteURL,
	}
}

func toTokenListResponse(views []ports.TokenView) []tokenResponse {
	out := make([]tokenResponse, len(views))
	for i := range views {
		out[i] = toTokenResponse(&views[i])
	}
	return out
}
