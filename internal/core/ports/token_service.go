package ports

import (
	"context"
	"time"
)

// IssueTokenInput carries the data needed to mint an invite token.
type IssueTokenInput struct {
	ProjectID    string
	ExpiresHours int // bounded 1 to 720 by the transport contract
	Note         string
	IssuedBy     string // admin id
}

// TokenView is the admin-facing invite token representation with the
// denormalized project name and the composed invite URL.
type TokenView struct {
	ID          string
	Token       string
	ProjectID   string
	ProjectName string
	Status      string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	UsedAt      *time.Time
	Note        string
	InviteURL   string
}

// TokenValidation is the public validation outcome. Project is set only when
// Valid is true.
type TokenValidation struct {
	Valid   bool
	Project *ProjectView
	Message string
}

// SubmitTestimonialInput carries a client's testimonial submission keyed by
// the raw invite token string.
type SubmitTestimonialInput struct {
	Token         string
	ClientName    string
	ClientRole    string
	ClientCompany string
	ClientAvatar  string
	Rating        int
	Title         string
	Content       string
	IsFeatured    bool
}

// TokenService manages the invite-token lifecycle: issuance, validation with
// lazy expiry, redemption (which consumes the token and creates the
// testimonial), revocation, and listing.
type TokenService interface {
	Issue(ctx context.Context, in IssueTokenInput) (*TokenView, error)
	// List returns tokens newest first, re-evaluating lazy expiry per entry.
	// A non-empty projectID scopes the listing and requires the project to
	// exist.
	List(ctx context.Context, projectID string) ([]TokenView, error)
	Validate(ctx context.Context, token string) (*TokenValidation, error)
	Redeem(ctx context.Context, in SubmitTestimonialInput) (*TestimonialView, error)
	Revoke(ctx context.Context, tokenID string) error
}
