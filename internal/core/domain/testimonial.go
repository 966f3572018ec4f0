package domain

import "time"

// Testimonial is created exactly once per redeemed invite token. It keeps its
// project reference as an opaque string so it can outlive the project for
// display purposes.
type Testimonial struct {
	ID            string
	ProjectID     string
	TokenID       string
	ClientName    string
	ClientRole    string
	ClientCompany string
	ClientAvatar  string
	Rating        int
	Title         string
	Content       string
	IsFeatured    bool
	IsPublished   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TestimonialUpdate carries a partial update; nil fields are left untouched.
type TestimonialUpdate struct {
	ClientName    *string
	ClientRole    *string
	ClientCompany *string
	ClientAvatar  *string
	Rating        *int
	Title         *string
	Content       *string
	IsFeatured    *bool
	IsPublished   *bool
}
