package domain

import "time"

// Admin models an administrator account. Admins own projects, issue invite
// tokens, and curate testimonials.
type Admin struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
