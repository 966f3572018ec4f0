package domain

import "errors"

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrProjectNotFound = errors.New("project not found")

	ErrTokenNotFound = errors.New("token not found or invalid")
	ErrTokenUsed     = errors.New("token already used")
	ErrTokenRevoked  = errors.New("token has been revoked")
	ErrTokenExpired  = errors.New("token expired")

	ErrTestimonialNotFound = errors.New("testimonial not found")

	// ErrInvalidID is returned when a supplied identifier cannot be a store key.
	ErrInvalidID = errors.New("invalid id")
)
