package ports

import (
	"context"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

// RegisterInput carries the data needed to create an admin account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AuthService implements admin registration, login, and identity lookup.
// Register and Login return a signed session token alongside the admin.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.Admin, error)
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	Me(ctx context.Context, username string) (*domain.Admin, error)
}
