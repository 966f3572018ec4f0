package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

// AuthService implements admin registration, login, and session issuance.
type AuthService struct {
	admins    ports.AdminRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(admins ports.AdminRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{admins: admins, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a new admin account and returns a signed session token.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.Admin, error) {
	exists, err := s.admins.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, domain.ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.admins.Create(ctx, admin)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("admin registered")
	return token, created, nil
}

// Login verifies credentials and returns a signed session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return "", nil, err
	}

	return token, admin, nil
}

// Me returns the admin record behind the authenticated session.
func (s *AuthService) Me(ctx context.Context, username string) (*domain.Admin, error) {
	return s.admins.FindByUsername(ctx, username)
}

func (s *AuthService) generateToken(admin *domain.Admin) (string, error) {
	claims := jwt.MapClaims{
		"sub":      admin.Username,
		"admin_id": admin.ID,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
