package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

// RedemptionGuard grants at most one in-flight redemption per token. It is
// advisory: when the guard is unavailable the conditional write in the token
// repository remains the source of truth. A claim must be released when the
// redemption does not go through, otherwise a retry against a still-active
// token would be refused for the remainder of the claim's lifetime.
type RedemptionGuard interface {
	Acquire(ctx context.Context, tokenID string) (bool, error)
	Release(ctx context.Context, tokenID string) error
}

// TokenService manages the invite-token lifecycle. Expiry is lazy: an active
// token past its expiry is transitioned (and persisted) the next time it is
// read, validated, or redeemed. There is no background sweep.
type TokenService struct {
	tokens       ports.TokenRepository
	projects     ports.ProjectRepository
	testimonials ports.TestimonialRepository
	guard        RedemptionGuard
	frontendURL  string
	log          zerolog.Logger
}

func NewTokenService(
	tokens ports.TokenRepository,
	projects ports.ProjectRepository,
	testimonials ports.TestimonialRepository,
	guard RedemptionGuard,
	frontendURL string,
	log zerolog.Logger,
) *TokenService {
	return &TokenService{
		tokens:       tokens,
		projects:     projects,
		testimonials: testimonials,
		guard:        guard,
		frontendURL:  frontendURL,
		log:          log,
	}
}

// Issue mints a new active token for an existing project.
func (s *TokenService) Issue(ctx context.Context, in ports.IssueTokenInput) (*ports.TokenView, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token := &domain.InviteToken{
		Token:     generateInviteToken(),
		ProjectID: in.ProjectID,
		Status:    domain.TokenActive,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(in.ExpiresHours) * time.Hour),
		Note:      in.Note,
		CreatedBy: in.IssuedBy,
	}

	created, err := s.tokens.Insert(ctx, token)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", in.ProjectID).Msg("failed to insert invite token")
		return nil, err
	}

	s.log.Info().
		Str("token_id", created.ID).
		Str("project_id", in.ProjectID).
		Int("expires_hours", in.ExpiresHours).
		Msg("invite token issued")

	view := s.view(created, project.Name)
	return &view, nil
}

// List returns tokens newest first, with lazy expiry applied and persisted
// per entry. A non-empty projectID requires the project to exist.
func (s *TokenService) List(ctx context.Context, projectID string) ([]ports.TokenView, error) {
	var scopedName string
	if projectID != "" {
		project, err := s.projects.FindByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		scopedName = project.Name
	}

	tokens, err := s.tokens.List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	names := map[string]string{}
	views := make([]ports.TokenView, 0, len(tokens))
	for _, t := range tokens {
		s.lazyExpire(ctx, t, now)

		name := scopedName
		if name == "" {
			var ok bool
			if name, ok = names[t.ProjectID]; !ok {
				name = s.projectName(ctx, t.ProjectID)
				names[t.ProjectID] = name
			}
		}
		views = append(views, s.view(t, name))
	}
	return views, nil
}

// Validate is the read-only public check. It returns an outcome rather than
// an error for every invalid state so the caller can always render a message.
func (s *TokenService) Validate(ctx context.Context, raw string) (*ports.TokenValidation, error) {
	_, project, err := s.redeemable(ctx, raw, time.Now().UTC())
	if err != nil {
		msg, known := validationMessage(err)
		if !known {
			return nil, err
		}
		return &ports.TokenValidation{Valid: false, Message: msg}, nil
	}

	view := ports.NewProjectView(project, 0)
	return &ports.TokenValidation{
		Valid:   true,
		Project: &view,
		Message: "token valid, ready for testimonial submission",
	}, nil
}

// Redeem exchanges a valid token for a created testimonial and consumes the
// token. The token is flipped active→used with a conditional write before the
// testimonial insert; a failed insert rolls the token back so redemption is
// atomic from the caller's point of view.
func (s *TokenService) Redeem(ctx context.Context, in ports.SubmitTestimonialInput) (*ports.TestimonialView, error) {
	now := time.Now().UTC()

	token, project, err := s.redeemable(ctx, in.Token, now)
	if err != nil {
		return nil, err
	}

	if s.guard != nil {
		acquired, gerr := s.guard.Acquire(ctx, token.ID)
		if gerr != nil {
			s.log.Warn().Err(gerr).Str("token_id", token.ID).
				Msg("redemption guard unavailable, relying on conditional write")
		} else if !acquired {
			return nil, domain.ErrTokenUsed
		}
	}

	used, err := s.tokens.MarkUsed(ctx, token.ID, now)
	if err != nil {
		s.releaseGuard(ctx, token.ID)
		return nil, err
	}
	if !used {
		// Lost the race: another redemption flipped the token first.
		return nil, domain.ErrTokenUsed
	}

	testimonial := &domain.Testimonial{
		ProjectID:     token.ProjectID,
		TokenID:       token.ID,
		ClientName:    in.ClientName,
		ClientRole:    in.ClientRole,
		ClientCompany: in.ClientCompany,
		ClientAvatar:  in.ClientAvatar,
		Rating:        in.Rating,
		Title:         in.Title,
		Content:       in.Content,
		IsFeatured:    in.IsFeatured,
		IsPublished:   true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.testimonials.Insert(ctx, testimonial)
	if err != nil {
		if rbErr := s.tokens.Reactivate(ctx, token.ID); rbErr != nil {
			s.log.Error().Err(rbErr).Str("token_id", token.ID).
				Msg("failed to roll back token after testimonial insert failure")
		}
		s.releaseGuard(ctx, token.ID)
		return nil, err
	}

	s.log.Info().
		Str("token_id", token.ID).
		Str("project_id", token.ProjectID).
		Str("testimonial_id", created.ID).
		Msg("invite token redeemed")

	view := ports.NewTestimonialView(created, project.Name)
	return &view, nil
}

// Revoke unconditionally overwrites the token status. Revoking an already
// terminal token is a no-op beyond the status field; used_at is never cleared.
func (s *TokenService) Revoke(ctx context.Context, tokenID string) error {
	if err := s.tokens.Revoke(ctx, tokenID); err != nil {
		return err
	}
	s.log.Info().Str("token_id", tokenID).Msg("invite token revoked")
	return nil
}

// redeemable runs the shared validity checks in fixed priority order:
// used → revoked → expired → project exists. The expired check persists the
// lazy transition as a side effect.
func (s *TokenService) redeemable(ctx context.Context, raw string, now time.Time) (*domain.InviteToken, *domain.Project, error) {
	token, err := s.tokens.FindByToken(ctx, raw)
	if err != nil {
		return nil, nil, err
	}

	switch token.Status {
	case domain.TokenUsed:
		return nil, nil, domain.ErrTokenUsed
	case domain.TokenRevoked:
		return nil, nil, domain.ErrTokenRevoked
	case domain.TokenExpired:
		return nil, nil, domain.ErrTokenExpired
	}

	if token.ExpiresAt.Before(now) {
		s.lazyExpire(ctx, token, now)
		return nil, nil, domain.ErrTokenExpired
	}

	project, err := s.projects.FindByID(ctx, token.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return nil, nil, domain.ErrProjectNotFound
		}
		return nil, nil, err
	}

	return token, project, nil
}

// releaseGuard gives the redemption claim back after a failed redemption so
// a retry on the rolled-back token is not refused for the claim's lifetime.
func (s *TokenService) releaseGuard(ctx context.Context, tokenID string) {
	if s.guard == nil {
		return
	}
	if err := s.guard.Release(ctx, tokenID); err != nil {
		s.log.Warn().Err(err).Str("token_id", tokenID).
			Msg("failed to release redemption claim, retries blocked until it lapses")
	}
}

// lazyExpire persists the active→expired transition when due. The write is
// conditional on the token still being active, so concurrent readers and a
// concurrent redemption cannot clobber each other.
func (s *TokenService) lazyExpire(ctx context.Context, t *domain.InviteToken, now time.Time) {
	if !t.ExpiredBy(now) {
		return
	}
	if err := s.tokens.MarkExpired(ctx, t.ID); err != nil {
		s.log.Warn().Err(err).Str("token_id", t.ID).Msg("failed to persist token expiry")
	}
	t.Status = domain.TokenExpired
}

func (s *TokenService) projectName(ctx context.Context, projectID string) string {
	project, err := s.projects.FindByID(ctx, projectID)
	switch {
	case err == nil:
		return project.Name
	case errors.Is(err, domain.ErrProjectNotFound):
		return "Deleted Project"
	default:
		return "Unknown Project"
	}
}

func (s *TokenService) view(t *domain.InviteToken, projectName string) ports.TokenView {
	return ports.TokenView{
		ID:          t.ID,
		Token:       t.Token,
		ProjectID:   t.ProjectID,
		ProjectName: projectName,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		ExpiresAt:   t.ExpiresAt,
		UsedAt:      t.UsedAt,
		Note:        t.Note,
		InviteURL:   fmt.Sprintf("%s/review/write?token=%s", s.frontendURL, t.Token),
	}
}

// validationMessage maps lifecycle errors to the public validation messages.
func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		return "token not found or invalid", true
	case errors.Is(err, domain.ErrTokenUsed):
		return "token has already been used", true
	case errors.Is(err, domain.ErrTokenRevoked):
		return "token has been revoked", true
	case errors.Is(err, domain.ErrTokenExpired):
		return "token has expired", true
	case errors.Is(err, domain.ErrProjectNotFound):
		return "project not found", true
	}
	return "", false
}

// generateInviteToken returns an opaque token string of three independent
// random segments. The middle segment alone carries 128 bits of entropy.
func generateInviteToken() string {
	mid := make([]byte, 16)
	if _, err := rand.Read(mid); err != nil {
		// fallback: two UUIDs still exceed the entropy requirement
		return uuid.NewString() + "-" + uuid.NewString()
	}
	head := uuid.New()
	tail := uuid.New()
	return fmt.Sprintf("%s-%s-%s",
		hex.EncodeToString(head[:])[:8],
		base64.RawURLEncoding.EncodeToString(mid),
		hex.EncodeToString(tail[:])[:8],
	)
}
