package ports

import (
	"context"
	"time"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

// TokenRepository defines persistence operations for invite tokens.
//
// The status-transition methods are conditional writes: MarkExpired and
// MarkUsed only match a token that is still active, which is what closes the
// race between concurrent redemptions and between concurrent lazy-expiry
// readers.
type TokenRepository interface {
	Insert(ctx context.Context, t *domain.InviteToken) (*domain.InviteToken, error)
	FindByToken(ctx context.Context, token string) (*domain.InviteToken, error)
	// List returns tokens ordered by creation time descending. An empty
	// projectID returns all tokens.
	List(ctx context.Context, projectID string) ([]*domain.InviteToken, error)
	// MarkExpired sets status=expired only if the token is still active.
	// Not matching is not an error; a concurrent reader already did the work.
	MarkExpired(ctx context.Context, id string) error
	// MarkUsed sets status=used and used_at only if the token is still
	// active. Returns false when the conditional write matched nothing.
	MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error)
	// Reactivate rolls a token back to active and clears used_at. Used as
	// compensation when the dependent testimonial insert fails.
	Reactivate(ctx context.Context, id string) error
	// Revoke unconditionally sets status=revoked. It never touches used_at.
	Revoke(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	// CountActive counts tokens that are active and not past expiry at now.
	CountActive(ctx context.Context, now time.Time) (int64, error)
}
