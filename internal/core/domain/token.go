package domain

import "time"

// TokenStatus represents the lifecycle state of an invite token.
//
// A token starts active and moves to exactly one of the terminal states:
// used (successful redemption), expired (discovered lazily at read time),
// or revoked (explicit admin action). Terminal states are never left.
type TokenStatus string

const (
	TokenActive  TokenStatus = "active"
	TokenUsed    TokenStatus = "used"
	TokenExpired TokenStatus = "expired"
	TokenRevoked TokenStatus = "revoked"
)

// InviteToken is a single-use credential scoping one testimonial submission
// to one project. The opaque Token string is the redemption lookup key.
type InviteToken struct {
	ID        string
	Token     string
	ProjectID string
	Status    TokenStatus
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
	Note      string
	CreatedBy string
}

// ExpiredBy reports whether the token is active but past its expiry at now.
// The comparison is strict: a token expiring exactly at now is still valid.
func (t *InviteToken) ExpiredBy(now time.Time) bool {
	return t.Status == TokenActive && t.ExpiresAt.Before(now)
}
