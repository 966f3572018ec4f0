package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// guardTTL bounds how long a redemption claim lingers if the holder crashes
// between claiming and writing. Well past any realistic request duration.
const guardTTL = 5 * time.Minute

// RedemptionGuard serialises concurrent redemption attempts for the same
// token with a SETNX claim. It is advisory: the storage-level conditional
// write remains the source of truth, the guard only sheds duplicate work
// before it reaches the database.
type RedemptionGuard struct {
	client *redis.Client
}

func NewRedemptionGuard(client *redis.Client) *RedemptionGuard {
	return &RedemptionGuard{client: client}
}

// Acquire claims the redemption slot for tokenID. It returns false when
// another request already holds the claim.
func (g *RedemptionGuard) Acquire(ctx context.Context, tokenID string) (bool, error) {
	return g.client.SetNX(ctx, guardKey(tokenID), 1, guardTTL).Result()
}

// Release drops the claim so a retry after a failed redemption is not locked
// out until the TTL lapses. Deleting an absent key is a no-op.
func (g *RedemptionGuard) Release(ctx context.Context, tokenID string) error {
	return g.client.Del(ctx, guardKey(tokenID)).Err()
}

func guardKey(tokenID string) string {
	return "redeem:" + tokenID
}
