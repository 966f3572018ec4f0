package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

const tokenCollection = "tokens"

type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(tokenCollection)}
}

type tokenDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	ProjectID string             `bson:"project_id"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
	UsedAt    *time.Time         `bson:"used_at,omitempty"`
	Note      string             `bson:"note,omitempty"`
	CreatedBy string             `bson:"created_by"`
}

func (r *TokenRepository) Insert(ctx context.Context, t *domain.InviteToken) (*domain.InviteToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := tokenDoc{
		Token:     t.Token,
		ProjectID: t.ProjectID,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.UTC(),
		ExpiresAt: t.ExpiresAt.UTC(),
		UsedAt:    t.UsedAt,
		Note:      t.Note,
		CreatedBy: t.CreatedBy,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*domain.InviteToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tokenDoc
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TokenRepository) List(ctx context.Context, projectID string) ([]*domain.InviteToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if projectID != "" {
		filter["project_id"] = projectID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var tokens []*domain.InviteToken
	for cursor.Next(ctx) {
		var doc tokenDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode token: %w", err)
		}
		tokens = append(tokens, doc.toDomain())
	}
	return tokens, cursor.Err()
}

// MarkExpired persists the lazy active→expired transition. The filter keeps
// the write conditional on the token still being active, so concurrent
// readers (or a racing redemption) cannot be clobbered.
func (r *TokenRepository) MarkExpired(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.TokenActive)},
		bson.M{"$set": bson.M{"status": string(domain.TokenExpired)}},
	)
	if err != nil {
		return fmt.Errorf("mark token expired: %w", err)
	}
	return nil
}

// MarkUsed is the redemption write: status flips to used only if the token is
// still active. At most one concurrent caller observes a match.
func (r *TokenRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.TokenActive)},
		bson.M{"$set": bson.M{
			"status":  string(domain.TokenUsed),
			"used_at": usedAt.UTC(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("mark token used: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *TokenRepository) Reactivate(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set":   bson.M{"status": string(domain.TokenActive)},
			"$unset": bson.M{"used_at": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("reactivate token: %w", err)
	}
	return nil
}

// Revoke overwrites the status unconditionally. Only the status field is
// touched; a used token keeps its used_at.
func (r *TokenRepository) Revoke(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(domain.TokenRevoked)}},
	)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

func (r *TokenRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, fmt.Errorf("delete project tokens: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TokenRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *TokenRepository) CountActive(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{
		"status":     string(domain.TokenActive),
		"expires_at": bson.M{"$gt": now.UTC()},
	})
}

func (r *TokenRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}},
	})
	return err
}

func (d *tokenDoc) toDomain() *domain.InviteToken {
	return &domain.InviteToken{
		ID:        d.ID.Hex(),
		Token:     d.Token,
		ProjectID: d.ProjectID,
		Status:    domain.TokenStatus(d.Status),
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
		UsedAt:    d.UsedAt,
		Note:      d.Note,
		CreatedBy: d.CreatedBy,
	}
}
