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
	"github.com/testivo/testimonial-system/internal/core/ports"
)

const testimonialCollection = "testimonials"

type TestimonialRepository struct {
	coll *mongo.Collection
}

func NewTestimonialRepository(db *mongo.Database) *TestimonialRepository {
	return &TestimonialRepository{coll: db.Collection(testimonialCollection)}
}

type testimonialDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID     string             `bson:"project_id"`
	TokenID       string             `bson:"token_id"`
	ClientName    string             `bson:"client_name"`
	ClientRole    string             `bson:"client_role,omitempty"`
	ClientCompany string             `bson:"client_company,omitempty"`
	ClientAvatar  string             `bson:"client_avatar,omitempty"`
	Rating        int                `bson:"rating"`
	Title         string             `bson:"title"`
	Content       string             `bson:"content"`
	IsFeatured    bool               `bson:"is_featured"`
	IsPublished   bool               `bson:"is_published"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (r *TestimonialRepository) Insert(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := testimonialDoc{
		ProjectID:     t.ProjectID,
		TokenID:       t.TokenID,
		ClientName:    t.ClientName,
		ClientRole:    t.ClientRole,
		ClientCompany: t.ClientCompany,
		ClientAvatar:  t.ClientAvatar,
		Rating:        t.Rating,
		Title:         t.Title,
		Content:       t.Content,
		IsFeatured:    t.IsFeatured,
		IsPublished:   t.IsPublished,
		CreatedAt:     t.CreatedAt.UTC(),
		UpdatedAt:     t.UpdatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert testimonial: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TestimonialRepository) FindByID(ctx context.Context, id string) (*domain.Testimonial, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc testimonialDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("find testimonial: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TestimonialRepository) List(ctx context.Context, filter ports.ListTestimonialsFilter) ([]*domain.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.coll.Find(ctx, listFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	var testimonials []*domain.Testimonial
	for cursor.Next(ctx) {
		var doc testimonialDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode testimonial: %w", err)
		}
		testimonials = append(testimonials, doc.toDomain())
	}
	return testimonials, cursor.Err()
}

func (r *TestimonialRepository) Update(ctx context.Context, id string, upd domain.TestimonialUpdate, now time.Time) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	set := bson.M{"updated_at": now.UTC()}
	if upd.ClientName != nil {
		set["client_name"] = *upd.ClientName
	}
	if upd.ClientRole != nil {
		set["client_role"] = *upd.ClientRole
	}
	if upd.ClientCompany != nil {
		set["client_company"] = *upd.ClientCompany
	}
	if upd.ClientAvatar != nil {
		set["client_avatar"] = *upd.ClientAvatar
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.IsFeatured != nil {
		set["is_featured"] = *upd.IsFeatured
	}
	if upd.IsPublished != nil {
		set["is_published"] = *upd.IsPublished
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTestimonialNotFound
	}
	return nil
}

func (r *TestimonialRepository) SetFeatured(ctx context.Context, id string, featured bool, now time.Time) error {
	return r.setFlag(ctx, id, "is_featured", featured, now)
}

func (r *TestimonialRepository) SetPublished(ctx context.Context, id string, published bool, now time.Time) error {
	return r.setFlag(ctx, id, "is_published", published, now)
}

func (r *TestimonialRepository) setFlag(ctx context.Context, id, field string, value bool, now time.Time) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{field: value, "updated_at": now.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTestimonialNotFound
	}
	return nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTestimonialNotFound
	}
	return nil
}

func (r *TestimonialRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, fmt.Errorf("delete project testimonials: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TestimonialRepository) Count(ctx context.Context, filter ports.ListTestimonialsFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, listFilter(filter))
}

func (r *TestimonialRepository) AverageRating(ctx context.Context, publishedOnly bool) (float64, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if publishedOnly {
		match["is_published"] = true
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"avg_rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, fmt.Errorf("average rating: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		AvgRating float64 `bson:"avg_rating"`
	}
	if !cursor.Next(ctx) {
		return 0, false, cursor.Err()
	}
	if err := cursor.Decode(&result); err != nil {
		return 0, false, fmt.Errorf("decode average rating: %w", err)
	}
	return result.AvgRating, true, nil
}

func (r *TestimonialRepository) RatingHistogram(ctx context.Context) (map[int]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_published": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("rating histogram: %w", err)
	}
	defer cursor.Close(ctx)

	histogram := map[int]int64{}
	for cursor.Next(ctx) {
		var bucket struct {
			Rating int   `bson:"_id"`
			Count  int64 `bson:"count"`
		}
		if err := cursor.Decode(&bucket); err != nil {
			return nil, fmt.Errorf("decode rating bucket: %w", err)
		}
		histogram[bucket.Rating] = bucket.Count
	}
	return histogram, cursor.Err()
}

func (r *TestimonialRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

func listFilter(f ports.ListTestimonialsFilter) bson.M {
	filter := bson.M{}
	if f.ProjectID != "" {
		filter["project_id"] = f.ProjectID
	}
	if f.FeaturedOnly {
		filter["is_featured"] = true
	}
	if f.PublishedOnly {
		filter["is_published"] = true
	}
	return filter
}

func (d *testimonialDoc) toDomain() *domain.Testimonial {
	return &domain.Testimonial{
		ID:            d.ID.Hex(),
		ProjectID:     d.ProjectID,
		TokenID:       d.TokenID,
		ClientName:    d.ClientName,
		ClientRole:    d.ClientRole,
		ClientCompany: d.ClientCompany,
		ClientAvatar:  d.ClientAvatar,
		Rating:        d.Rating,
		Title:         d.Title,
		Content:       d.Content,
		IsFeatured:    d.IsFeatured,
		IsPublished:   d.IsPublished,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
