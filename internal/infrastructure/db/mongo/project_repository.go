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

const projectCollection = "projects"

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectCollection)}
}

type projectDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description,omitempty"`
	ClientName    string             `bson:"client_name"`
	ClientEmail   string             `bson:"client_email,omitempty"`
	ClientCompany string             `bson:"client_company,omitempty"`
	ProjectURL    string             `bson:"project_url,omitempty"`
	ProjectImage  string             `bson:"project_image,omitempty"`
	Tags          []string           `bson:"tags"`
	Status        string             `bson:"status"`
	AdminID       string             `bson:"admin_id"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := projectDoc{
		Name:          p.Name,
		Description:   p.Description,
		ClientName:    p.ClientName,
		ClientEmail:   p.ClientEmail,
		ClientCompany: p.ClientCompany,
		ProjectURL:    p.ProjectURL,
		ProjectImage:  p.ProjectImage,
		Tags:          p.Tags,
		Status:        string(p.Status),
		AdminID:       p.AdminID,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !includeArchived {
		filter["status"] = bson.M{"$ne": string(domain.ProjectArchived)}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []*domain.Project
	for cursor.Next(ctx) {
		var doc projectDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, doc.toDomain())
	}
	return projects, cursor.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, id string, upd domain.ProjectUpdate, now time.Time) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	set := bson.M{"updated_at": now.UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.ClientName != nil {
		set["client_name"] = *upd.ClientName
	}
	if upd.ClientEmail != nil {
		set["client_email"] = *upd.ClientEmail
	}
	if upd.ClientCompany != nil {
		set["client_company"] = *upd.ClientCompany
	}
	if upd.ProjectURL != nil {
		set["project_url"] = *upd.ProjectURL
	}
	if upd.ProjectImage != nil {
		set["project_image"] = *upd.ProjectImage
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Status != nil {
		set["status"] = string(*upd.Status)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Count(ctx context.Context, includeArchived bool) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !includeArchived {
		filter["status"] = bson.M{"$ne": string(domain.ProjectArchived)}
	}
	return r.coll.CountDocuments(ctx, filter)
}

func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	})
	return err
}

func (d *projectDoc) toDomain() *domain.Project {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Project{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		ClientName:    d.ClientName,
		ClientEmail:   d.ClientEmail,
		ClientCompany: d.ClientCompany,
		ProjectURL:    d.ProjectURL,
		ProjectImage:  d.ProjectImage,
		Tags:          tags,
		Status:        domain.ProjectStatus(d.Status),
		AdminID:       d.AdminID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
