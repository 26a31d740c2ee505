package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

const collectionResources = "hospital_resources"

type ResourceRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{col: db.Collection(collectionResources), now: time.Now}
}

type resourceDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Total     int                `bson:"total"`
	Available int                `bson:"available"`
	Location  string             `bson:"location,omitempty"`
	Details   string             `bson:"details,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *resourceDoc) toDomain() *domain.HospitalResource {
	return &domain.HospitalResource{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Type:      domain.ResourceType(d.Type),
		Total:     d.Total,
		Available: d.Available,
		Location:  d.Location,
		Details:   d.Details,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.HospitalResource) (*domain.HospitalResource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := resourceDoc{
		ID:        primitive.NewObjectID(),
		Name:      res.Name,
		Type:      string(res.Type),
		Total:     res.Total,
		Available: res.Available,
		Location:  res.Location,
		Details:   res.Details,
		CreatedAt: stamp(res.CreatedAt, r.now),
		UpdatedAt: stamp(res.UpdatedAt, r.now),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*domain.HospitalResource, error) {
	oid, err := objectID(id, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc resourceDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns resources grouped by type, then by name.
func (r *ResourceRepository) List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.HospitalResource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if resourceType != "" {
		filter["type"] = string(resourceType)
	}

	opts := options.Find().SetSort(bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return decodeAll(ctx, cur, (*resourceDoc).toDomain)
}

func (r *ResourceRepository) Update(ctx context.Context, res *domain.HospitalResource) error {
	oid, err := objectID(res.ID, domain.ErrNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":       res.Name,
		"type":       string(res.Type),
		"total":      res.Total,
		"available":  res.Available,
		"location":   res.Location,
		"details":    res.Details,
		"updated_at": stamp(res.UpdatedAt, r.now),
	}
	out, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	if out.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if out.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("resources indexes: %w", err)
	}
	return nil
}
