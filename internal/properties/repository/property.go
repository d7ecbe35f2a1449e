package repository

import (
	"context"
	"errors"
	"fmt"
	propertieserrors "stayhub/internal/properties/errors"
	"stayhub/pkg/config"
	"stayhub/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "properties"
)

type mongoPropertyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type PropertyRepository interface {
	Create(ctx context.Context, p *model.Property) error
	FindByID(ctx context.Context, id string) (*model.Property, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Property, error)
	Count(ctx context.Context) (int64, error)
}

func NewMongoPropertyRepository(cfg *config.Config) PropertyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPropertyRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPropertyRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	// Use the shorter of remaining time or requested timeout
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPropertyRepository) Create(ctx context.Context, p *model.Property) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	p.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}

	return nil
}

func (r *mongoPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}
	filter := bson.M{"_id": objectID}

	var p model.Property
	err = r.collection.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &p, nil
}

func (r *mongoPropertyRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, nil
}

func (r *mongoPropertyRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}
