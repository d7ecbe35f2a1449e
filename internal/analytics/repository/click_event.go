package repository

import (
	"context"
	"fmt"
	"stayhub/pkg/config"
	"stayhub/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "click_events"
)

type mongoClickEventRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ClickEventRepository interface {
	Insert(ctx context.Context, event *model.ClickEvent) error
	FindTimestampsBySubject(ctx context.Context, subjectID string, since time.Time) ([]time.Time, error)
	CountBySubject(ctx context.Context, subjectID string) (int64, error)
}

func NewMongoClickEventRepository(cfg *config.Config) ClickEventRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoClickEventRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoClickEventRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoClickEventRepository) Insert(ctx context.Context, event *model.ClickEvent) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to record click event: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}

	return nil
}

// FindTimestampsBySubject returns raw event timestamps for one subject,
// oldest first. A zero since means no lower bound. Only occurred_at is
// projected; the caller buckets in memory.
func (r *mongoClickEventRepository) FindTimestampsBySubject(ctx context.Context, subjectID string, since time.Time) ([]time.Time, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"subject_id": subjectID}
	if !since.IsZero() {
		filter["occurred_at"] = bson.M{"$gte": since}
	}

	opts := options.Find().
		SetProjection(bson.M{"occurred_at": 1}).
		SetSort(bson.D{{Key: "occurred_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query click events for subject [%s]: %w", subjectID, err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		OccurredAt time.Time `bson:"occurred_at"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode click events: %w", err)
	}

	timestamps := make([]time.Time, 0, len(docs))
	for _, doc := range docs {
		timestamps = append(timestamps, doc.OccurredAt)
	}

	return timestamps, nil
}

func (r *mongoClickEventRepository) CountBySubject(ctx context.Context, subjectID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"subject_id": subjectID})
	if err != nil {
		return 0, fmt.Errorf("failed to count click events for subject [%s]: %w", subjectID, err)
	}
	return count, nil
}
