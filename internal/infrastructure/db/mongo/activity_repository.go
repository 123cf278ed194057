package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const (
	activityCollection = "user_activities"
	maxActivityLimit   = 200
	defaultActivity    = 50
)

// ActivityRepository implements ports.ActivityRepository on MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

// Insert appends one entry to the activity log.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByUser returns the newest entries for userID first.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*domain.Activity, error) {
	if limit <= 0 {
		limit = defaultActivity
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Activity, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return out, nil
}
