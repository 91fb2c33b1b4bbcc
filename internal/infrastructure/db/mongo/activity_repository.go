package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

const activitiesCollection = "activities"

// ActivityRepository persists audit records. Insert-only: the application
// never updates or deletes an activity document.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activitiesCollection)}
}

type mongoActivity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	UserName   string             `bson:"user_name,omitempty"`
	Action     string             `bson:"action"`
	EntityType string             `bson:"entity_type"`
	EntityID   string             `bson:"entity_id,omitempty"`
	EntityName string             `bson:"entity_name,omitempty"`
	Details    string             `bson:"details"`
	IPAddress  string             `bson:"ip_address,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty"`
	Timestamp  time.Time          `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivity{
		UserID:     a.UserID,
		UserName:   a.UserName,
		Action:     string(a.Action),
		EntityType: string(a.EntityType),
		EntityID:   a.EntityID,
		EntityName: a.EntityName,
		Details:    a.Details,
		IPAddress:  a.IPAddress,
		UserAgent:  a.UserAgent,
		Timestamp:  a.Timestamp,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter ports.ActivityFilter) ([]*domain.Activity, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Activity
	for cur.Next(ctx) {
		var ma mongoActivity
		if err := cur.Decode(&ma); err != nil {
			return nil, 0, fmt.Errorf("decode activity: %w", err)
		}
		out = append(out, &domain.Activity{
			ID:         ma.ID.Hex(),
			UserID:     ma.UserID,
			UserName:   ma.UserName,
			Action:     domain.ActivityAction(ma.Action),
			EntityType: domain.EntityType(ma.EntityType),
			EntityID:   ma.EntityID,
			EntityName: ma.EntityName,
			Details:    ma.Details,
			IPAddress:  ma.IPAddress,
			UserAgent:  ma.UserAgent,
			Timestamp:  ma.Timestamp,
		})
	}
	return out, total, cur.Err()
}

// EnsureIndexes creates supporting indexes on the activities collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
