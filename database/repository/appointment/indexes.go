package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing conflict checks and the sweeper.
func (repo *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Partial index on lock_token: only holds carry one.
	tokenOpts := options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"lock_token": bson.M{"$type": "string"}})

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "lock_token", Value: 1}}, Options: tokenOpts},
		{Keys: bson.D{
			{Key: "vendor_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "service_items.staff_id", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "client_id", Value: 1},
			{Key: "vendor_id", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "lock_expiration", Value: 1},
		}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	// One guard document per schedule; the unique index makes concurrent
	// upserts of a fresh guard collide instead of duplicating it.
	guardIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "vendor_id", Value: 1},
			{Key: "staff_id", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.guards.Indexes().CreateOne(ctx, guardIndex); err != nil {
		return fmt.Errorf("failed to create schedule guard index: %w", err)
	}
	return nil
}
