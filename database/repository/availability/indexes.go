package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing blocked-time lookups.
func (repo *MongoAvailabilityRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "block_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "vendor_id", Value: 1},
				{Key: "staff_id", Value: 1},
				{Key: "date", Value: 1},
			},
		},
	}
	if _, err := repo.blockedColl.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create blocked_times indexes: %w", err)
	}
	return nil
}
