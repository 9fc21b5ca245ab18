package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"bookwell/database"
	"bookwell/models"
	"bookwell/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	blockedColl *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.DB()
	repo := &MongoAvailabilityRepo{
		blockedColl: db.Collection("blocked_times"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to ensure blocked_times indexes: %v", err)
	}
	return repo
}

func (repo *MongoAvailabilityRepo) GetBlockedIntervals(ctx context.Context, vendorID, staffID, date string) ([]models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"vendor_id": vendorID, "staff_id": staffID, "date": date}
	cursor, err := repo.blockedColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching blocked intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var blocked []models.BlockedTime
	if err := cursor.All(ctx, &blocked); err != nil {
		return nil, fmt.Errorf("error decoding blocked intervals: %w", err)
	}
	return blocked, nil
}

func (repo *MongoAvailabilityRepo) GetBlockedForVendor(ctx context.Context, vendorID, date string) ([]models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"vendor_id": vendorID, "date": date}
	cursor, err := repo.blockedColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching blocked intervals for vendor %s: %w", vendorID, err)
	}
	defer cursor.Close(ctx)

	var blocked []models.BlockedTime
	if err := cursor.All(ctx, &blocked); err != nil {
		return nil, fmt.Errorf("error decoding blocked intervals: %w", err)
	}
	return blocked, nil
}

func (repo *MongoAvailabilityRepo) CreateBlockedInterval(ctx context.Context, blocked *models.BlockedTime) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if blocked.BlockID == "" {
		blocked.BlockID = uuid.New().String()
	}
	if _, err := repo.blockedColl.InsertOne(ctx, blocked); err != nil {
		return fmt.Errorf("error creating blocked interval: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) RemoveBlockedInterval(ctx context.Context, blockID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.blockedColl.DeleteOne(ctx, bson.M{"block_id": blockID}); err != nil {
		return fmt.Errorf("error removing blocked interval with id %s: %w", blockID, err)
	}
	return nil
}
