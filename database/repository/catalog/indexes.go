package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates indexes for the discovery query paths.
func (repo *MongoCatalogRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vendorIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "active", Value: 1}}},
	}
	if _, err := repo.vendorColl.Indexes().CreateMany(ctx, vendorIdx); err != nil {
		return fmt.Errorf("failed to create vendor indexes: %w", err)
	}

	serviceIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "active", Value: 1}}},
	}
	if _, err := repo.serviceColl.Indexes().CreateMany(ctx, serviceIdx); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}

	staffIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "active", Value: 1}}},
	}
	if _, err := repo.staffColl.Indexes().CreateMany(ctx, staffIdx); err != nil {
		return fmt.Errorf("failed to create staff indexes: %w", err)
	}

	addOnIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_id", Value: 1}}},
	}
	if _, err := repo.addOnColl.Indexes().CreateMany(ctx, addOnIdx); err != nil {
		return fmt.Errorf("failed to create add-on indexes: %w", err)
	}

	pkgIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "active", Value: 1}}},
	}
	if _, err := repo.packageColl.Indexes().CreateMany(ctx, pkgIdx); err != nil {
		return fmt.Errorf("failed to create package indexes: %w", err)
	}

	return nil
}
