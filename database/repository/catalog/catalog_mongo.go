package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"bookwell/database"
	"bookwell/models"
	"bookwell/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const earthRadiusKm = 6378.1

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	vendorColl  *mongo.Collection
	serviceColl *mongo.Collection
	addOnColl   *mongo.Collection
	staffColl   *mongo.Collection
	packageColl *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	repo := &MongoCatalogRepo{
		vendorColl:  db.Collection("vendors"),
		serviceColl: db.Collection("services"),
		addOnColl:   db.Collection("addons"),
		staffColl:   db.Collection("staff"),
		packageColl: db.Collection("wedding_packages"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Errorf("failed to ensure catalog indexes: %v", err)
	}
	return repo
}

func (repo *MongoCatalogRepo) GetVendorByID(ctx context.Context, vendorID string) (*models.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var vendor models.Vendor
	filter := bson.M{"id": vendorID}
	if err := repo.vendorColl.FindOne(ctx, filter).Decode(&vendor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching vendor with id %s: %w", vendorID, err)
	}
	return &vendor, nil
}

// SearchVendors runs a $centerSphere geo query; results are post-ranked by
// the discovery service.
func (repo *MongoCatalogRepo) SearchVendors(ctx context.Context, criteria VendorSearchCriteria) ([]models.Vendor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"active": true,
		"locationGeo": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{criteria.Lng, criteria.Lat},
					criteria.RadiusKm / earthRadiusKm,
				},
			},
		},
	}
	if criteria.Category != "" {
		filter["category"] = criteria.Category
	}

	cursor, err := repo.vendorColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("vendor search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var vendors []models.Vendor
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, fmt.Errorf("error decoding vendors: %w", err)
	}
	return vendors, nil
}

func (repo *MongoCatalogRepo) GetServicesByVendor(ctx context.Context, vendorID string) ([]models.ServiceOffering, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.serviceColl.Find(ctx, bson.M{"vendor_id": vendorID, "active": true})
	if err != nil {
		return nil, fmt.Errorf("error fetching services for vendor %s: %w", vendorID, err)
	}
	defer cursor.Close(ctx)

	var services []models.ServiceOffering
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

func (repo *MongoCatalogRepo) GetServicesByIDs(ctx context.Context, serviceIDs []string) ([]models.ServiceOffering, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.serviceColl.Find(ctx, bson.M{"id": bson.M{"$in": serviceIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching services by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.ServiceOffering
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

func (repo *MongoCatalogRepo) GetAddOnsByIDs(ctx context.Context, addOnIDs []string) ([]models.AddOn, error) {
	if len(addOnIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.addOnColl.Find(ctx, bson.M{"id": bson.M{"$in": addOnIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching add-ons by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var addOns []models.AddOn
	if err := cursor.All(ctx, &addOns); err != nil {
		return nil, fmt.Errorf("error decoding add-ons: %w", err)
	}
	return addOns, nil
}

func (repo *MongoCatalogRepo) GetStaffByVendor(ctx context.Context, vendorID string) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.staffColl.Find(ctx, bson.M{"vendor_id": vendorID, "active": true})
	if err != nil {
		return nil, fmt.Errorf("error fetching staff for vendor %s: %w", vendorID, err)
	}
	defer cursor.Close(ctx)

	var staff []models.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("error decoding staff: %w", err)
	}
	return staff, nil
}

func (repo *MongoCatalogRepo) GetStaffByID(ctx context.Context, staffID string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff models.Staff
	if err := repo.staffColl.FindOne(ctx, bson.M{"id": staffID}).Decode(&staff); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching staff with id %s: %w", staffID, err)
	}
	return &staff, nil
}

func (repo *MongoCatalogRepo) GetWeddingPackageByID(ctx context.Context, packageID string) (*models.WeddingPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pkg models.WeddingPackage
	if err := repo.packageColl.FindOne(ctx, bson.M{"id": packageID}).Decode(&pkg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching wedding package with id %s: %w", packageID, err)
	}
	return &pkg, nil
}
