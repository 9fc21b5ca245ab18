package catalogRepo

import (
	"context"

	"bookwell/models"
)

// VendorSearchCriteria narrows a discovery search.
type VendorSearchCriteria struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
	Category string
}

// CatalogRepository exposes read access to vendors, services, add-ons,
// wedding packages and staff. All writes happen in admin flows outside
// this core.
type CatalogRepository interface {
	GetVendorByID(ctx context.Context, vendorID string) (*models.Vendor, error)
	SearchVendors(ctx context.Context, criteria VendorSearchCriteria) ([]models.Vendor, error)
	GetServicesByVendor(ctx context.Context, vendorID string) ([]models.ServiceOffering, error)
	GetServicesByIDs(ctx context.Context, serviceIDs []string) ([]models.ServiceOffering, error)
	GetAddOnsByIDs(ctx context.Context, addOnIDs []string) ([]models.AddOn, error)
	GetStaffByVendor(ctx context.Context, vendorID string) ([]models.Staff, error)
	GetStaffByID(ctx context.Context, staffID string) (*models.Staff, error)
	GetWeddingPackageByID(ctx context.Context, packageID string) (*models.WeddingPackage, error)
}
