package discovery

import (
	"context"

	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"
	"bookwell/services/booking"
)

// Service is the read-only discovery surface. Everything here may be
// served from a short-TTL cache: slot lists are advisory previews, and the
// lock manager re-verifies against live state on acquire.
type Service interface {
	SearchVendors(ctx context.Context, criteria catalogRepo.VendorSearchCriteria) ([]models.VendorDTO, error)
	VendorServices(ctx context.Context, vendorID string) (map[string][]models.ServiceOffering, error)
	VendorStaff(ctx context.Context, vendorID string) ([]models.StaffDTO, error)
	Slots(ctx context.Context, q booking.SlotQuery) ([]models.Slot, error)
	Quote(ctx context.Context, q booking.SlotQuery) (*booking.QuoteResult, error)
}
