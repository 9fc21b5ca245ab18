package availabilityRepo

import (
	"context"

	"bookwell/models"
)

// AvailabilityRepository reads and maintains ad hoc blocked intervals
// (vacations, breaks). Recurring weekly windows live on the staff document
// and are read through the catalog repository.
type AvailabilityRepository interface {
	GetBlockedIntervals(ctx context.Context, vendorID, staffID, date string) ([]models.BlockedTime, error)
	GetBlockedForVendor(ctx context.Context, vendorID, date string) ([]models.BlockedTime, error)
	CreateBlockedInterval(ctx context.Context, blocked *models.BlockedTime) error
	RemoveBlockedInterval(ctx context.Context, blockID string) error
}
