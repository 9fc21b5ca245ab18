package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"bookwell/models"
)

var (
	// ErrSlotTaken is returned by InsertHoldIfFree when the atomic overlap
	// guard detects a race loss.
	ErrSlotTaken = errors.New("slot already held or booked")
	// ErrNoMatch is returned by conditional updates whose filter matched
	// no live document (wrong token, expired hold, or absent record).
	ErrNoMatch = errors.New("no matching appointment")
)

// AppointmentRepository owns the single shared mutable resource of the
// booking core: the appointment/hold collection. Every read here filters
// out expired holds by predicate, so callers never see a hold past its
// lock expiration regardless of sweeper timing.
type AppointmentRepository interface {
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)

	// FindActive returns all records that still reserve time for the staff
	// member on the date: confirmed/completed appointments plus non-expired
	// temp-locked holds.
	FindActive(ctx context.Context, vendorID, staffID, date string, now time.Time) ([]models.Appointment, error)

	// FindOverlapping narrows FindActive to records with a service item for
	// this staff whose [start,end) intersects the given range.
	FindOverlapping(ctx context.Context, vendorID, staffID, date string, start, end int, now time.Time) ([]models.Appointment, error)

	FindActiveHoldByClient(ctx context.Context, clientID, vendorID string, now time.Time) (*models.Appointment, error)
	FindHoldByToken(ctx context.Context, lockToken string) (*models.Appointment, error)

	// InsertHoldIfFree re-runs the overlap check and inserts the hold in one
	// transaction. Returns ErrSlotTaken when any service item overlaps a
	// live record.
	InsertHoldIfFree(ctx context.Context, hold *models.Appointment, now time.Time) error

	// ConfirmHold atomically flips a matching live hold to confirmed,
	// persisting payment metadata with the state change. The filter requires
	// id + token + temp-locked status + unexpired TTL; ErrNoMatch otherwise.
	ConfirmHold(ctx context.Context, appointmentID, lockToken string, now time.Time, payment models.PaymentDetails, discount, fees float64) (*models.Appointment, error)

	DeleteHold(ctx context.Context, appointmentID string) error
	UpdateStatus(ctx context.Context, appointmentID, status, reason string) (*models.Appointment, error)

	// DeleteExpired physically reclaims holds whose expiration has passed.
	// Correctness never depends on this running; it only bounds storage.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
