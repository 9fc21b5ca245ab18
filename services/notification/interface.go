package notification

import "context"

// Appointment lifecycle events fanned out to clients and vendors.
const (
	EventConfirmed        = "confirmed"
	EventCancelled        = "cancelled"
	EventHoldReleased     = "hold-released"
	EventHoldAutoReleased = "hold-auto-released"
)

// Service delivers appointment notifications asynchronously. Callers never
// wait on delivery; a failed enqueue is logged, not surfaced.
type Service interface {
	Notify(ctx context.Context, appointmentID, event string)
}
