package booking

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "bookwell/database/repository/appointment"
	"bookwell/models"
)

// Conflict names the first service item that clashes with live state and
// the appointment it clashes with.
type Conflict struct {
	ItemIndex                int    `json:"itemIndex"`
	ServiceID                string `json:"serviceId"`
	StaffID                  string `json:"staffId"`
	ConflictingAppointmentID string `json:"conflictingAppointmentId"`
}

// ConflictChecker re-derives slot validity from the authoritative store at
// decision time. Slot generation may have worked off a stale (cached) read;
// this check always goes to live lock+appointment state, which is why it
// must never be wired to the cache layer.
type ConflictChecker struct {
	Appointments appointmentRepo.AppointmentRepository
	Clock        func() time.Time
}

func (c *ConflictChecker) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// CheckConflict returns a descriptor for the first conflicting item, nil
// when every item is clear. Read-only and re-entrant.
func (c *ConflictChecker) CheckConflict(ctx context.Context, vendorID, date string, items []models.ServiceItem) (*Conflict, error) {
	now := c.now()
	for i, item := range items {
		appts, err := c.Appointments.FindOverlapping(ctx, vendorID, item.StaffID, date, item.Start, item.End, now)
		if err != nil {
			return nil, fmt.Errorf("conflict check failed for item %d: %w", i, err)
		}
		if len(appts) > 0 {
			return &Conflict{
				ItemIndex:                i,
				ServiceID:                item.ServiceID,
				StaffID:                  item.StaffID,
				ConflictingAppointmentID: appts[0].ID,
			}, nil
		}
	}
	return nil, nil
}
