package booking

import (
	"context"
	"sort"

	"bookwell/models"
)

// AnyStaffSlots runs the single-staff algorithm against every active,
// qualified staff member and unions the results. For each distinct start
// time exactly one representative slot survives; the tie-break is the
// lexicographically smallest staff id, so the selection is deterministic
// rather than load-balancing, and the winning staff identity is exposed in
// the slot. When no active qualified staff member works the date's weekday
// the call fails with NoStaffAvailable rather than returning an empty list.
func (e *Engine) AnyStaffSlots(ctx context.Context, vendor models.Vendor, staff []models.Staff, specs []ServiceSpec, q SlotQuery) ([]models.Slot, error) {
	serviceIDs := make([]string, 0, len(specs))
	for _, s := range specs {
		serviceIDs = append(serviceIDs, s.Service.ID)
	}

	working := 0
	byStart := make(map[int]models.Slot)
	for _, s := range staff {
		if !s.Active || !s.QualifiedFor(serviceIDs) {
			continue
		}
		day, err := e.Availability.Resolve(ctx, s, q.Date)
		if err != nil {
			return nil, err
		}
		if !day.WeekdayEnabled {
			continue
		}
		working++
		slots, err := e.slotsForDay(ctx, vendor, s, day, specs, q)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			existing, ok := byStart[slot.Start]
			if !ok || slot.StaffID < existing.StaffID {
				byStart[slot.Start] = slot
			}
		}
	}
	if working == 0 {
		return nil, NewNoStaffAvailableError(vendor.ID, q.Date)
	}

	merged := make([]models.Slot, 0, len(byStart))
	for _, slot := range byStart {
		merged = append(merged, slot)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Start < merged[j].Start })
	return merged, nil
}
