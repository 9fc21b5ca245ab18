package booking

import (
	"context"
	"fmt"
	"sort"

	"bookwell/models"
)

// componentPlan is one wedding-package leg resolved against a concrete
// staff member's day schedule.
type componentPlan struct {
	serviceID string
	staffID   string
	staffName string
	duration  int
	day       DayAvailability
	busy      []models.Window
}

// free reports whether [start,end) lies fully inside one working window and
// clear of every busy interval.
func (p componentPlan) free(start, end int) bool {
	inside := false
	for _, w := range p.day.Windows {
		if start >= w.Start && end <= w.End {
			inside = true
			break
		}
	}
	if !inside {
		return false
	}
	for _, b := range p.busy {
		if overlaps(start, end, b.Start, b.End) {
			return false
		}
	}
	return true
}

// componentMinutes resolves a package component's duration, falling back
// to the underlying service's base duration when the component carries
// none. Discovery and booking must agree on this number or a package would
// preview one span and hold another.
func componentMinutes(c models.PackageComponent, svc models.ServiceOffering) int {
	return ParseDurationOr(c.Duration, ParseDuration(svc.Duration))
}

// resolveComponents maps package components onto staff schedules. A
// component without an assigned staff member falls back to the
// lexicographically-first active staff qualified for its service. Schedules
// are resolved once per distinct staff member.
func (e *Engine) resolveComponents(ctx context.Context, vendor models.Vendor, staff []models.Staff, pkg models.WeddingPackage, q SlotQuery) ([]componentPlan, error) {
	byID := make(map[string]models.Staff, len(staff))
	for _, s := range staff {
		byID[s.ID] = s
	}

	serviceIDs := make([]string, 0, len(pkg.Components))
	for _, c := range pkg.Components {
		serviceIDs = append(serviceIDs, c.ServiceID)
	}
	services, err := e.Availability.Catalog.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package services: %w", err)
	}
	serviceByID := make(map[string]models.ServiceOffering, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = svc
	}

	pickDefault := func(serviceID string) (models.Staff, bool) {
		var best models.Staff
		found := false
		for _, s := range staff {
			if !s.Active || !s.QualifiedFor([]string{serviceID}) {
				continue
			}
			if !found || s.ID < best.ID {
				best = s
				found = true
			}
		}
		return best, found
	}

	type schedule struct {
		day  DayAvailability
		busy []models.Window
	}
	schedules := make(map[string]schedule)

	plans := make([]componentPlan, 0, len(pkg.Components))
	for _, c := range pkg.Components {
		svc, ok := serviceByID[c.ServiceID]
		if !ok {
			return nil, NewClientError(fmt.Sprintf("package component service %s not found", c.ServiceID))
		}

		var assigned models.Staff
		if c.StaffID != "" {
			s, ok := byID[c.StaffID]
			if !ok || !s.Active {
				return nil, NewAppointmentNotFoundErrorForStaff(c.StaffID)
			}
			assigned = s
		} else {
			s, ok := pickDefault(c.ServiceID)
			if !ok {
				return nil, NewNoStaffAvailableError(vendor.ID, q.Date)
			}
			assigned = s
		}

		sched, ok := schedules[assigned.ID]
		if !ok {
			day, err := e.Availability.Resolve(ctx, assigned, q.Date)
			if err != nil {
				return nil, err
			}
			var busy []models.Window
			if day.WeekdayEnabled {
				busy, err = e.busyIntervals(ctx, vendor.ID, assigned.ID, q.Date, day)
				if err != nil {
					return nil, err
				}
			}
			sched = schedule{day: day, busy: busy}
			schedules[assigned.ID] = sched
		}

		plans = append(plans, componentPlan{
			serviceID: c.ServiceID,
			staffID:   assigned.ID,
			staffName: assigned.Name,
			duration:  componentMinutes(c, svc),
			day:       sched.day,
			busy:      sched.busy,
		})
	}
	return plans, nil
}

// WeddingPackageSlots finds every start time t0 from which the package's
// components can be chained back to back, each component's staff free for
// its sub-window. One busy component rejects the whole candidate. The
// returned slot spans the full chain (buffers and travel included) and
// names the first component's staff as representative.
func (e *Engine) WeddingPackageSlots(ctx context.Context, vendor models.Vendor, staff []models.Staff, pkg models.WeddingPackage, q SlotQuery) ([]models.Slot, error) {
	if len(pkg.Components) == 0 {
		return nil, NewClientError(fmt.Sprintf("wedding package %s has no components", pkg.ID))
	}

	plans, err := e.resolveComponents(ctx, vendor, staff, pkg, q)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if !p.day.WeekdayEnabled {
			return nil, nil
		}
	}

	travel := e.travelFor(ctx, vendor, q)
	head := q.BufferBefore
	tail := q.BufferAfter
	if travel != nil {
		head += travel.TimeInMinutes
		tail += travel.TimeInMinutes
	}

	chain := 0
	for _, p := range plans {
		chain += p.duration
	}
	if chain <= 0 {
		return nil, nil
	}
	span := head + chain + tail

	first := plans[0]
	last := plans[len(plans)-1]

	var slots []models.Slot
	for _, w := range first.day.Windows {
		for t0 := w.Start; t0+span <= 24*60 && t0+head+first.duration <= w.End; t0 += e.step() {
			chainStart := t0 + head
			ok := first.free(t0, chainStart+first.duration)

			cursor := chainStart
			for i := 0; ok && i < len(plans); i++ {
				p := plans[i]
				start, end := cursor, cursor+p.duration
				if i > 0 {
					ok = p.free(start, end)
				}
				cursor = end
			}
			if ok && tail > 0 {
				ok = last.free(cursor, cursor+tail)
			}
			if !ok {
				continue
			}

			slots = append(slots, models.Slot{
				Date:      q.Date,
				Start:     t0,
				End:       t0 + span,
				StaffID:   first.staffID,
				StaffName: first.staffName,
				Travel:    travel,
			})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	return slots, nil
}
