package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	appointmentRepo "bookwell/database/repository/appointment"
	"bookwell/models"
)

// ServiceSpec is one requested service with its attached add-ons, resolved
// from the catalogue. Durations and amounts are normalized on access.
type ServiceSpec struct {
	Service models.ServiceOffering
	AddOns  []models.AddOn
}

// TotalMinutes returns base duration plus add-on durations. A zero-duration
// add-on is valid and contributes zero.
func (s ServiceSpec) TotalMinutes() int {
	total := ParseDuration(s.Service.Duration)
	for _, a := range s.AddOns {
		total += ParseDuration(a.Duration)
	}
	return total
}

// BaseMinutes returns the service's base duration, exclusive of add-ons.
func (s ServiceSpec) BaseMinutes() int {
	return ParseDuration(s.Service.Duration)
}

// Amount returns service price plus add-on prices.
func (s ServiceSpec) Amount() float64 {
	total := SafeAmount(s.Service.Price)
	for _, a := range s.AddOns {
		total += SafeAmount(a.Price)
	}
	return total
}

// SlotQuery describes one discovery request for bookable windows.
type SlotQuery struct {
	VendorID         string           `json:"vendorId"`
	StaffID          string           `json:"staffId"` // concrete id or "any"
	ServiceIDs       []string         `json:"serviceIds"`
	AddOnIDs         []string         `json:"addOnIds"`
	Date             string           `json:"date"` // "YYYY-MM-DD"
	IsHomeService    bool             `json:"isHomeService"`
	IsWeddingService bool             `json:"isWeddingService"`
	PackageID        string           `json:"packageId,omitempty"`
	CustomerLocation *models.GeoPoint `json:"customerLocation,omitempty"`
	BufferBefore     int              `json:"bufferBefore"`
	BufferAfter      int              `json:"bufferAfter"`
}

// AnyStaff is the sentinel staff id deferring selection to the engine.
const AnyStaff = "any"

// Engine generates candidate slots. It only reads availability and lock
// state; it never mutates storage, so identical inputs over identical
// state always yield the identical ordered list.
type Engine struct {
	Appointments appointmentRepo.AppointmentRepository
	Availability *AvailabilityResolver
	Travel       TravelEstimator
	StepMinutes  int
	Clock        func() time.Time
}

func (e *Engine) step() int {
	if e.StepMinutes <= 0 {
		return 15
	}
	return e.StepMinutes
}

func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// busyIntervals collects the staff member's unavailable ranges for the day:
// ad hoc blocks plus every live hold/appointment item assigned to them.
func (e *Engine) busyIntervals(ctx context.Context, vendorID, staffID, date string, day DayAvailability) ([]models.Window, error) {
	busy := append([]models.Window(nil), day.Blocked...)

	appts, err := e.Appointments.FindActive(ctx, vendorID, staffID, date, e.now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active appointments: %w", err)
	}
	for _, a := range appts {
		for _, item := range a.ServiceItems {
			if item.StaffID == staffID {
				busy = append(busy, models.Window{Start: item.Start, End: item.End})
			}
		}
	}
	return busy, nil
}

// fitStarts steps a candidate start through each working window at the
// engine granularity and keeps every start whose [t, t+duration) stays
// inside the window and clear of busy intervals. A window shorter than the
// duration simply contributes nothing.
func fitStarts(windows, busy []models.Window, duration, step int) []int {
	if duration <= 0 {
		return nil
	}
	var starts []int
	for _, w := range windows {
		for t := w.Start; t+duration <= w.End; t += step {
			clear := true
			for _, b := range busy {
				if overlaps(t, t+duration, b.Start, b.End) {
					clear = false
					break
				}
			}
			if clear {
				starts = append(starts, t)
			}
		}
	}
	sort.Ints(starts)
	return starts
}

// travelFor estimates round-trip travel for home-service requests; nil when
// the request is on-premises.
func (e *Engine) travelFor(ctx context.Context, vendor models.Vendor, q SlotQuery) *models.TravelEstimate {
	if !q.IsHomeService || q.CustomerLocation == nil || e.Travel == nil {
		return nil
	}
	est := e.Travel.Estimate(ctx, vendor, *q.CustomerLocation)
	return &est
}

// requiredDuration is the full span a booking occupies: service durations
// with add-ons, explicit buffers, and round-trip travel for home service.
func requiredDuration(specs []ServiceSpec, q SlotQuery, travel *models.TravelEstimate) int {
	total := q.BufferBefore + q.BufferAfter
	for _, s := range specs {
		total += s.TotalMinutes()
	}
	if travel != nil {
		total += travel.TimeInMinutes * 2
	}
	return total
}

// SingleStaffSlots produces every step-aligned start on one staff member's
// working day that fits the requested services. Ordered ascending; empty
// when the day cannot fit the duration.
func (e *Engine) SingleStaffSlots(ctx context.Context, vendor models.Vendor, staff models.Staff, specs []ServiceSpec, q SlotQuery) ([]models.Slot, error) {
	day, err := e.Availability.Resolve(ctx, staff, q.Date)
	if err != nil {
		return nil, err
	}
	if !day.WeekdayEnabled {
		return nil, nil
	}
	return e.slotsForDay(ctx, vendor, staff, day, specs, q)
}

// slotsForDay generates the staff member's slots from an already-resolved
// day schedule.
func (e *Engine) slotsForDay(ctx context.Context, vendor models.Vendor, staff models.Staff, day DayAvailability, specs []ServiceSpec, q SlotQuery) ([]models.Slot, error) {
	if len(day.Windows) == 0 {
		return nil, nil
	}

	busy, err := e.busyIntervals(ctx, vendor.ID, staff.ID, q.Date, day)
	if err != nil {
		return nil, err
	}

	travel := e.travelFor(ctx, vendor, q)
	duration := requiredDuration(specs, q, travel)
	if duration <= 0 {
		return nil, nil
	}

	starts := fitStarts(day.Windows, busy, duration, e.step())
	slots := make([]models.Slot, 0, len(starts))
	for _, t := range starts {
		slots = append(slots, models.Slot{
			Date:      q.Date,
			Start:     t,
			End:       t + duration,
			StaffID:   staff.ID,
			StaffName: staff.Name,
			Travel:    travel,
		})
	}
	return slots, nil
}
