package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	availabilityRepo "bookwell/database/repository/availability"
	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"
)

// DayAvailability is one staff member's resolved schedule for a calendar
// date: recurring working windows plus that day's ad hoc blocked intervals.
type DayAvailability struct {
	StaffID        string
	StaffName      string
	WeekdayEnabled bool
	Windows        []models.Window
	Blocked        []models.Window
}

// AvailabilityResolver turns staff weekly templates and blocked-time
// records into per-date schedules. Read-only.
type AvailabilityResolver struct {
	Catalog catalogRepo.CatalogRepository
	Blocked availabilityRepo.AvailabilityRepository
}

// weekdayKey maps a "YYYY-MM-DD" date onto the lowercase weekday name used
// as the Weekly map key.
func weekdayKey(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return strings.ToLower(t.Weekday().String()), nil
}

// Resolve computes the day schedule for one staff member.
func (r *AvailabilityResolver) Resolve(ctx context.Context, staff models.Staff, date string) (DayAvailability, error) {
	day := DayAvailability{StaffID: staff.ID, StaffName: staff.Name}

	key, err := weekdayKey(date)
	if err != nil {
		return day, err
	}
	weekly, ok := staff.Weekly[key]
	if !ok || !weekly.IsAvailable {
		return day, nil
	}
	day.WeekdayEnabled = true
	day.Windows = append(day.Windows, weekly.Slots...)
	sort.Slice(day.Windows, func(i, j int) bool { return day.Windows[i].Start < day.Windows[j].Start })

	blocked, err := r.Blocked.GetBlockedIntervals(ctx, staff.VendorID, staff.ID, date)
	if err != nil {
		return day, fmt.Errorf("failed to fetch blocked intervals: %w", err)
	}
	for _, b := range blocked {
		day.Blocked = append(day.Blocked, models.Window{Start: b.Start, End: b.End})
	}
	return day, nil
}

// NewAppointmentNotFoundErrorForStaff keeps the 404 taxonomy for a missing
// or inactive staff member.
func NewAppointmentNotFoundErrorForStaff(staffID string) error {
	return &Error{Code: CodeNotFound, Reason: ReasonNoStaffAvailable,
		Message: fmt.Sprintf("staff %s not found or inactive", staffID)}
}
