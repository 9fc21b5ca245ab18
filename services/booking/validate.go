package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bookwell/models"
)

// FieldViolation names one invalid field and why it failed.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func violation(field, format string, args ...interface{}) FieldViolation {
	return FieldViolation{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ViolationsError converts a non-empty violation list into a client error.
// Returns nil for an empty list.
func ViolationsError(violations []FieldViolation) error {
	if len(violations) == 0 {
		return nil
	}
	msg := violations[0].Field + ": " + violations[0].Message
	if extra := len(violations) - 1; extra > 0 {
		msg = fmt.Sprintf("%s (and %d more)", msg, extra)
	}
	return NewClientError(msg)
}

// isZeroAmount distinguishes a legitimate zero price from a value
// SafeAmount zeroed out because it could not parse it.
func isZeroAmount(value interface{}) bool {
	switch v := value.(type) {
	case int:
		return v == 0
	case int32:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	case float32:
		return v == 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil && f == 0
	default:
		return false
	}
}

func validWindow(w models.Window) bool {
	return w.Start >= 0 && w.End <= 24*60 && w.Start < w.End
}

// ValidateService checks a catalogue service for structural problems.
// Heterogeneous Duration/Price values are validated through the
// normalizer, the same path booking uses.
func ValidateService(svc models.ServiceOffering) []FieldViolation {
	var out []FieldViolation
	if svc.ID == "" {
		out = append(out, violation("id", "is required"))
	}
	if svc.VendorID == "" {
		out = append(out, violation("vendor_id", "is required"))
	}
	if svc.Name == "" {
		out = append(out, violation("name", "is required"))
	}
	if ParseDuration(svc.Duration) <= 0 {
		out = append(out, violation("duration", "must normalize to a positive number of minutes, got %v", svc.Duration))
	}
	if svc.Price != nil && SafeAmount(svc.Price) == 0 && !isZeroAmount(svc.Price) {
		out = append(out, violation("price", "could not be normalized, got %v", svc.Price))
	}
	return out
}

// ValidateStaff checks a staff record: weekday keys must be real weekday
// names and every working window must be a sane intra-day interval.
func ValidateStaff(staff models.Staff) []FieldViolation {
	var out []FieldViolation
	if staff.ID == "" {
		out = append(out, violation("id", "is required"))
	}
	if staff.VendorID == "" {
		out = append(out, violation("vendor_id", "is required"))
	}
	if staff.Name == "" {
		out = append(out, violation("name", "is required"))
	}
	valid := map[string]bool{
		"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
		"friday": true, "saturday": true, "sunday": true,
	}
	for key, day := range staff.Weekly {
		if !valid[key] {
			out = append(out, violation("weekly", "unknown weekday key %q", key))
			continue
		}
		for i, w := range day.Slots {
			if !validWindow(w) {
				out = append(out, violation(fmt.Sprintf("weekly.%s.slots[%d]", key, i),
					"window [%d,%d) is not a valid intra-day interval", w.Start, w.End))
			}
		}
	}
	return out
}

// ValidateAppointment checks a hold or appointment before persistence:
// items must be present, individually well-formed, and chained back to
// back with no gap or overlap between consecutive legs.
func ValidateAppointment(appt models.Appointment) []FieldViolation {
	var out []FieldViolation
	if appt.VendorID == "" {
		out = append(out, violation("vendor_id", "is required"))
	}
	if appt.ClientID == "" {
		out = append(out, violation("client_id", "is required"))
	}
	if _, err := time.Parse("2006-01-02", appt.Date); err != nil {
		out = append(out, violation("date", "%q is not a valid YYYY-MM-DD date", appt.Date))
	}
	if len(appt.ServiceItems) == 0 {
		out = append(out, violation("service_items", "at least one item is required"))
		return out
	}
	for i, item := range appt.ServiceItems {
		field := fmt.Sprintf("service_items[%d]", i)
		if item.ServiceID == "" {
			out = append(out, violation(field+".service_id", "is required"))
		}
		if item.StaffID == "" {
			out = append(out, violation(field+".staff_id", "is required"))
		}
		if !validWindow(models.Window{Start: item.Start, End: item.End}) {
			out = append(out, violation(field, "range [%d,%d) is not a valid intra-day interval", item.Start, item.End))
		}
		if item.TotalDurationMinutes != item.End-item.Start {
			out = append(out, violation(field+".total_duration_minutes",
				"duration %d does not match range [%d,%d)", item.TotalDurationMinutes, item.Start, item.End))
		}
		if i > 0 && item.Start != appt.ServiceItems[i-1].End {
			out = append(out, violation(field+".start",
				"items must chain: expected %d, got %d", appt.ServiceItems[i-1].End, item.Start))
		}
	}
	if appt.Start != appt.ServiceItems[0].Start {
		out = append(out, violation("start", "must equal the first item's start"))
	}
	if appt.End != appt.ServiceItems[len(appt.ServiceItems)-1].End {
		out = append(out, violation("end", "must equal the last item's end"))
	}
	return out
}

// ValidateWeddingPackage checks a package definition.
func ValidateWeddingPackage(pkg models.WeddingPackage) []FieldViolation {
	var out []FieldViolation
	if pkg.ID == "" {
		out = append(out, violation("id", "is required"))
	}
	if pkg.VendorID == "" {
		out = append(out, violation("vendor_id", "is required"))
	}
	if len(pkg.Components) == 0 {
		out = append(out, violation("components", "at least one component is required"))
	}
	for i, c := range pkg.Components {
		field := fmt.Sprintf("components[%d]", i)
		if c.ServiceID == "" {
			out = append(out, violation(field+".service_id", "is required"))
		}
		if c.Duration != nil && ParseDuration(c.Duration) <= 0 {
			out = append(out, violation(field+".duration",
				"must normalize to a positive number of minutes, got %v", c.Duration))
		}
	}
	return out
}
