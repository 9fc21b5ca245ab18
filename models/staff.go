package models

// Window is a half-open [Start, End) interval in minutes from midnight.
type Window struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// DayAvailability is a staff member's recurring availability for one weekday.
type DayAvailability struct {
	IsAvailable bool     `bson:"isAvailable" json:"isAvailable"`
	Slots       []Window `bson:"slots" json:"slots"`
}

// Staff is one bookable person working for a vendor. Weekly is keyed by
// lowercase weekday name ("monday" .. "sunday").
type Staff struct {
	ID         string                     `bson:"id" json:"id"`
	VendorID   string                     `bson:"vendor_id" json:"vendor_id"`
	Name       string                     `bson:"name" json:"name"`
	Active     bool                       `bson:"active" json:"active"`
	ServiceIDs []string                   `bson:"service_ids" json:"service_ids"` // services this staff is qualified for
	Weekly     map[string]DayAvailability `bson:"weekly" json:"weekly"`
}

// QualifiedFor reports whether the staff member can deliver every requested
// service. An empty ServiceIDs list means unrestricted.
func (s Staff) QualifiedFor(serviceIDs []string) bool {
	if len(s.ServiceIDs) == 0 {
		return true
	}
	allowed := make(map[string]struct{}, len(s.ServiceIDs))
	for _, id := range s.ServiceIDs {
		allowed[id] = struct{}{}
	}
	for _, id := range serviceIDs {
		if _, ok := allowed[id]; !ok {
			return false
		}
	}
	return true
}

// BlockedTime is an ad hoc unavailable interval (vacation, break) for one
// staff member on one calendar date.
type BlockedTime struct {
	BlockID  string `bson:"block_id" json:"block_id"`
	VendorID string `bson:"vendor_id" json:"vendor_id"`
	StaffID  string `bson:"staff_id" json:"staff_id"`
	Date     string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start    int    `bson:"start" json:"start"`
	End      int    `bson:"end" json:"end"`
	Reason   string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// StaffDTO is the public projection returned by discovery.
type StaffDTO struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ServiceIDs []string `json:"serviceIds,omitempty"`
}
