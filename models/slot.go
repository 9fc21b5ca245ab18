package models

// Slot is a candidate bookable time window returned by discovery. It is
// ephemeral: recomputed on every discovery call, never persisted, and not
// itself a reservation.
type Slot struct {
	Date      string          `json:"date"` // "YYYY-MM-DD"
	Start     int             `json:"start"`
	End       int             `json:"end"`
	StaffID   string          `json:"staffId"`
	StaffName string          `json:"staffName"`
	Travel    *TravelEstimate `json:"travelTimeInfo,omitempty"`
}
