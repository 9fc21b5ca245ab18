package models

import "time"

// Appointment lifecycle states. A temp-locked record is a provisional hold;
// it either becomes confirmed or disappears (released/expired).
const (
	StatusTempLocked         = "temp-locked"
	StatusConfirmed          = "confirmed"
	StatusPartiallyCompleted = "partially-completed"
	StatusCompleted          = "completed"
	StatusCancelled          = "cancelled"
)

// AddOnItem is one add-on folded into a booked service item.
type AddOnItem struct {
	AddOnID         string  `bson:"addon_id" json:"addon_id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
	Price           float64 `bson:"price" json:"price"`
}

// ServiceItem is one leg of a (possibly multi-service) appointment. Items
// within one appointment are chained: item[i+1].Start == item[i].End.
type ServiceItem struct {
	ServiceID            string      `bson:"service_id" json:"service_id"`
	ServiceName          string      `bson:"service_name" json:"service_name"`
	StaffID              string      `bson:"staff_id" json:"staff_id"`
	StaffName            string      `bson:"staff_name" json:"staff_name"`
	Start                int         `bson:"start" json:"start"` // minutes from midnight
	End                  int         `bson:"end" json:"end"`
	BaseDurationMinutes  int         `bson:"base_duration_minutes" json:"base_duration_minutes"`
	TotalDurationMinutes int         `bson:"total_duration_minutes" json:"total_duration_minutes"` // base + add-ons
	Amount               float64     `bson:"amount" json:"amount"`
	AddOns               []AddOnItem `bson:"addons,omitempty" json:"addons,omitempty"`
}

// PaymentDetails is opaque payment metadata persisted at confirm time.
// Charging happens outside this core.
type PaymentDetails struct {
	Method    string  `bson:"method" json:"method"`
	Reference string  `bson:"reference,omitempty" json:"reference,omitempty"`
	Currency  string  `bson:"currency" json:"currency"`
	Amount    float64 `bson:"amount" json:"amount"`
}

// Appointment is both the temporary hold (status temp-locked) and the
// durable booking it becomes. While temp-locked, LockToken is the opaque
// credential required to confirm or release it and LockExpiration bounds
// its life; a hold past its expiration is invisible to conflict checks
// even before the sweeper removes it.
type Appointment struct {
	ID             string         `bson:"id" json:"id"`
	VendorID       string         `bson:"vendor_id" json:"vendor_id"`
	ClientID       string         `bson:"client_id" json:"client_id"`
	PackageID      string         `bson:"package_id,omitempty" json:"package_id,omitempty"`
	Date           string         `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start          int            `bson:"start" json:"start"`
	End            int            `bson:"end" json:"end"`
	Status         string         `bson:"status" json:"status"`
	LockToken      string         `bson:"lock_token,omitempty" json:"-"`
	LockExpiration time.Time      `bson:"lock_expiration,omitempty" json:"lock_expiration,omitempty"`
	ServiceItems   []ServiceItem  `bson:"service_items" json:"service_items"`
	TotalAmount    float64        `bson:"total_amount" json:"total_amount"`
	Discount       float64        `bson:"discount,omitempty" json:"discount,omitempty"`
	Fees           float64        `bson:"fees,omitempty" json:"fees,omitempty"`
	Payment        PaymentDetails `bson:"payment,omitempty" json:"payment,omitempty"`
	HomeService    bool           `bson:"home_service" json:"home_service"`
	CancelReason   string         `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updated_at"`
}

// ActiveAt reports whether the record still reserves its time range at the
// given instant. Expiry is a computed predicate, never a sweep side effect.
func (a Appointment) ActiveAt(now time.Time) bool {
	switch a.Status {
	case StatusTempLocked:
		return now.Before(a.LockExpiration)
	case StatusConfirmed, StatusPartiallyCompleted, StatusCompleted:
		return true
	default:
		return false
	}
}
