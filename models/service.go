package models

// ServiceOffering is one bookable service in a vendor's catalogue.
// Duration and Price are stored heterogeneously in legacy documents (ints,
// floats, or strings like "1 hour"); every consumer must run them through
// booking.ParseDuration / booking.SafeAmount before doing arithmetic.
type ServiceOffering struct {
	ID       string      `bson:"id" json:"id"`
	VendorID string      `bson:"vendor_id" json:"vendor_id"`
	Name     string      `bson:"name" json:"name"`
	Category string      `bson:"category" json:"category"`
	Duration interface{} `bson:"duration" json:"duration"` // base duration, exclusive of add-ons
	Price    interface{} `bson:"price" json:"price"`
	Active   bool        `bson:"active" json:"active"`
}

// AddOn extends exactly one service within a booking; its duration stacks
// additively onto that service's base duration.
type AddOn struct {
	ID        string      `bson:"id" json:"id"`
	ServiceID string      `bson:"service_id" json:"service_id"`
	Name      string      `bson:"name" json:"name"`
	Duration  interface{} `bson:"duration" json:"duration"`
	Price     interface{} `bson:"price" json:"price"`
}

// PackageComponent is one ordered leg of a wedding package, possibly
// assigned to a dedicated staff member.
type PackageComponent struct {
	ServiceID string      `bson:"service_id" json:"service_id"`
	StaffID   string      `bson:"staff_id" json:"staff_id"`
	Duration  interface{} `bson:"duration" json:"duration"`
	Price     interface{} `bson:"price" json:"price"`
}

// WeddingPackage bundles multiple component services that must be scheduled
// as one contiguous sequence.
type WeddingPackage struct {
	ID         string             `bson:"id" json:"id"`
	VendorID   string             `bson:"vendor_id" json:"vendor_id"`
	Name       string             `bson:"name" json:"name"`
	Components []PackageComponent `bson:"components" json:"components"`
	TotalPrice interface{}        `bson:"total_price" json:"total_price"`
	Active     bool               `bson:"active" json:"active"`
}
