package models

import "time"

// Vendor is a business offering bookable services.
type Vendor struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Category    string    `bson:"category" json:"category"` // e.g., "salon", "spa", "photography"
	Currency    string    `bson:"currency" json:"currency"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	LocationGeo GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	HomeService bool      `bson:"homeService" json:"homeService"` // vendor travels to the customer
	Active      bool      `bson:"active" json:"active"`
	Rating      float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// VendorDTO is the public projection returned by discovery.
type VendorDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Currency    string   `json:"currency"`
	Address     string   `json:"address,omitempty"`
	LocationGeo GeoPoint `json:"locationGeo"`
	HomeService bool     `json:"homeService"`
	Rating      float64  `json:"rating,omitempty"`
	DistanceKm  float64  `json:"distanceKm"`
}
