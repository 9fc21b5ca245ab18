package models

// GeoPoint is a GeoJSON point: Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Lat returns the latitude component, 0 when the point is malformed.
func (g GeoPoint) Lat() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[1]
}

// Lng returns the longitude component, 0 when the point is malformed.
func (g GeoPoint) Lng() float64 {
	if len(g.Coordinates) < 2 {
		return 0
	}
	return g.Coordinates[0]
}

// TravelEstimate is the result of a travel-time lookup for at-home services.
// Source is "computed" when the routing provider answered, "fallback" when
// the conservative default was substituted.
type TravelEstimate struct {
	TimeInMinutes int     `json:"timeInMinutes"`
	DistanceInKm  float64 `json:"distanceInKm"`
	Source        string  `json:"source"`
}

const (
	TravelSourceComputed = "computed"
	TravelSourceFallback = "fallback"
)
