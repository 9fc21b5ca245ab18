package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"bookwell/config"
	"bookwell/models"
	"bookwell/utils"

	"go.uber.org/zap"
)

// TravelEstimator estimates travel time from a vendor's base to a customer
// location for at-home services. Implementations never return an error: a
// routing failure degrades to the conservative fallback estimate.
type TravelEstimator interface {
	Estimate(ctx context.Context, vendor models.Vendor, dest models.GeoPoint) models.TravelEstimate
}

// RoutingTravelEstimator calls the external routing provider with a bounded
// timeout and substitutes the documented fallback on any failure.
type RoutingTravelEstimator struct {
	Client          *http.Client
	BaseURL         string
	APIKey          string
	FallbackMinutes int
	FallbackKm      float64
}

// NewRoutingTravelEstimator builds the estimator from app config.
func NewRoutingTravelEstimator() *RoutingTravelEstimator {
	cfg := config.AppConfig
	timeout := time.Duration(cfg.RoutingTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RoutingTravelEstimator{
		Client:          &http.Client{Timeout: timeout},
		BaseURL:         cfg.RoutingBaseURL,
		APIKey:          cfg.RoutingAPIKey,
		FallbackMinutes: cfg.FallbackTravelMins,
		FallbackKm:      cfg.FallbackTravelDistKm,
	}
}

// routingResponse mirrors the distance-matrix provider payload.
type routingResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

func (e *RoutingTravelEstimator) fallback() models.TravelEstimate {
	mins := e.FallbackMinutes
	if mins <= 0 {
		mins = 30
	}
	km := e.FallbackKm
	if km <= 0 {
		km = 10
	}
	return models.TravelEstimate{
		TimeInMinutes: mins,
		DistanceInKm:  km,
		Source:        models.TravelSourceFallback,
	}
}

// Estimate is a pure function of (vendor profile, destination). Bookings
// must proceed on routing outages, so every failure path returns the
// fallback rather than an error.
func (e *RoutingTravelEstimator) Estimate(ctx context.Context, vendor models.Vendor, dest models.GeoPoint) models.TravelEstimate {
	logger := utils.GetLogger()

	if e.APIKey == "" || len(dest.Coordinates) < 2 || len(vendor.LocationGeo.Coordinates) < 2 {
		return e.fallback()
	}

	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", vendor.LocationGeo.Lat(), vendor.LocationGeo.Lng()))
	q.Set("destinations", fmt.Sprintf("%f,%f", dest.Lat(), dest.Lng()))
	q.Set("key", e.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return e.fallback()
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		logger.Warn("routing provider unreachable, using fallback travel estimate",
			zap.String("vendorID", vendor.ID), zap.Error(err))
		return e.fallback()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("routing provider returned non-200, using fallback travel estimate",
			zap.String("vendorID", vendor.ID), zap.Int("status", resp.StatusCode))
		return e.fallback()
	}

	var parsed routingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return e.fallback()
	}
	if len(parsed.Rows) == 0 || len(parsed.Rows[0].Elements) == 0 {
		return e.fallback()
	}
	el := parsed.Rows[0].Elements[0]
	if el.Status != "OK" || el.Duration.Value <= 0 {
		return e.fallback()
	}

	return models.TravelEstimate{
		TimeInMinutes: int(math.Ceil(float64(el.Duration.Value) / 60.0)),
		DistanceInKm:  math.Round(float64(el.Distance.Value)/100) / 10,
		Source:        models.TravelSourceComputed,
	}
}
