// File: services/discovery/discovery.go
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"
	"bookwell/services/booking"
	"bookwell/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache TTLs. Slot lists are the most volatile so they get the shortest
// window; a stale slot is harmless because acquire re-checks live state.
const (
	vendorCacheTTL  = 10 * time.Minute
	serviceCacheTTL = 5 * time.Minute
	staffCacheTTL   = 5 * time.Minute
	slotCacheTTL    = 3 * time.Minute
)

// DefaultDiscoveryService serves catalogue reads and slot previews through
// a Redis read-through cache. A cache failure degrades to a direct read,
// never to an error.
type DefaultDiscoveryService struct {
	Catalog catalogRepo.CatalogRepository
	Quotes  *booking.QuoteService
	Cache   *redis.Client
}

func NewDiscoveryService(catalog catalogRepo.CatalogRepository, quotes *booking.QuoteService) *DefaultDiscoveryService {
	return &DefaultDiscoveryService{
		Catalog: catalog,
		Quotes:  quotes,
		Cache:   utils.GetCacheClient(),
	}
}

// cached runs the read-through pattern: hit Redis, fall back to load, then
// best-effort populate. dest must be a pointer.
func (s *DefaultDiscoveryService) cached(ctx context.Context, key string, ttl time.Duration, dest interface{}, load func() (interface{}, error)) error {
	logger := utils.GetLogger()

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, key).Bytes()
		if err == nil {
			if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
				return nil
			}
			// Corrupt entry: drop it and reload.
			s.Cache.Del(ctx, key)
		} else if err != redis.Nil {
			logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	value, err := load()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode cache value: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, raw, ttl).Err(); err != nil {
			logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// SearchVendors returns active vendors within the radius, ranked by
// distance from the search point.
func (s *DefaultDiscoveryService) SearchVendors(ctx context.Context, criteria catalogRepo.VendorSearchCriteria) ([]models.VendorDTO, error) {
	key := fmt.Sprintf("discovery:vendors:%.4f:%.4f:%.1f:%s",
		criteria.Lat, criteria.Lng, criteria.RadiusKm, criteria.Category)

	var dtos []models.VendorDTO
	err := s.cached(ctx, key, vendorCacheTTL, &dtos, func() (interface{}, error) {
		vendors, err := s.Catalog.SearchVendors(ctx, criteria)
		if err != nil {
			return nil, fmt.Errorf("vendor search failed: %w", err)
		}
		out := make([]models.VendorDTO, 0, len(vendors))
		for _, v := range vendors {
			out = append(out, models.VendorDTO{
				ID:          v.ID,
				Name:        v.Name,
				Category:    v.Category,
				Currency:    v.Currency,
				Address:     v.Address,
				LocationGeo: v.LocationGeo,
				HomeService: v.HomeService,
				Rating:      v.Rating,
				DistanceKm:  utils.Haversine(criteria.Lat, criteria.Lng, v.LocationGeo.Lat(), v.LocationGeo.Lng()),
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
		return out, nil
	})
	return dtos, err
}

// VendorServices returns the vendor's active services grouped by category.
func (s *DefaultDiscoveryService) VendorServices(ctx context.Context, vendorID string) (map[string][]models.ServiceOffering, error) {
	logger := utils.GetLogger()
	key := "discovery:services:" + vendorID

	var grouped map[string][]models.ServiceOffering
	err := s.cached(ctx, key, serviceCacheTTL, &grouped, func() (interface{}, error) {
		services, err := s.Catalog.GetServicesByVendor(ctx, vendorID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch services: %w", err)
		}
		out := make(map[string][]models.ServiceOffering)
		for _, svc := range services {
			if !svc.Active {
				continue
			}
			// Malformed catalogue entries never reach clients.
			if bad := booking.ValidateService(svc); len(bad) > 0 {
				logger.Warn("skipping invalid service",
					zap.String("serviceID", svc.ID), zap.Any("violations", bad))
				continue
			}
			category := svc.Category
			if category == "" {
				category = "general"
			}
			out[category] = append(out[category], svc)
		}
		return out, nil
	})
	return grouped, err
}

// VendorStaff returns the vendor's active staff as public projections.
func (s *DefaultDiscoveryService) VendorStaff(ctx context.Context, vendorID string) ([]models.StaffDTO, error) {
	logger := utils.GetLogger()
	key := "discovery:staff:" + vendorID

	var dtos []models.StaffDTO
	err := s.cached(ctx, key, staffCacheTTL, &dtos, func() (interface{}, error) {
		staff, err := s.Catalog.GetStaffByVendor(ctx, vendorID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch staff: %w", err)
		}
		out := make([]models.StaffDTO, 0, len(staff))
		for _, st := range staff {
			if !st.Active {
				continue
			}
			if bad := booking.ValidateStaff(st); len(bad) > 0 {
				logger.Warn("skipping invalid staff record",
					zap.String("staffID", st.ID), zap.Any("violations", bad))
				continue
			}
			out = append(out, models.StaffDTO{ID: st.ID, Name: st.Name, ServiceIDs: st.ServiceIDs})
		}
		return out, nil
	})
	return dtos, err
}

// slotKey folds every query field that changes the result into the key.
func slotKey(q booking.SlotQuery) string {
	loc := ""
	if q.CustomerLocation != nil {
		loc = fmt.Sprintf("%.4f:%.4f", q.CustomerLocation.Lat(), q.CustomerLocation.Lng())
	}
	return fmt.Sprintf("discovery:slots:%s:%s:%s:%v:%v:%s:%v:%v:%s:%d:%d",
		q.VendorID, q.StaffID, q.Date, q.ServiceIDs, q.AddOnIDs,
		q.PackageID, q.IsHomeService, q.IsWeddingService, loc,
		q.BufferBefore, q.BufferAfter)
}

// Slots returns the candidate slot list for the query, cache-first.
func (s *DefaultDiscoveryService) Slots(ctx context.Context, q booking.SlotQuery) ([]models.Slot, error) {
	quote, err := s.Quote(ctx, q)
	if err != nil {
		return nil, err
	}
	return quote.Slots, nil
}

// Quote returns the priced preview with slots, cache-first. Errors (bad
// vendor, no staff) are never cached.
func (s *DefaultDiscoveryService) Quote(ctx context.Context, q booking.SlotQuery) (*booking.QuoteResult, error) {
	var quote booking.QuoteResult
	err := s.cached(ctx, slotKey(q), slotCacheTTL, &quote, func() (interface{}, error) {
		return s.Quotes.Quote(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
