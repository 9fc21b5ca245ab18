package booking

import (
	"context"
	"sync"
	"time"

	appointmentRepo "bookwell/database/repository/appointment"
	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"
)

// memAppointmentRepo is an in-memory AppointmentRepository with the same
// filtering semantics as the Mongo implementation, including the atomic
// overlap guard in InsertHoldIfFree.
type memAppointmentRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{byID: make(map[string]*models.Appointment)}
}

func (r *memAppointmentRepo) put(a models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := a
	r.byID[a.ID] = &cp
}

func (r *memAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[appointmentID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memAppointmentRepo) FindActive(ctx context.Context, vendorID, staffID, date string, now time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.byID {
		if a.VendorID != vendorID || a.Date != date || !a.ActiveAt(now) {
			continue
		}
		for _, item := range a.ServiceItems {
			if item.StaffID == staffID {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) findOverlappingLocked(vendorID, staffID, date string, start, end int, now time.Time) []models.Appointment {
	var out []models.Appointment
	for _, a := range r.byID {
		if a.VendorID != vendorID || a.Date != date || !a.ActiveAt(now) {
			continue
		}
		for _, item := range a.ServiceItems {
			if item.StaffID == staffID && item.Start < end && item.End > start {
				out = append(out, *a)
				break
			}
		}
	}
	return out
}

func (r *memAppointmentRepo) FindOverlapping(ctx context.Context, vendorID, staffID, date string, start, end int, now time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findOverlappingLocked(vendorID, staffID, date, start, end, now), nil
}

func (r *memAppointmentRepo) FindActiveHoldByClient(ctx context.Context, clientID, vendorID string, now time.Time) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.ClientID == clientID && a.VendorID == vendorID &&
			a.Status == models.StatusTempLocked && now.Before(a.LockExpiration) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAppointmentRepo) FindHoldByToken(ctx context.Context, lockToken string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.LockToken == lockToken && a.Status == models.StatusTempLocked {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAppointmentRepo) InsertHoldIfFree(ctx context.Context, hold *models.Appointment, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range hold.ServiceItems {
		if len(r.findOverlappingLocked(hold.VendorID, item.StaffID, hold.Date, item.Start, item.End, now)) > 0 {
			return appointmentRepo.ErrSlotTaken
		}
	}
	cp := *hold
	r.byID[hold.ID] = &cp
	return nil
}

func (r *memAppointmentRepo) ConfirmHold(ctx context.Context, appointmentID, lockToken string, now time.Time, payment models.PaymentDetails, discount, fees float64) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[appointmentID]
	if !ok || a.LockToken != lockToken || a.Status != models.StatusTempLocked || !now.Before(a.LockExpiration) {
		return nil, appointmentRepo.ErrNoMatch
	}
	a.Status = models.StatusConfirmed
	a.Payment = payment
	a.Discount = discount
	a.Fees = fees
	a.UpdatedAt = now
	cp := *a
	return &cp, nil
}

func (r *memAppointmentRepo) DeleteHold(ctx context.Context, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[appointmentID]; ok && a.Status == models.StatusTempLocked {
		delete(r.byID, appointmentID)
	}
	return nil
}

func (r *memAppointmentRepo) UpdateStatus(ctx context.Context, appointmentID, status, reason string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[appointmentID]
	if !ok {
		return nil, appointmentRepo.ErrNoMatch
	}
	a.Status = status
	if reason != "" {
		a.CancelReason = reason
	}
	cp := *a
	return &cp, nil
}

func (r *memAppointmentRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.byID {
		if a.Status == models.StatusTempLocked && !now.Before(a.LockExpiration) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *memAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// memCatalogRepo serves a fixed catalogue.
type memCatalogRepo struct {
	vendors  map[string]models.Vendor
	services map[string]models.ServiceOffering
	addOns   map[string]models.AddOn
	staff    map[string]models.Staff
	packages map[string]models.WeddingPackage
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{
		vendors:  make(map[string]models.Vendor),
		services: make(map[string]models.ServiceOffering),
		addOns:   make(map[string]models.AddOn),
		staff:    make(map[string]models.Staff),
		packages: make(map[string]models.WeddingPackage),
	}
}

func (r *memCatalogRepo) GetVendorByID(ctx context.Context, vendorID string) (*models.Vendor, error) {
	if v, ok := r.vendors[vendorID]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *memCatalogRepo) SearchVendors(ctx context.Context, criteria catalogRepo.VendorSearchCriteria) ([]models.Vendor, error) {
	var out []models.Vendor
	for _, v := range r.vendors {
		if criteria.Category == "" || v.Category == criteria.Category {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) GetServicesByVendor(ctx context.Context, vendorID string) ([]models.ServiceOffering, error) {
	var out []models.ServiceOffering
	for _, s := range r.services {
		if s.VendorID == vendorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) GetServicesByIDs(ctx context.Context, serviceIDs []string) ([]models.ServiceOffering, error) {
	var out []models.ServiceOffering
	for _, id := range serviceIDs {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) GetAddOnsByIDs(ctx context.Context, addOnIDs []string) ([]models.AddOn, error) {
	var out []models.AddOn
	for _, id := range addOnIDs {
		if a, ok := r.addOns[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) GetStaffByVendor(ctx context.Context, vendorID string) ([]models.Staff, error) {
	var out []models.Staff
	for _, s := range r.staff {
		if s.VendorID == vendorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) GetStaffByID(ctx context.Context, staffID string) (*models.Staff, error) {
	if s, ok := r.staff[staffID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *memCatalogRepo) GetWeddingPackageByID(ctx context.Context, packageID string) (*models.WeddingPackage, error) {
	if p, ok := r.packages[packageID]; ok {
		return &p, nil
	}
	return nil, nil
}

// memAvailabilityRepo serves fixed blocked intervals.
type memAvailabilityRepo struct {
	blocked []models.BlockedTime
}

func (r *memAvailabilityRepo) GetBlockedIntervals(ctx context.Context, vendorID, staffID, date string) ([]models.BlockedTime, error) {
	var out []models.BlockedTime
	for _, b := range r.blocked {
		if b.VendorID == vendorID && b.StaffID == staffID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memAvailabilityRepo) GetBlockedForVendor(ctx context.Context, vendorID, date string) ([]models.BlockedTime, error) {
	var out []models.BlockedTime
	for _, b := range r.blocked {
		if b.VendorID == vendorID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memAvailabilityRepo) CreateBlockedInterval(ctx context.Context, blocked *models.BlockedTime) error {
	r.blocked = append(r.blocked, *blocked)
	return nil
}

func (r *memAvailabilityRepo) RemoveBlockedInterval(ctx context.Context, blockID string) error {
	for i, b := range r.blocked {
		if b.BlockID == blockID {
			r.blocked = append(r.blocked[:i], r.blocked[i+1:]...)
			return nil
		}
	}
	return nil
}

// memNotifier records emitted events in order.
type memNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *memNotifier) Notify(ctx context.Context, appointmentID, event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, appointmentID+":"+event)
}

func (n *memNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

// fixedTravel returns a constant estimate.
type fixedTravel struct {
	est models.TravelEstimate
}

func (t fixedTravel) Estimate(ctx context.Context, vendor models.Vendor, dest models.GeoPoint) models.TravelEstimate {
	return t.est
}
