package booking

import (
	"context"
	"fmt"

	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"
)

// QuoteLine is one service's share of a quote.
type QuoteLine struct {
	ServiceID    string   `json:"serviceId"`
	ServiceName  string   `json:"serviceName"`
	BaseMinutes  int      `json:"baseMinutes"`
	TotalMinutes int      `json:"totalMinutes"`
	Amount       float64  `json:"amount"`
	AddOnNames   []string `json:"addOnNames,omitempty"`
}

// QuoteResult is a priced, timed preview of a prospective booking together
// with the slots that can host it. Nothing is reserved by quoting.
type QuoteResult struct {
	VendorID     string                 `json:"vendorId"`
	Date         string                 `json:"date"`
	Lines        []QuoteLine            `json:"lines"`
	TotalMinutes int                    `json:"totalMinutes"`
	TotalAmount  float64                `json:"totalAmount"`
	Currency     string                 `json:"currency"`
	Travel       *models.TravelEstimate `json:"travelTimeInfo,omitempty"`
	Slots        []models.Slot          `json:"slots"`
}

// QuoteService resolves a slot query into specs, prices them, and runs the
// matching slot algorithm.
type QuoteService struct {
	Catalog catalogRepo.CatalogRepository
	Engine  *Engine
}

// ResolveSpecs loads and pairs the requested services and add-ons. Every
// add-on must extend one of the requested services.
func (s *QuoteService) ResolveSpecs(ctx context.Context, q SlotQuery) ([]ServiceSpec, error) {
	services, err := s.Catalog.GetServicesByIDs(ctx, q.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	serviceByID := make(map[string]models.ServiceOffering, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = svc
	}

	var addOns []models.AddOn
	if len(q.AddOnIDs) > 0 {
		addOns, err = s.Catalog.GetAddOnsByIDs(ctx, q.AddOnIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch add-ons: %w", err)
		}
	}
	addOnsByService := make(map[string][]models.AddOn)
	for _, a := range addOns {
		if _, ok := serviceByID[a.ServiceID]; !ok {
			return nil, NewClientError(fmt.Sprintf("add-on %s does not extend a requested service", a.ID))
		}
		addOnsByService[a.ServiceID] = append(addOnsByService[a.ServiceID], a)
	}

	specs := make([]ServiceSpec, 0, len(q.ServiceIDs))
	for _, id := range q.ServiceIDs {
		svc, ok := serviceByID[id]
		if !ok || !svc.Active {
			return nil, NewClientError(fmt.Sprintf("service %s not found", id))
		}
		if svc.VendorID != q.VendorID {
			return nil, NewClientError(fmt.Sprintf("service %s does not belong to vendor %s", id, q.VendorID))
		}
		specs = append(specs, ServiceSpec{Service: svc, AddOns: addOnsByService[id]})
	}
	return specs, nil
}

// Quote prices the request and attaches the bookable slots for the date.
func (s *QuoteService) Quote(ctx context.Context, q SlotQuery) (*QuoteResult, error) {
	vendor, err := s.Catalog.GetVendorByID(ctx, q.VendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendor: %w", err)
	}
	if vendor == nil || !vendor.Active {
		return nil, NewVendorNotFoundError(q.VendorID)
	}

	if q.IsWeddingService && q.PackageID != "" {
		pkg, err := s.Catalog.GetWeddingPackageByID(ctx, q.PackageID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch package: %w", err)
		}
		if pkg == nil || !pkg.Active {
			return nil, NewPackageNotFoundError(q.PackageID)
		}
		staff, err := s.Catalog.GetStaffByVendor(ctx, q.VendorID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch staff: %w", err)
		}
		slots, err := s.Engine.WeddingPackageSlots(ctx, *vendor, staff, *pkg, q)
		if err != nil {
			return nil, err
		}
		serviceIDs := make([]string, 0, len(pkg.Components))
		for _, c := range pkg.Components {
			serviceIDs = append(serviceIDs, c.ServiceID)
		}
		services, err := s.Catalog.GetServicesByIDs(ctx, serviceIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch package services: %w", err)
		}
		serviceByID := make(map[string]models.ServiceOffering, len(services))
		for _, svc := range services {
			serviceByID[svc.ID] = svc
		}
		total := 0
		for _, c := range pkg.Components {
			total += componentMinutes(c, serviceByID[c.ServiceID])
		}
		return &QuoteResult{
			VendorID:     q.VendorID,
			Date:         q.Date,
			TotalMinutes: total,
			TotalAmount:  SafeAmount(pkg.TotalPrice),
			Currency:     vendor.Currency,
			Slots:        slots,
		}, nil
	}

	specs, err := s.ResolveSpecs(ctx, q)
	if err != nil {
		return nil, err
	}

	var slots []models.Slot
	if q.StaffID == AnyStaff || q.StaffID == "" {
		var staff []models.Staff
		staff, err = s.Catalog.GetStaffByVendor(ctx, q.VendorID)
		if err == nil {
			slots, err = s.Engine.AnyStaffSlots(ctx, *vendor, staff, specs, q)
		}
	} else {
		var staff *models.Staff
		staff, err = s.Catalog.GetStaffByID(ctx, q.StaffID)
		if err == nil {
			if staff == nil || !staff.Active {
				err = NewAppointmentNotFoundErrorForStaff(q.StaffID)
			} else {
				slots, err = s.Engine.SingleStaffSlots(ctx, *vendor, *staff, specs, q)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	result := &QuoteResult{
		VendorID: q.VendorID,
		Date:     q.Date,
		Currency: vendor.Currency,
		Slots:    slots,
	}
	for _, spec := range specs {
		line := QuoteLine{
			ServiceID:    spec.Service.ID,
			ServiceName:  spec.Service.Name,
			BaseMinutes:  spec.BaseMinutes(),
			TotalMinutes: spec.TotalMinutes(),
			Amount:       spec.Amount(),
		}
		for _, a := range spec.AddOns {
			line.AddOnNames = append(line.AddOnNames, a.Name)
		}
		result.Lines = append(result.Lines, line)
		result.TotalMinutes += line.TotalMinutes
		result.TotalAmount += line.Amount
	}
	if len(slots) > 0 {
		result.Travel = slots[0].Travel
	}
	return result, nil
}
