package booking

import (
	"context"
	"testing"

	"bookwell/models"
)

func newTestQuoteService() (*QuoteService, *memCatalogRepo) {
	catalog := newMemCatalogRepo()
	catalog.vendors[testVendorID] = testVendor()
	catalog.services["svc-1"] = models.ServiceOffering{
		ID: "svc-1", VendorID: testVendorID, Name: "Trim", Duration: 60, Price: 50.0, Active: true,
	}
	catalog.services["svc-2"] = models.ServiceOffering{
		ID: "svc-2", VendorID: testVendorID, Name: "Color", Duration: "45 min", Price: "60", Active: true,
	}
	catalog.addOns["addon-1"] = models.AddOn{
		ID: "addon-1", ServiceID: "svc-1", Name: "Deep Wash", Duration: 15, Price: 10.0,
	}
	staff := weekdayStaff("staff-1", "Amara", models.Window{Start: 9 * 60, End: 17 * 60})
	catalog.staff[staff.ID] = staff

	engine := newTestEngine(catalog, newMemAppointmentRepo(), &memAvailabilityRepo{})
	return &QuoteService{Catalog: catalog, Engine: engine}, catalog
}

func TestQuotePricesAndSlots(t *testing.T) {
	svc, _ := newTestQuoteService()

	quote, err := svc.Quote(context.Background(), SlotQuery{
		VendorID:   testVendorID,
		StaffID:    "staff-1",
		ServiceIDs: []string{"svc-1", "svc-2"},
		AddOnIDs:   []string{"addon-1"},
		Date:       testMonday,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	// 60+15 add-on plus 45 = 120 minutes, 50+10+60 = 120 currency units.
	if quote.TotalMinutes != 120 {
		t.Errorf("TotalMinutes = %d, want 120", quote.TotalMinutes)
	}
	if quote.TotalAmount != 120.0 {
		t.Errorf("TotalAmount = %v, want 120", quote.TotalAmount)
	}
	if quote.Currency != "USD" {
		t.Errorf("Currency = %s, want USD", quote.Currency)
	}
	if len(quote.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(quote.Lines))
	}
	if quote.Lines[0].TotalMinutes != 75 || quote.Lines[0].Amount != 60.0 {
		t.Errorf("line 0 = %+v, want 75 minutes / 60", quote.Lines[0])
	}
	if len(quote.Slots) == 0 {
		t.Error("expected bookable slots for the day")
	}
	for _, s := range quote.Slots {
		if s.End-s.Start != 120 {
			t.Errorf("slot [%d,%d) should span the quoted 120 minutes", s.Start, s.End)
		}
	}
}

func TestQuoteUnknownVendor(t *testing.T) {
	svc, _ := newTestQuoteService()
	_, err := svc.Quote(context.Background(), SlotQuery{VendorID: "ghost", ServiceIDs: []string{"svc-1"}, Date: testMonday})
	if !HasReason(err, ReasonVendorNotFound) {
		t.Fatalf("expected VENDOR_NOT_FOUND, got %v", err)
	}
}

func TestResolveSpecsRejectsOrphanAddOn(t *testing.T) {
	svc, catalog := newTestQuoteService()
	catalog.addOns["addon-x"] = models.AddOn{ID: "addon-x", ServiceID: "svc-unrelated", Name: "Stray", Duration: 10, Price: 5.0}

	_, err := svc.ResolveSpecs(context.Background(), SlotQuery{
		VendorID:   testVendorID,
		ServiceIDs: []string{"svc-1"},
		AddOnIDs:   []string{"addon-x"},
		Date:       testMonday,
	})
	if !HasReason(err, ReasonInvalidInput) {
		t.Fatalf("expected INVALID_INPUT for an orphan add-on, got %v", err)
	}
}

func TestQuoteAnyStaffMode(t *testing.T) {
	svc, catalog := newTestQuoteService()
	b := weekdayStaff("staff-0", "Ben", models.Window{Start: 8 * 60, End: 10 * 60})
	catalog.staff[b.ID] = b

	quote, err := svc.Quote(context.Background(), SlotQuery{
		VendorID:   testVendorID,
		StaffID:    AnyStaff,
		ServiceIDs: []string{"svc-1"},
		Date:       testMonday,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if len(quote.Slots) == 0 {
		t.Fatal("expected any-staff slots")
	}
	if quote.Slots[0].Start != 8*60 || quote.Slots[0].StaffID != "staff-0" {
		t.Errorf("first slot = %+v, want 08:00 on staff-0", quote.Slots[0])
	}
}
