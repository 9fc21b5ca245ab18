package booking

import (
	"context"
	"testing"
	"time"

	"bookwell/models"
)

func weddingFixtures() (*memCatalogRepo, *memAppointmentRepo, []models.Staff, models.WeddingPackage) {
	catalog := newMemCatalogRepo()
	catalog.vendors[testVendorID] = testVendor()

	photographer := weekdayStaff("staff-photo", "Piotr", models.Window{Start: 8 * 60, End: 18 * 60})
	stylist := weekdayStaff("staff-style", "Sade", models.Window{Start: 9 * 60, End: 14 * 60})
	catalog.staff[photographer.ID] = photographer
	catalog.staff[stylist.ID] = stylist

	catalog.services["svc-makeup"] = models.ServiceOffering{
		ID: "svc-makeup", VendorID: testVendorID, Name: "Bridal Makeup", Duration: 60, Price: 100.0, Active: true,
	}
	catalog.services["svc-shoot"] = models.ServiceOffering{
		ID: "svc-shoot", VendorID: testVendorID, Name: "Photo Shoot", Duration: 90, Price: 250.0, Active: true,
	}

	pkg := models.WeddingPackage{
		ID:       "pkg-1",
		VendorID: testVendorID,
		Name:     "Classic Wedding",
		Active:   true,
		Components: []models.PackageComponent{
			{ServiceID: "svc-makeup", StaffID: "staff-style", Duration: 90, Price: 120.0},
			{ServiceID: "svc-shoot", StaffID: "staff-photo", Duration: "2 hours", Price: 300.0},
		},
		TotalPrice: 400.0,
	}
	catalog.packages[pkg.ID] = pkg

	return catalog, newMemAppointmentRepo(), []models.Staff{photographer, stylist}, pkg
}

func TestWeddingPackageSlotsChainAcrossStaff(t *testing.T) {
	catalog, appts, staff, pkg := weddingFixtures()
	engine := newTestEngine(catalog, appts, &memAvailabilityRepo{})

	slots, err := engine.WeddingPackageSlots(context.Background(), testVendor(), staff, pkg, SlotQuery{
		VendorID: testVendorID, Date: testMonday, IsWeddingService: true, PackageID: pkg.ID,
	})
	if err != nil {
		t.Fatalf("WeddingPackageSlots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected chained slots")
	}

	// Chain is 90 + 120 = 210 minutes. The stylist works 09:00-14:00, the
	// photographer 08:00-18:00, so the earliest feasible start is 09:00
	// and the latest leaves the stylist 90 minutes before 14:00.
	if slots[0].Start != 9*60 {
		t.Errorf("first start = %d, want 540", slots[0].Start)
	}
	for _, s := range slots {
		if s.End-s.Start != 210 {
			t.Errorf("slot [%d,%d) should span the full 210-minute chain", s.Start, s.End)
		}
		if s.StaffID != "staff-style" {
			t.Errorf("representative staff = %s, want the first component's staff-style", s.StaffID)
		}
	}
	last := slots[len(slots)-1]
	if last.Start != 12*60+30 {
		t.Errorf("last start = %d, want 750 (stylist done by 14:00)", last.Start)
	}
}

func TestWeddingPackageSlotsBusyComponentRejectsCandidate(t *testing.T) {
	catalog, appts, staff, pkg := weddingFixtures()

	// The photographer is booked 11:00-13:00; any candidate whose shoot leg
	// overlaps that range must vanish.
	appts.put(models.Appointment{
		ID: "photo-booked", VendorID: testVendorID, ClientID: "other", Date: testMonday,
		Status: models.StatusConfirmed,
		ServiceItems: []models.ServiceItem{
			{ServiceID: "svc-x", StaffID: "staff-photo", Start: 11 * 60, End: 13 * 60, TotalDurationMinutes: 120},
		},
	})

	engine := newTestEngine(catalog, appts, &memAvailabilityRepo{})
	slots, err := engine.WeddingPackageSlots(context.Background(), testVendor(), staff, pkg, SlotQuery{
		VendorID: testVendorID, Date: testMonday, IsWeddingService: true, PackageID: pkg.ID,
	})
	if err != nil {
		t.Fatalf("WeddingPackageSlots: %v", err)
	}
	for _, s := range slots {
		shootStart := s.Start + 90
		shootEnd := shootStart + 120
		if overlaps(shootStart, shootEnd, 11*60, 13*60) {
			t.Errorf("slot starting %d puts the shoot [%d,%d) over the photographer's booking", s.Start, shootStart, shootEnd)
		}
	}
}

func TestWeddingPackageSlotsUnassignedComponentPicksQualifiedStaff(t *testing.T) {
	catalog, appts, _, pkg := weddingFixtures()
	// Drop the explicit assignments; qualification decides who serves each leg.
	stylist := catalog.staff["staff-style"]
	stylist.ServiceIDs = []string{"svc-makeup"}
	catalog.staff["staff-style"] = stylist
	photographer := catalog.staff["staff-photo"]
	photographer.ServiceIDs = []string{"svc-shoot"}
	catalog.staff["staff-photo"] = photographer

	pkg.Components[0].StaffID = ""
	pkg.Components[1].StaffID = ""
	staff := []models.Staff{photographer, stylist}

	engine := newTestEngine(catalog, appts, &memAvailabilityRepo{})
	slots, err := engine.WeddingPackageSlots(context.Background(), testVendor(), staff, pkg, SlotQuery{
		VendorID: testVendorID, Date: testMonday, IsWeddingService: true, PackageID: pkg.ID,
	})
	if err != nil {
		t.Fatalf("WeddingPackageSlots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("qualified fallback assignment should still produce slots")
	}
	if slots[0].StaffID != "staff-style" {
		t.Errorf("first component should resolve to the stylist, got %s", slots[0].StaffID)
	}
}

func TestWeddingPackageSlotsDisabledWeekday(t *testing.T) {
	catalog, appts, staff, pkg := weddingFixtures()
	stylist := catalog.staff["staff-style"]
	stylist.Weekly = map[string]models.DayAvailability{}
	catalog.staff["staff-style"] = stylist
	staff = []models.Staff{catalog.staff["staff-photo"], stylist}

	engine := newTestEngine(catalog, appts, &memAvailabilityRepo{})
	slots, err := engine.WeddingPackageSlots(context.Background(), testVendor(), staff, pkg, SlotQuery{
		VendorID: testVendorID, Date: testMonday, IsWeddingService: true, PackageID: pkg.ID,
	})
	if err != nil {
		t.Fatalf("WeddingPackageSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("one staff off duty must block the whole package, got %d slots", len(slots))
	}
}

func TestWeddingPackageSlotsComponentDurationFallback(t *testing.T) {
	catalog, appts, staff, pkg := weddingFixtures()
	// The makeup component carries no duration of its own; the service's
	// 60 minutes must apply, and booking the same package must hold the
	// exact span discovery advertised.
	pkg.Components[0].Duration = nil
	catalog.packages[pkg.ID] = pkg

	engine := newTestEngine(catalog, appts, &memAvailabilityRepo{})
	slots, err := engine.WeddingPackageSlots(context.Background(), testVendor(), staff, pkg, SlotQuery{
		VendorID: testVendorID, Date: testMonday, IsWeddingService: true, PackageID: pkg.ID,
	})
	if err != nil {
		t.Fatalf("WeddingPackageSlots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("fallback duration should still produce slots")
	}
	for _, s := range slots {
		if s.End-s.Start != 180 {
			t.Errorf("slot [%d,%d) should span 60+120 minutes", s.Start, s.End)
		}
	}

	svc := &DefaultReservationService{
		Catalog:      catalog,
		Appointments: appts,
		Conflicts:    &ConflictChecker{Appointments: appts, Clock: fixedClock},
		LockTTL:      10 * time.Minute,
		Clock:        fixedClock,
	}
	grant, err := svc.AcquireLock(context.Background(), ReservationRequest{
		VendorID: testVendorID, ClientID: "bride", Date: testMonday,
		Start: slots[0].Start, PackageID: pkg.ID,
	})
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	held, err := appts.GetByID(context.Background(), grant.AppointmentID)
	if err != nil || held == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if held.End-held.Start != 180 {
		t.Errorf("hold [%d,%d) disagrees with the discovered 180-minute span", held.Start, held.End)
	}
}

func TestAnyStaffSlotsNoStaffAvailable(t *testing.T) {
	catalog := newMemCatalogRepo()
	catalog.vendors[testVendorID] = testVendor()
	engine := newTestEngine(catalog, newMemAppointmentRepo(), &memAvailabilityRepo{})

	specs := []ServiceSpec{{Service: models.ServiceOffering{
		ID: "svc-1", VendorID: testVendorID, Duration: 60, Active: true,
	}}}
	_, err := engine.AnyStaffSlots(context.Background(), testVendor(), nil, specs, SlotQuery{
		VendorID: testVendorID, StaffID: AnyStaff, Date: testMonday,
	})
	if !HasReason(err, ReasonNoStaffAvailable) {
		t.Fatalf("vendor without staff: expected NO_STAFF_AVAILABLE, got %v", err)
	}

	// Staff exist but nobody works Mondays.
	off := models.Staff{ID: "staff-off", VendorID: testVendorID, Name: "Noor", Active: true,
		ServiceIDs: []string{"svc-1"}, Weekly: map[string]models.DayAvailability{}}
	catalog.staff[off.ID] = off
	_, err = engine.AnyStaffSlots(context.Background(), testVendor(), []models.Staff{off}, specs, SlotQuery{
		VendorID: testVendorID, StaffID: AnyStaff, Date: testMonday,
	})
	if !HasReason(err, ReasonNoStaffAvailable) {
		t.Fatalf("weekday disabled for all staff: expected NO_STAFF_AVAILABLE, got %v", err)
	}
}

func TestResolveMergesBlockedIntervals(t *testing.T) {
	catalog := newMemCatalogRepo()
	staff := weekdayStaff("staff-1", "Amara", models.Window{Start: 9 * 60, End: 17 * 60})
	catalog.staff[staff.ID] = staff
	blocked := &memAvailabilityRepo{blocked: []models.BlockedTime{
		{BlockID: "b1", VendorID: testVendorID, StaffID: "staff-1", Date: testMonday, Start: 12 * 60, End: 13 * 60},
		{BlockID: "b2", VendorID: testVendorID, StaffID: "staff-1", Date: "2026-09-08", Start: 9 * 60, End: 10 * 60},
	}}
	resolver := &AvailabilityResolver{Catalog: catalog, Blocked: blocked}

	day, err := resolver.Resolve(context.Background(), staff, testMonday)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !day.WeekdayEnabled {
		t.Fatal("Monday should be enabled")
	}
	if len(day.Blocked) != 1 || day.Blocked[0] != (models.Window{Start: 12 * 60, End: 13 * 60}) {
		t.Fatalf("blocked = %+v, want only Monday's interval", day.Blocked)
	}
}
