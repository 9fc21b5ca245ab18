package appointmentRepo

import (
	"reflect"
	"testing"

	"bookwell/models"
)

func TestDistinctStaffIDs(t *testing.T) {
	hold := &models.Appointment{
		ServiceItems: []models.ServiceItem{
			{StaffID: "staff-b", Start: 600, End: 660},
			{StaffID: "staff-a", Start: 660, End: 720},
			{StaffID: "staff-b", Start: 720, End: 750},
		},
	}

	got := distinctStaffIDs(hold)
	want := []string{"staff-a", "staff-b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("distinctStaffIDs = %v, want sorted dedup %v", got, want)
	}
}

func TestDistinctStaffIDsSingle(t *testing.T) {
	hold := &models.Appointment{
		ServiceItems: []models.ServiceItem{{StaffID: "staff-1", Start: 540, End: 600}},
	}
	if got := distinctStaffIDs(hold); len(got) != 1 || got[0] != "staff-1" {
		t.Fatalf("distinctStaffIDs = %v, want [staff-1]", got)
	}
}
