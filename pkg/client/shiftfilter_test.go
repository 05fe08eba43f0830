package client

import (
	"testing"

	"github.com/doctorshift/marketplace-api/internal/models"
)

func sampleShifts() []models.Shift {
	return []models.Shift{
		{Position: models.PositionSurgery, ShiftDate: "2026-09-01", HospitalName: "Bangkok Hospital", Location: "Chiang Mai"},
		{Position: models.PositionSurgery, ShiftDate: "2026-09-10", HospitalName: "Siriraj", Location: "กรุงเทพมหานคร"},
		{Position: models.PositionRadiology, ShiftDate: "2026-09-05", HospitalName: "Lanna Hospital", Location: "Chiang Mai"},
		{Position: models.PositionEmergencyMedicine, ShiftDate: "2026-10-01", HospitalName: "Phuket International", Location: "Phuket"},
	}
}

func TestFilterShiftsNoCriteria(t *testing.T) {
	shifts := sampleShifts()
	got := FilterShifts(shifts, ShiftFilter{})
	if len(got) != len(shifts) {
		t.Fatalf("expected all %d shifts, got %d", len(shifts), len(got))
	}
}

func TestFilterShiftsPositionExactMatch(t *testing.T) {
	got := FilterShifts(sampleShifts(), ShiftFilter{Position: models.PositionSurgery})
	if len(got) != 2 {
		t.Fatalf("expected 2 surgery shifts, got %d", len(got))
	}
	for _, s := range got {
		if s.Position != models.PositionSurgery {
			t.Errorf("non-surgery shift in result: %s", s.Position)
		}
	}
}

func TestFilterShiftsLocationMatchesHospitalName(t *testing.T) {
	// "bangkok" must match hospital_name "Bangkok Hospital" even though the
	// shift's location is Chiang Mai.
	got := FilterShifts(sampleShifts(), ShiftFilter{Location: "bangkok"})
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].HospitalName != "Bangkok Hospital" {
		t.Errorf("wrong shift matched: %s", got[0].HospitalName)
	}
}

func TestFilterShiftsLocationCaseInsensitive(t *testing.T) {
	got := FilterShifts(sampleShifts(), ShiftFilter{Location: "CHIANG"})
	if len(got) != 2 {
		t.Fatalf("expected 2 Chiang Mai shifts, got %d", len(got))
	}
}

func TestFilterShiftsDateRangeInclusive(t *testing.T) {
	got := FilterShifts(sampleShifts(), ShiftFilter{DateFrom: "2026-09-01", DateTo: "2026-09-10"})
	if len(got) != 3 {
		t.Fatalf("expected 3 shifts in range, got %d", len(got))
	}
	for _, s := range got {
		if s.ShiftDate < "2026-09-01" || s.ShiftDate > "2026-09-10" {
			t.Errorf("shift date %s outside range", s.ShiftDate)
		}
	}
}

func TestFilterShiftsConjunction(t *testing.T) {
	f := ShiftFilter{
		Position: models.PositionSurgery,
		Location: "chiang",
		DateFrom: "2026-08-01",
		DateTo:   "2026-09-30",
	}
	got := FilterShifts(sampleShifts(), f)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 shift, got %d", len(got))
	}
	s := got[0]
	if s.Position != models.PositionSurgery || s.Location != "Chiang Mai" {
		t.Errorf("result does not satisfy all predicates: %+v", s)
	}
}

func TestFilterShiftsResultIsSubset(t *testing.T) {
	shifts := sampleShifts()
	filters := []ShiftFilter{
		{},
		{Position: models.PositionRadiology},
		{Location: "hospital"},
		{DateFrom: "2026-09-06"},
		{DateTo: "2026-09-06"},
		{Position: models.PositionSurgery, Location: "siriraj", DateFrom: "2026-09-01"},
		{Position: "no-such-specialty"},
	}
	for _, f := range filters {
		got := FilterShifts(shifts, f)
		if len(got) > len(shifts) {
			t.Fatalf("filter %+v produced more shifts than input", f)
		}
		for _, s := range got {
			found := false
			for _, src := range shifts {
				if src == s {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("filter %+v produced a shift not in the source list", f)
			}
		}
	}
}

func TestFilterShiftsDoesNotMutateInput(t *testing.T) {
	shifts := sampleShifts()
	FilterShifts(shifts, ShiftFilter{Position: models.PositionSurgery})
	if shifts[2].Position != models.PositionRadiology {
		t.Error("input slice was reordered or mutated")
	}
}
