package client

import (
	"strings"

	"github.com/doctorshift/marketplace-api/internal/models"
)

// ShiftFilter narrows an already-fetched shift list. Zero values disable the
// corresponding predicate; active predicates combine with AND.
type ShiftFilter struct {
	// Position must match the shift's specialty exactly.
	Position string
	// Location is a case-insensitive substring matched against the shift's
	// free-text location OR its hospital name.
	Location string
	// DateFrom / DateTo bound the shift date inclusively. ISO dates compare
	// correctly as strings.
	DateFrom string
	DateTo   string
}

func (f ShiftFilter) matches(s *models.Shift) bool {
	if f.Position != "" && s.Position != f.Position {
		return false
	}
	if f.Location != "" {
		needle := strings.ToLower(f.Location)
		if !strings.Contains(strings.ToLower(s.Location), needle) &&
			!strings.Contains(strings.ToLower(s.HospitalName), needle) {
			return false
		}
	}
	if f.DateFrom != "" && s.ShiftDate < f.DateFrom {
		return false
	}
	if f.DateTo != "" && s.ShiftDate > f.DateTo {
		return false
	}
	return true
}

// FilterShifts returns the subset of shifts satisfying every active
// predicate. The input order is preserved and the input slice is never
// mutated.
func FilterShifts(shifts []models.Shift, f ShiftFilter) []models.Shift {
	filtered := make([]models.Shift, 0, len(shifts))
	for i := range shifts {
		if f.matches(&shifts[i]) {
			filtered = append(filtered, shifts[i])
		}
	}
	return filtered
}
