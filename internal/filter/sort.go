package filter

import (
	"sort"
	"strings"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// Sort keys accepted by SortInspections.
const (
	SortID     = "id"
	SortDate   = "date"
	SortCity   = "city"
	SortResult = "result"
)

// SortInspections orders items in place by key; unknown keys sort by id.
// Unparseable dates sort before valid ones. Ties fall back to id.
func SortInspections(items []domain.Inspection, key string, desc bool) {
	less := func(a, b domain.Inspection) bool { return a.ID < b.ID }
	switch strings.ToLower(key) {
	case SortDate:
		less = func(a, b domain.Inspection) bool {
			da, ea := domain.ParseDate(a.Date)
			db, eb := domain.ParseDate(b.Date)
			switch {
			case ea != nil && eb != nil:
				return a.ID < b.ID
			case ea != nil:
				return true
			case eb != nil:
				return false
			case !da.Equal(db):
				return da.Before(db)
			}
			return a.ID < b.ID
		}
	case SortCity:
		less = func(a, b domain.Inspection) bool {
			if fa, fb := fold(a.City), fold(b.City); fa != fb {
				return fa < fb
			}
			return a.ID < b.ID
		}
	case SortResult:
		less = func(a, b domain.Inspection) bool {
			if a.Result != b.Result {
				return a.Result < b.Result
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
