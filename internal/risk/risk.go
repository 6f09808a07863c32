package risk

import (
	"sort"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

const (
	// DeadlineDays is the CEEB reporting window after an inspection.
	DeadlineDays = 7
	// WarningDays flags inspections with at most this many days left.
	WarningDays = 3
)

// Item a pending inspection close to its CEEB deadline.
type Item struct {
	InspectionID  int                   `json:"inspection_id"`
	Address       string                `json:"address"`
	City          string                `json:"city"`
	Type          domain.InspectionType `json:"type"`
	Date          string                `json:"date"`
	Deadline      string                `json:"deadline"`
	ElapsedDays   int                   `json:"elapsed_days"`
	RemainingDays int                   `json:"remaining_days"`
}

// Remaining returns days left before the deadline of an inspection dated date.
func Remaining(date string, now time.Time) (elapsed, remaining int, err error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return 0, 0, err
	}
	elapsed = domain.DaysBetween(d, now)
	return elapsed, DeadlineDays - elapsed, nil
}

// AtRisk lists pending inspections with 0 < remaining <= WarningDays,
// soonest deadline first. Inspections with unparseable dates are skipped.
func AtRisk(inspections []domain.Inspection, now time.Time) []Item {
	out := []Item{}
	for _, in := range inspections {
		if in.CeebStatus != domain.CeebPending {
			continue
		}
		elapsed, remaining, err := Remaining(in.Date, now)
		if err != nil {
			continue
		}
		if remaining <= 0 || remaining > WarningDays {
			continue
		}
		d, _ := domain.ParseDate(in.Date)
		out = append(out, Item{
			InspectionID:  in.ID,
			Address:       in.Address,
			City:          in.City,
			Type:          in.Type,
			Date:          in.Date,
			Deadline:      domain.FormatDate(d.AddDate(0, 0, DeadlineDays)),
			ElapsedDays:   elapsed,
			RemainingDays: remaining,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RemainingDays != out[j].RemainingDays {
			return out[i].RemainingDays < out[j].RemainingDays
		}
		return out[i].InspectionID < out[j].InspectionID
	})
	return out
}

// Overdue counts pending inspections already past the deadline.
func Overdue(inspections []domain.Inspection, now time.Time) int {
	n := 0
	for _, in := range inspections {
		if in.CeebStatus != domain.CeebPending {
			continue
		}
		if _, remaining, err := Remaining(in.Date, now); err == nil && remaining <= 0 {
			n++
		}
	}
	return n
}
