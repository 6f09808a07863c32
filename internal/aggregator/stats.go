package aggregator

import (
	"math"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// upcomingWindowDays is how far ahead NextInspection counts as upcoming.
const upcomingWindowDays = 30

// DashboardStats headline numbers for the dashboard tab.
type DashboardStats struct {
	SnapshotVersion      int64                         `json:"snapshot_version"`
	GeneratedAt          time.Time                     `json:"generated_at"`
	TotalInspections     int                           `json:"total_inspections"`
	Positive             int                           `json:"positive"`
	Negative             int                           `json:"negative"`
	Conditional          int                           `json:"conditional"`
	PositiveRate         float64                       `json:"positive_rate"`
	PendingCeeb          int                           `json:"pending_ceeb"`
	ReportedCeeb         int                           `json:"reported_ceeb"`
	InspectionsThisMonth int                           `json:"inspections_this_month"`
	Clients              int                           `json:"clients"`
	Buildings            int                           `json:"buildings"`
	Reports              int                           `json:"reports"`
	UpcomingInspections  int                           `json:"upcoming_inspections"`
	TypeDistribution     map[domain.InspectionType]int `json:"type_distribution"`
}

// Stats derives dashboard statistics from a snapshot.
func Stats(s *domain.Snapshot, now time.Time) DashboardStats {
	out := DashboardStats{
		SnapshotVersion:  s.Version,
		GeneratedAt:      s.GeneratedAt,
		TotalInspections: len(s.Inspections),
		Clients:          len(s.Clients),
		Buildings:        len(s.Buildings),
		Reports:          len(s.Reports),
		TypeDistribution: map[domain.InspectionType]int{},
	}
	for _, t := range domain.InspectionTypes {
		out.TypeDistribution[t] = 0
	}

	today := domain.StartOfDay(now)
	for _, in := range s.Inspections {
		switch in.Result {
		case domain.ResultPositive:
			out.Positive++
		case domain.ResultNegative:
			out.Negative++
		case domain.ResultConditional:
			out.Conditional++
		}
		if in.CeebStatus == domain.CeebPending {
			out.PendingCeeb++
		} else {
			out.ReportedCeeb++
		}
		out.TypeDistribution[in.Type]++

		if d, err := domain.ParseDate(in.Date); err == nil && d.Year() == today.Year() && d.Month() == today.Month() {
			out.InspectionsThisMonth++
		}
	}
	if out.TotalInspections > 0 {
		out.PositiveRate = math.Round(float64(out.Positive)/float64(out.TotalInspections)*1000) / 10
	}

	for _, b := range s.Buildings {
		d, err := domain.ParseDate(b.NextInspection)
		if err != nil {
			continue
		}
		if days := domain.DaysBetween(today, d); days >= 0 && days <= upcomingWindowDays {
			out.UpcomingInspections++
		}
	}
	return out
}
