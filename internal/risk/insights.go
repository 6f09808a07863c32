package risk

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/aggregator"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// Kind of an insight card.
type Kind string

const (
	KindRisk     Kind = "risk"
	KindStat     Kind = "stat"
	KindTip      Kind = "tip"
	KindForecast Kind = "forecast"
)

// Severity drives the card color.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Insight one card on the insights panel.
type Insight struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	// Computed is false for static tips and random forecasts.
	Computed bool `json:"computed"`
}

var tips = []Insight{
	{Kind: KindTip, Severity: SeverityInfo, Title: "Sezon grzewczy",
		Message: "Przed sezonem grzewczym warto zaplanować kontrole budynków opalanych węglem i drewnem."},
	{Kind: KindTip, Severity: SeverityInfo, Title: "Zgłoszenia CEEB",
		Message: "Wysyłaj zgłoszenia do CEEB zbiorczo, aby ograniczyć liczbę zaległych protokołów."},
}

var forecasts = []string{
	"W przyszłym miesiącu spodziewany jest wzrost liczby zleceń o %d%%.",
	"Prognozowany spadek liczby interwencji o %d%% w kolejnym kwartale.",
	"Szacowany wzrost zapotrzebowania na przeglądy gazowe o %d%%.",
}

// Insights builds the insights panel. Risk and stat cards come from the
// snapshot; tips are static and the forecast is random text.
func Insights(s *domain.Snapshot, now time.Time, rng *rand.Rand) []Insight {
	out := []Insight{}

	atRisk := AtRisk(s.Inspections, now)
	if len(atRisk) > 0 {
		sev := SeverityWarning
		if atRisk[0].RemainingDays == 1 {
			sev = SeverityCritical
		}
		out = append(out, Insight{
			Kind:     KindRisk,
			Severity: sev,
			Title:    "Zbliżające się terminy CEEB",
			Message: fmt.Sprintf("%d inspekcji wymaga zgłoszenia do CEEB w ciągu %d dni. Najbliższy termin: %s (%s).",
				len(atRisk), WarningDays, atRisk[0].Deadline, atRisk[0].Address),
			Computed: true,
		})
	}
	if n := Overdue(s.Inspections, now); n > 0 {
		out = append(out, Insight{
			Kind:     KindRisk,
			Severity: SeverityCritical,
			Title:    "Przekroczone terminy CEEB",
			Message:  fmt.Sprintf("%d inspekcji nie zostało zgłoszonych w terminie %d dni.", n, DeadlineDays),
			Computed: true,
		})
	}

	stats := aggregator.Stats(s, now)
	if stats.TotalInspections > 0 {
		sev := SeverityInfo
		if stats.Negative*5 > stats.TotalInspections {
			sev = SeverityWarning
		}
		out = append(out, Insight{
			Kind:     KindStat,
			Severity: sev,
			Title:    "Wyniki kontroli",
			Message: fmt.Sprintf("%.1f%% kontroli zakończyło się wynikiem pozytywnym, %d negatywnym.",
				stats.PositiveRate, stats.Negative),
			Computed: true,
		})
	}
	if top, count := busiestRegion(s.Inspections); count > 0 {
		out = append(out, Insight{
			Kind:     KindStat,
			Severity: SeverityInfo,
			Title:    "Najaktywniejszy region",
			Message:  fmt.Sprintf("Najwięcej kontroli (%d) przeprowadzono w województwie %s.", count, top),
			Computed: true,
		})
	}

	out = append(out, tips...)

	if rng != nil {
		out = append(out, Insight{
			Kind:     KindForecast,
			Severity: SeverityInfo,
			Title:    "Prognoza",
			Message:  fmt.Sprintf(forecasts[rng.IntN(len(forecasts))], 5+rng.IntN(21)),
		})
	}
	return out
}

func busiestRegion(inspections []domain.Inspection) (string, int) {
	name, best := "", 0
	for _, rs := range aggregator.ByRegion(inspections) {
		if rs.Total > best {
			name, best = rs.Name, rs.Total
		}
	}
	return name, best
}
