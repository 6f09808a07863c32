package generator

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// Options controls snapshot sizes.
type Options struct {
	Clients     int
	Buildings   int
	Inspections int
	Reports     int
	// HistoryDays is how far back inspection dates may go.
	HistoryDays int
}

// DefaultOptions returns the sizes used by the dashboard.
func DefaultOptions() Options {
	return Options{
		Clients:     15,
		Buildings:   30,
		Inspections: 60,
		Reports:     8,
		HistoryDays: 60,
	}
}

// Generator builds randomized snapshots.
type Generator struct {
	opts    Options
	rng     *rand.Rand
	now     func() time.Time
	version atomic.Int64
}

// New creates a generator. A zero seed picks a random one; now defaults to time.Now.
func New(opts Options, seed uint64, now func() time.Time) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	if now == nil {
		now = time.Now
	}
	if opts.Clients <= 0 {
		opts.Clients = 1
	}
	if opts.Buildings <= 0 {
		opts.Buildings = 1
	}
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 60
	}
	return &Generator{
		opts: opts,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:  now,
	}
}

// Generate produces a fresh snapshot with the next version number.
func (g *Generator) Generate() *domain.Snapshot {
	now := g.now().UTC()
	today := domain.StartOfDay(now)

	clients := g.clients()
	buildings := g.buildings(clients, today)
	inspections := g.inspections(buildings, today)
	g.linkLastInspections(clients, buildings, inspections)
	reports := g.reports(inspections, today)

	return &domain.Snapshot{
		Version:     g.version.Add(1),
		GeneratedAt: now,
		Clients:     clients,
		Buildings:   buildings,
		Inspections: inspections,
		Reports:     reports,
	}
}

func (g *Generator) clients() []domain.Client {
	out := make([]domain.Client, 0, g.opts.Clients)
	for i := 1; i <= g.opts.Clients; i++ {
		loc := g.pick(locations)
		contact := g.person()
		name := fmt.Sprintf("%s %s", g.pickString(clientPrefixes), g.pickString(clientNames))
		out = append(out, domain.Client{
			ID:            i,
			Name:          name,
			ContactPerson: contact,
			Email:         fmt.Sprintf("kontakt%d@%s.pl", i, slug(loc.city)),
			Phone:         g.phone(),
			City:          loc.city,
			Address:       g.street(),
		})
	}
	return out
}

func (g *Generator) buildings(clients []domain.Client, today time.Time) []domain.Building {
	out := make([]domain.Building, 0, g.opts.Buildings)
	for i := 1; i <= g.opts.Buildings; i++ {
		owner := &clients[g.rng.IntN(len(clients))]
		owner.BuildingCount++

		loc := g.pick(locations)
		last := today.AddDate(0, 0, -g.rng.IntN(365))
		floors := 1 + g.rng.IntN(11)
		out = append(out, domain.Building{
			ID:             i,
			Address:        g.street(),
			City:           loc.city,
			PostalCode:     loc.postalCode,
			ClientID:       owner.ID,
			HeatingType:    domain.HeatingTypes[g.rng.IntN(len(domain.HeatingTypes))],
			YearBuilt:      1950 + g.rng.IntN(74),
			Floors:         floors,
			Apartments:     floors * (1 + g.rng.IntN(8)),
			LastInspection: domain.FormatDate(last),
			NextInspection: domain.FormatDate(last.AddDate(1, 0, 0)),
		})
	}
	return out
}

func (g *Generator) inspections(buildings []domain.Building, today time.Time) []domain.Inspection {
	out := make([]domain.Inspection, 0, g.opts.Inspections)
	for i := 1; i <= g.opts.Inspections; i++ {
		b := buildings[g.rng.IntN(len(buildings))]
		date := today.AddDate(0, 0, -g.rng.IntN(g.opts.HistoryDays))
		result := g.result()
		status := domain.CeebReported
		if g.rng.IntN(100) < 35 {
			status = domain.CeebPending
		}
		in := domain.Inspection{
			ID:             i,
			BuildingID:     b.ID,
			Type:           domain.InspectionTypes[g.rng.IntN(len(domain.InspectionTypes))],
			Result:         result,
			Address:        b.Address,
			City:           b.City,
			PostalCode:     b.PostalCode,
			Date:           domain.FormatDate(date),
			CeebStatus:     status,
			Technician:     g.pickString(technicians),
			ProtocolNumber: fmt.Sprintf("PR/%d/%04d", date.Year(), i),
			Notes:          g.pickString(notes),
		}
		switch result {
		case domain.ResultNegative:
			in.Defects = g.pickString(defects)
			in.Recommendations = g.pickString(recommendations)
		case domain.ResultConditional:
			in.Defects = g.pickString(defects)
			in.Recommendations = "Usunąć usterki w ciągu 14 dni i zgłosić do ponownej kontroli."
		}
		out = append(out, in)
	}
	return out
}

// linkLastInspections fills Client.LastInspection and Building.LastInspection
// from the newest inspection that touches them.
func (g *Generator) linkLastInspections(clients []domain.Client, buildings []domain.Building, inspections []domain.Inspection) {
	latest := map[int]time.Time{}
	for _, in := range inspections {
		d, err := domain.ParseDate(in.Date)
		if err != nil {
			continue
		}
		if d.After(latest[in.BuildingID]) {
			latest[in.BuildingID] = d
		}
	}
	clientLatest := map[int]time.Time{}
	for i := range buildings {
		d, ok := latest[buildings[i].ID]
		if !ok {
			continue
		}
		buildings[i].LastInspection = domain.FormatDate(d)
		buildings[i].NextInspection = domain.FormatDate(d.AddDate(1, 0, 0))
		if d.After(clientLatest[buildings[i].ClientID]) {
			clientLatest[buildings[i].ClientID] = d
		}
	}
	for i := range clients {
		if d, ok := clientLatest[clients[i].ID]; ok {
			clients[i].LastInspection = domain.FormatDate(d)
		} else {
			clients[i].LastInspection = "-"
		}
	}
}

func (g *Generator) reports(inspections []domain.Inspection, today time.Time) []domain.CeebReport {
	var reported []domain.Inspection
	for _, in := range inspections {
		if in.CeebStatus == domain.CeebReported {
			reported = append(reported, in)
		}
	}

	out := make([]domain.CeebReport, 0, g.opts.Reports)
	for i := 1; i <= g.opts.Reports; i++ {
		count := 1 + g.rng.IntN(6)
		status := domain.ReportAccepted
		if i <= 2 && g.rng.IntN(2) == 0 {
			status = domain.ReportPending
		}
		r := domain.CeebReport{
			ID:              i,
			SubmissionDate:  domain.FormatDate(today.AddDate(0, 0, -(i-1)*7-g.rng.IntN(3))),
			InspectionCount: count,
			Status:          status,
			SubmittedBy:     g.pickString(technicians),
		}
		for j := 0; j < count && len(reported) > 0; j++ {
			in := reported[g.rng.IntN(len(reported))]
			r.Buildings = append(r.Buildings, domain.ReportBuilding{Address: in.Address, City: in.City})
		}
		out = append(out, r)
	}
	return out
}

func (g *Generator) result() domain.InspectionResult {
	n := g.rng.IntN(100)
	switch {
	case n < 70:
		return domain.ResultPositive
	case n < 85:
		return domain.ResultConditional
	default:
		return domain.ResultNegative
	}
}

func (g *Generator) pick(list []location) location {
	return list[g.rng.IntN(len(list))]
}

func (g *Generator) pickString(list []string) string {
	return list[g.rng.IntN(len(list))]
}

func (g *Generator) person() string {
	return g.pickString(firstNames) + " " + g.pickString(lastNames)
}

func (g *Generator) street() string {
	return fmt.Sprintf("ul. %s %d", g.pickString(streets), 1+g.rng.IntN(150))
}

func (g *Generator) phone() string {
	return fmt.Sprintf("+48 %03d %03d %03d", 500+g.rng.IntN(300), g.rng.IntN(1000), g.rng.IntN(1000))
}
