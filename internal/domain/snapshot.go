package domain

import "time"

// Snapshot one generated view of all dashboard data.
// Ids are only unique within a single snapshot.
type Snapshot struct {
	Version     int64        `json:"version"`
	GeneratedAt time.Time    `json:"generated_at"`
	Clients     []Client     `json:"clients"`
	Buildings   []Building   `json:"buildings"`
	Inspections []Inspection `json:"inspections"`
	Reports     []CeebReport `json:"reports"`
}

// InspectionByID returns the inspection with id.
func (s *Snapshot) InspectionByID(id int) (Inspection, bool) {
	for _, in := range s.Inspections {
		if in.ID == id {
			return in, true
		}
	}
	return Inspection{}, false
}

// BuildingByID returns the building with id.
func (s *Snapshot) BuildingByID(id int) (Building, bool) {
	for _, b := range s.Buildings {
		if b.ID == id {
			return b, true
		}
	}
	return Building{}, false
}

// Clone deep-copies the slices so callers can mutate the result freely.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Clients = append([]Client(nil), s.Clients...)
	out.Buildings = append([]Building(nil), s.Buildings...)
	out.Inspections = append([]Inspection(nil), s.Inspections...)
	out.Reports = make([]CeebReport, len(s.Reports))
	for i, r := range s.Reports {
		r.Buildings = append([]ReportBuilding(nil), r.Buildings...)
		out.Reports[i] = r
	}
	return &out
}
