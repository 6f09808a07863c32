package export

import (
	"strconv"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// column one exported field.
type column struct {
	header string
	width  float64
	value  func(domain.Inspection) string
}

var resultLabels = map[domain.InspectionResult]string{
	domain.ResultPositive:    "Pozytywny",
	domain.ResultNegative:    "Negatywny",
	domain.ResultConditional: "Warunkowy",
}

var ceebLabels = map[domain.CeebStatus]string{
	domain.CeebReported: "Zgłoszono",
	domain.CeebPending:  "Oczekuje",
}

var inspectionColumns = []column{
	{"ID", 8, func(in domain.Inspection) string { return strconv.Itoa(in.ID) }},
	{"Nr protokołu", 18, func(in domain.Inspection) string { return in.ProtocolNumber }},
	{"Data", 12, func(in domain.Inspection) string { return in.Date }},
	{"Rodzaj", 20, func(in domain.Inspection) string { return in.Type.Label() }},
	{"Wynik", 12, func(in domain.Inspection) string { return label(resultLabels, in.Result) }},
	{"Adres", 28, func(in domain.Inspection) string { return in.Address }},
	{"Miasto", 16, func(in domain.Inspection) string { return in.City }},
	{"Kod pocztowy", 12, func(in domain.Inspection) string { return in.PostalCode }},
	{"Kominiarz", 20, func(in domain.Inspection) string { return in.Technician }},
	{"Status CEEB", 14, func(in domain.Inspection) string { return label(ceebLabels, in.CeebStatus) }},
	{"Usterki", 30, func(in domain.Inspection) string { return in.Defects }},
	{"Zalecenia", 30, func(in domain.Inspection) string { return in.Recommendations }},
}

func label[K ~string](m map[K]string, k K) string {
	if v, ok := m[k]; ok {
		return v
	}
	return string(k)
}

func headers() []string {
	out := make([]string, len(inspectionColumns))
	for i, c := range inspectionColumns {
		out[i] = c.header
	}
	return out
}

func record(in domain.Inspection) []string {
	out := make([]string, len(inspectionColumns))
	for i, c := range inspectionColumns {
		out[i] = c.value(in)
	}
	return out
}
