package aggregator

import "github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"

// Region a voivodeship used as the map grouping key.
type Region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultRegionID receives every city missing from the lookup table.
const DefaultRegionID = "mazowieckie"

// Regions in map order.
var Regions = []Region{
	{"dolnoslaskie", "Dolnośląskie"},
	{"kujawsko-pomorskie", "Kujawsko-Pomorskie"},
	{"lubelskie", "Lubelskie"},
	{"lubuskie", "Lubuskie"},
	{"lodzkie", "Łódzkie"},
	{"malopolskie", "Małopolskie"},
	{"mazowieckie", "Mazowieckie"},
	{"opolskie", "Opolskie"},
	{"podkarpackie", "Podkarpackie"},
	{"podlaskie", "Podlaskie"},
	{"pomorskie", "Pomorskie"},
	{"slaskie", "Śląskie"},
	{"swietokrzyskie", "Świętokrzyskie"},
	{"warminsko-mazurskie", "Warmińsko-Mazurskie"},
	{"wielkopolskie", "Wielkopolskie"},
	{"zachodniopomorskie", "Zachodniopomorskie"},
}

// cityRegions is keyed by folded city name (see domain.FoldName).
var cityRegions = map[string]string{
	"wroclaw":             "dolnoslaskie",
	"walbrzych":           "dolnoslaskie",
	"legnica":             "dolnoslaskie",
	"bydgoszcz":           "kujawsko-pomorskie",
	"torun":               "kujawsko-pomorskie",
	"lublin":              "lubelskie",
	"zamosc":              "lubelskie",
	"zielona gora":        "lubuskie",
	"gorzow wielkopolski": "lubuskie",
	"lodz":                "lodzkie",
	"krakow":              "malopolskie",
	"tarnow":              "malopolskie",
	"zakopane":            "malopolskie",
	"warszawa":            "mazowieckie",
	"radom":               "mazowieckie",
	"plock":               "mazowieckie",
	"opole":               "opolskie",
	"rzeszow":             "podkarpackie",
	"przemysl":            "podkarpackie",
	"bialystok":           "podlaskie",
	"suwalki":             "podlaskie",
	"gdansk":              "pomorskie",
	"gdynia":              "pomorskie",
	"sopot":               "pomorskie",
	"katowice":            "slaskie",
	"gliwice":             "slaskie",
	"czestochowa":         "slaskie",
	"kielce":              "swietokrzyskie",
	"olsztyn":             "warminsko-mazurskie",
	"elblag":              "warminsko-mazurskie",
	"poznan":              "wielkopolskie",
	"kalisz":              "wielkopolskie",
	"szczecin":            "zachodniopomorskie",
	"koszalin":            "zachodniopomorskie",
}

// RegionFor maps a city to its region id, falling back to DefaultRegionID.
// The lookup ignores case and Polish diacritics.
func RegionFor(city string) string {
	if id, ok := cityRegions[domain.FoldName(city)]; ok {
		return id
	}
	return DefaultRegionID
}
