package generator

import "strings"

type location struct {
	city       string
	postalCode string
}

var locations = []location{
	{"Warszawa", "00-001"},
	{"Kraków", "30-001"},
	{"Wrocław", "50-001"},
	{"Poznań", "60-001"},
	{"Gdańsk", "80-001"},
	{"Łódź", "90-001"},
	{"Katowice", "40-001"},
	{"Lublin", "20-001"},
	{"Białystok", "15-001"},
	{"Szczecin", "70-001"},
	{"Bydgoszcz", "85-001"},
	{"Rzeszów", "35-001"},
	{"Kielce", "25-001"},
	{"Olsztyn", "10-001"},
	{"Opole", "45-001"},
	{"Zielona Góra", "65-001"},
	{"Piaseczno", "05-500"},
	{"Wieliczka", "32-020"},
}

var clientPrefixes = []string{"Spółdzielnia Mieszkaniowa", "Wspólnota Mieszkaniowa", "Administracja", "Zarząd Nieruchomości"}

var clientNames = []string{"Zacisze", "Słoneczne Wzgórze", "Nad Wisłą", "Osiedle Zielone", "Centrum", "Parkowa", "Przylesie", "Stare Miasto"}

var firstNames = []string{"Jan", "Anna", "Piotr", "Katarzyna", "Tomasz", "Magdalena", "Marek", "Agnieszka", "Paweł", "Ewa"}

var lastNames = []string{"Kowalski", "Nowak", "Wiśniewski", "Wójcik", "Kamiński", "Lewandowski", "Zieliński", "Szymański"}

var technicians = []string{"Jan Kowalski", "Piotr Nowak", "Marek Zieliński", "Tomasz Wójcik", "Paweł Kamiński"}

var streets = []string{"Marszałkowska", "Długa", "Kwiatowa", "Lipowa", "Słoneczna", "Ogrodowa", "Polna", "Leśna", "Kościuszki", "Mickiewicza"}

var notes = []string{
	"Przewody drożne, ciąg prawidłowy.",
	"Kontrola przeprowadzona w obecności administratora.",
	"Brak dostępu do jednego lokalu, termin uzupełniający ustalony.",
	"Wykonano pomiar ciągu we wszystkich przewodach.",
}

var defects = []string{
	"Nieszczelność przewodu spalinowego.",
	"Niedrożny przewód wentylacyjny w kuchni.",
	"Uszkodzona czapa kominowa.",
	"Brak wymaganego odstępu od materiałów palnych.",
	"Zbyt słaby ciąg w przewodzie dymowym.",
}

var recommendations = []string{
	"Wyłączyć urządzenie z eksploatacji do czasu naprawy.",
	"Przeprowadzić frezowanie i montaż wkładu kominowego.",
	"Wymienić czapę kominową i ponowić kontrolę.",
	"Udrożnić przewód i wykonać ponowny pomiar ciągu.",
}

// slug lowercases s and replaces spaces and Polish diacritics for email domains.
func slug(s string) string {
	r := strings.NewReplacer(
		" ", "-", "ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n", "ó", "o", "ś", "s", "ź", "z", "ż", "z",
		"Ą", "a", "Ć", "c", "Ę", "e", "Ł", "l", "Ń", "n", "Ó", "o", "Ś", "s", "Ź", "z", "Ż", "z",
	)
	return strings.ToLower(r.Replace(s))
}
