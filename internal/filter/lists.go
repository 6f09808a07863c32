package filter

import (
	"strings"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// ClientCriteria filters for the clients view.
type ClientCriteria struct {
	Search string
	City   string
}

// FilterClients keeps clients matching the search term and city.
func FilterClients(items []domain.Client, c ClientCriteria) []domain.Client {
	needle := fold(strings.TrimSpace(c.Search))
	out := make([]domain.Client, 0, len(items))
	for _, cl := range items {
		if active(c.City) && !equalFold(cl.City, c.City) {
			continue
		}
		if needle != "" && !containsAny(needle, cl.Name, cl.ContactPerson, cl.Email, cl.City, cl.Address) {
			continue
		}
		out = append(out, cl)
	}
	return out
}

// BuildingCriteria filters for the buildings view.
type BuildingCriteria struct {
	Search   string
	City     string
	Heating  string
	ClientID int
}

// FilterBuildings keeps buildings matching the search term, city, heating type and owner.
func FilterBuildings(items []domain.Building, c BuildingCriteria) []domain.Building {
	needle := fold(strings.TrimSpace(c.Search))
	out := make([]domain.Building, 0, len(items))
	for _, b := range items {
		if active(c.City) && !equalFold(b.City, c.City) {
			continue
		}
		if active(c.Heating) && !equalFold(string(b.HeatingType), c.Heating) {
			continue
		}
		if c.ClientID > 0 && b.ClientID != c.ClientID {
			continue
		}
		if needle != "" && !containsAny(needle, b.Address, b.City, b.PostalCode) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold(f), needle) {
			return true
		}
	}
	return false
}
