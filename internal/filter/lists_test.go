package filter

import (
	"testing"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestFilterClients(t *testing.T) {
	clients := []domain.Client{
		{ID: 1, Name: "Wspólnota Zacisze", ContactPerson: "Anna Nowak", City: "Gdańsk"},
		{ID: 2, Name: "Administracja Centrum", Email: "biuro@centrum.pl", City: "Poznań"},
	}
	require.Len(t, FilterClients(clients, ClientCriteria{}), 2)
	require.Equal(t, 1, FilterClients(clients, ClientCriteria{Search: "nowak"})[0].ID)
	require.Equal(t, 2, FilterClients(clients, ClientCriteria{Search: "CENTRUM.PL"})[0].ID)
	require.Empty(t, FilterClients(clients, ClientCriteria{Search: "nowak", City: "Poznań"}))
	require.Equal(t, 2, FilterClients(clients, ClientCriteria{City: "poznan"})[0].ID)
}

func TestFilterBuildings(t *testing.T) {
	buildings := []domain.Building{
		{ID: 1, Address: "ul. Lipowa 3", City: "Opole", PostalCode: "45-001", HeatingType: domain.HeatingGas, ClientID: 1},
		{ID: 2, Address: "ul. Polna 8", City: "Opole", PostalCode: "45-002", HeatingType: domain.HeatingCoal, ClientID: 2},
		{ID: 3, Address: "ul. Leśna 1", City: "Kielce", PostalCode: "25-001", HeatingType: domain.HeatingCoal, ClientID: 2},
	}
	require.Len(t, FilterBuildings(buildings, BuildingCriteria{City: "opole"}), 2)
	require.Equal(t, 3, FilterBuildings(buildings, BuildingCriteria{Search: "lesna"})[0].ID)
	require.Len(t, FilterBuildings(buildings, BuildingCriteria{Heating: "coal"}), 2)
	require.Len(t, FilterBuildings(buildings, BuildingCriteria{ClientID: 2, City: "Kielce"}), 1)
	require.Equal(t, 2, FilterBuildings(buildings, BuildingCriteria{Search: "45-002"})[0].ID)
}

func TestRetain_SelectionStaysInsideView(t *testing.T) {
	view := []domain.Inspection{{ID: 2}, {ID: 5}, {ID: 9}}
	got := Retain([]int{9, 1, 5, 9, 42}, view)
	require.Equal(t, []int{9, 5}, got)

	require.Empty(t, Retain([]int{1, 2}, nil))
	require.Empty(t, Retain(nil, view))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, p := Paginate(items, 2, 2)
	require.Equal(t, []int{3, 4}, got)
	require.Equal(t, Page{Page: 2, Size: 2, Count: 5}, p)

	got, _ = Paginate(items, 3, 2)
	require.Equal(t, []int{5}, got)

	got, _ = Paginate(items, 9, 2)
	require.Empty(t, got)

	got, p = Paginate(items, 0, 0)
	require.Equal(t, items, got)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Size)
}
