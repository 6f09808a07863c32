package generator

import (
	"testing"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)
}

func TestGenerate_SizesAndVersions(t *testing.T) {
	g := New(DefaultOptions(), 42, fixedNow)

	s1 := g.Generate()
	s2 := g.Generate()

	require.Len(t, s1.Clients, 15)
	require.Len(t, s1.Buildings, 30)
	require.Len(t, s1.Inspections, 60)
	require.Len(t, s1.Reports, 8)
	require.Equal(t, int64(1), s1.Version)
	require.Equal(t, int64(2), s2.Version)
}

func TestGenerate_ReferencesAreConsistent(t *testing.T) {
	g := New(DefaultOptions(), 7, fixedNow)
	s := g.Generate()

	clientIDs := map[int]bool{}
	for _, c := range s.Clients {
		clientIDs[c.ID] = true
	}
	total := 0
	for _, c := range s.Clients {
		total += c.BuildingCount
	}
	require.Equal(t, len(s.Buildings), total)

	for _, b := range s.Buildings {
		require.True(t, clientIDs[b.ClientID], "building %d has unknown client %d", b.ID, b.ClientID)
	}

	oldest := domain.StartOfDay(fixedNow()).AddDate(0, 0, -60)
	for _, in := range s.Inspections {
		b, ok := s.BuildingByID(in.BuildingID)
		require.True(t, ok)
		require.Equal(t, b.Address, in.Address)
		require.Equal(t, b.City, in.City)
		require.Equal(t, b.PostalCode, in.PostalCode)

		d, err := domain.ParseDate(in.Date)
		require.NoError(t, err)
		require.False(t, d.After(fixedNow()))
		require.True(t, d.After(oldest))

		if in.Result == domain.ResultPositive {
			require.Empty(t, in.Defects)
		} else {
			require.NotEmpty(t, in.Defects)
		}
	}
}

func TestGenerate_SameSeedSameData(t *testing.T) {
	a := New(DefaultOptions(), 99, fixedNow).Generate()
	b := New(DefaultOptions(), 99, fixedNow).Generate()
	require.Equal(t, a.Inspections, b.Inspections)
	require.Equal(t, a.Clients, b.Clients)
}

func TestSlug(t *testing.T) {
	require.Equal(t, "zielona-gora", slug("Zielona Góra"))
	require.Equal(t, "lodz", slug("Łódź"))
}
