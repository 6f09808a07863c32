package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoldName(t *testing.T) {
	cases := map[string]string{
		"Kraków":              "krakow",
		"ŁÓDŹ":                "lodz",
		"  Bielsko-Biała ":    "bielsko-biala",
		"Zielona   Góra":      "zielona gora",
		"Gorzów Wielkopolski": "gorzow wielkopolski",
		"warszawa":            "warszawa",
	}
	for in, want := range cases {
		require.Equal(t, want, FoldName(in), "fold %q", in)
	}
}
