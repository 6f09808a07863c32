package aggregator

import (
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// RegionStats per-region tallies for the map view.
type RegionStats struct {
	Region
	Total       int                           `json:"total"`
	Positive    int                           `json:"positive"`
	Negative    int                           `json:"negative"`
	Conditional int                           `json:"conditional"`
	Types       map[domain.InspectionType]int `json:"types"`
	Intensity   float64                       `json:"intensity"`
	Band        int                           `json:"band"`
	Opacity     float64                       `json:"opacity"`
}

// bandOpacity maps a heat band to the fill opacity used by the map.
var bandOpacity = [...]float64{0, 0.25, 0.5, 0.75, 1}

// ByRegion tallies inspections per region. Every region is present in the
// result, so the sum of Total always equals len(inspections).
func ByRegion(inspections []domain.Inspection) []RegionStats {
	index := make(map[string]int, len(Regions))
	out := make([]RegionStats, len(Regions))
	for i, r := range Regions {
		index[r.ID] = i
		out[i] = RegionStats{Region: r, Types: map[domain.InspectionType]int{}}
	}

	for _, in := range inspections {
		rs := &out[index[RegionFor(in.City)]]
		rs.Total++
		switch in.Result {
		case domain.ResultPositive:
			rs.Positive++
		case domain.ResultNegative:
			rs.Negative++
		case domain.ResultConditional:
			rs.Conditional++
		}
		rs.Types[in.Type]++
	}

	counts := make([]int, len(out))
	for i := range out {
		counts[i] = out[i].Total
	}
	for i := range out {
		out[i].Intensity = Intensity(out[i].Total, counts)
		out[i].Band = Band(out[i].Total, out[i].Intensity)
		out[i].Opacity = bandOpacity[out[i].Band]
	}
	return out
}

// Intensity computes (count - minNonZero) / (maxCount - minNonZero) over counts.
// Empty regions get 0; when every non-empty region has the same count they all get 1.
func Intensity(count int, counts []int) float64 {
	if count <= 0 {
		return 0
	}
	minNonZero, maxCount := 0, 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
		if c > 0 && (minNonZero == 0 || c < minNonZero) {
			minNonZero = c
		}
	}
	if maxCount == minNonZero {
		return 1
	}
	v := float64(count-minNonZero) / float64(maxCount-minNonZero)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Band buckets an intensity into 0 (empty) .. 4 (hottest).
func Band(count int, intensity float64) int {
	switch {
	case count <= 0:
		return 0
	case intensity < 0.25:
		return 1
	case intensity < 0.5:
		return 2
	case intensity < 0.75:
		return 3
	default:
		return 4
	}
}
