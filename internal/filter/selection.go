package filter

import "github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"

// Retain drops selected ids that are not part of view, removing duplicates
// and keeping the caller's order.
func Retain(selected []int, view []domain.Inspection) []int {
	visible := make(map[int]struct{}, len(view))
	for _, in := range view {
		visible[in.ID] = struct{}{}
	}
	out := make([]int, 0, len(selected))
	seen := make(map[int]struct{}, len(selected))
	for _, id := range selected {
		if _, ok := visible[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
