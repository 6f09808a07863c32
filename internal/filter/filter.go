// Package filter implements the list-view filter pipeline: every active
// criterion is a predicate and records must satisfy all of them.
package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
)

// All is the sentinel value meaning "no filter".
const All = "all"

// Criteria filters for the inspection and CEEB pending lists.
type Criteria struct {
	Search     string
	DateFrom   time.Time // zero = open
	DateTo     time.Time // zero = open
	Result     string
	City       string
	Type       string
	CeebStatus string
}

// Predicate reports whether an inspection stays in the list.
type Predicate func(domain.Inspection) bool

// Predicates returns the active predicates in evaluation order.
func (c Criteria) Predicates() []Predicate {
	var ps []Predicate
	if term := strings.TrimSpace(c.Search); term != "" {
		needle := fold(term)
		ps = append(ps, func(in domain.Inspection) bool { return matchesSearch(in, needle) })
	}
	if !c.DateFrom.IsZero() || !c.DateTo.IsZero() {
		from, to := c.DateFrom, c.DateTo
		ps = append(ps, func(in domain.Inspection) bool { return inRange(in.Date, from, to) })
	}
	if active(c.Result) {
		ps = append(ps, func(in domain.Inspection) bool { return equalFold(string(in.Result), c.Result) })
	}
	if active(c.City) {
		ps = append(ps, func(in domain.Inspection) bool { return equalFold(in.City, c.City) })
	}
	if active(c.Type) {
		ps = append(ps, func(in domain.Inspection) bool { return equalFold(string(in.Type), c.Type) })
	}
	if active(c.CeebStatus) {
		ps = append(ps, func(in domain.Inspection) bool { return equalFold(string(in.CeebStatus), c.CeebStatus) })
	}
	return ps
}

// Apply runs every predicate in turn. The result is a subset of items in the
// original order; items itself is not modified.
func Apply(items []domain.Inspection, c Criteria) []domain.Inspection {
	out := append([]domain.Inspection(nil), items...)
	for _, p := range c.Predicates() {
		kept := out[:0]
		for _, in := range out {
			if p(in) {
				kept = append(kept, in)
			}
		}
		out = kept
	}
	return out
}

// Pending applies c to the inspections still waiting for CEEB submission.
func Pending(items []domain.Inspection, c Criteria) []domain.Inspection {
	c.CeebStatus = string(domain.CeebPending)
	return Apply(items, c)
}

func matchesSearch(in domain.Inspection, needle string) bool {
	fields := []string{
		strconv.Itoa(in.ID),
		in.Address,
		in.City,
		string(in.Type),
		in.Type.Label(),
	}
	for _, f := range fields {
		if strings.Contains(fold(f), needle) {
			return true
		}
	}
	return false
}

// inRange compares at day granularity with inclusive bounds. Unparseable
// dates never match an active range.
func inRange(date string, from, to time.Time) bool {
	d, err := domain.ParseDate(date)
	if err != nil {
		return false
	}
	if !from.IsZero() && d.Before(domain.StartOfDay(from)) {
		return false
	}
	if !to.IsZero() && d.After(domain.StartOfDay(to)) {
		return false
	}
	return true
}

// ParseBound accepts the ISO form sent by date inputs (YYYY-MM-DD) and the
// display form (DD.MM.YYYY). Empty input yields the zero time.
func ParseBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return domain.ParseDate(s)
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, All)
}

// fold matches what users type against stored names regardless of case and
// Polish diacritics.
func fold(s string) string {
	return domain.FoldName(s)
}

func equalFold(a, b string) bool {
	return fold(strings.TrimSpace(a)) == fold(strings.TrimSpace(b))
}
