// Package filter narrows a dataset by the sidebar constraints and derives the
// controls (options and bounds) those constraints are chosen from.
package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/housedash/internal/analysis"
	"github.com/KaramelBytes/housedash/internal/columns"
)

// Range is a closed numeric interval [Lo, Hi].
type Range struct {
	Lo, Hi float64
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool { return v >= r.Lo && v <= r.Hi }

func (r Range) String() string {
	return strconv.FormatFloat(r.Lo, 'f', -1, 64) + ":" + strconv.FormatFloat(r.Hi, 'f', -1, 64)
}

// ParseRange parses "lo:hi". Bounds given in the wrong order are swapped.
func ParseRange(s string) (Range, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Range{}, fmt.Errorf("invalid range %q: want lo:hi", s)
	}
	l, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if math.IsNaN(l) || math.IsNaN(h) {
		return Range{}, fmt.Errorf("invalid range %q: NaN bound", s)
	}
	if l > h {
		l, h = h, l
	}
	return Range{Lo: l, Hi: h}, nil
}

// Spec holds the active constraints per role. A role with an empty category
// set is unconstrained.
type Spec struct {
	Categories map[columns.Role][]string
	Ranges     map[columns.Role]Range
}

// Empty reports whether the spec constrains nothing.
func (s Spec) Empty() bool {
	for _, v := range s.Categories {
		if len(v) > 0 {
			return false
		}
	}
	return len(s.Ranges) == 0
}

// Apply returns the rows of t that satisfy every constraint of spec whose role
// is bound in b, in their original order. Constraints on unbound roles are
// ignored.
func Apply(t *analysis.Table, b columns.Bindings, spec Spec) *analysis.Table {
	var preds []func([]analysis.Value) bool
	for _, role := range columns.Roles {
		col, ok := b.Column(role)
		if !ok {
			continue
		}
		j, ok := t.ColumnIndex(col)
		if !ok {
			continue
		}
		if allowed := spec.Categories[role]; len(allowed) > 0 {
			preds = append(preds, memberOf(j, allowed))
		}
		if r, ok := spec.Ranges[role]; ok {
			preds = append(preds, within(j, r))
		}
	}
	return t.Select(func(row []analysis.Value) bool {
		for _, p := range preds {
			if !p(row) {
				return false
			}
		}
		return true
	})
}

func memberOf(j int, allowed []string) func([]analysis.Value) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(row []analysis.Value) bool {
		v := row[j]
		if v.IsMissing() {
			return false
		}
		_, ok := set[v.String()]
		return ok
	}
}

func within(j int, r Range) func([]analysis.Value) bool {
	return func(row []analysis.Value) bool {
		f, ok := row[j].Float()
		return ok && r.Contains(f)
	}
}
