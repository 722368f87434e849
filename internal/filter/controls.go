package filter

import (
	"math"
	"sort"
	"strconv"

	"github.com/KaramelBytes/housedash/internal/analysis"
	"github.com/KaramelBytes/housedash/internal/columns"
)

// DefaultAreaLimit is how many area options are preselected when the user has
// not touched the selector and there are more options than that.
const DefaultAreaLimit = 10

// Selection is the raw widget state of one render pass.
type Selection struct {
	// Areas is the chosen area set. It is only honoured when AreasSet is
	// true; otherwise the default preselection applies. An explicit empty
	// selection means no area constraint.
	Areas    []string
	AreasSet bool
	// Ranges holds requested bounds per numeric role. Missing roles default
	// to the control's full bounds.
	Ranges map[columns.Role]Range
}

// Control describes one sidebar widget.
type Control struct {
	Role   columns.Role
	Label  string
	Column string

	// Categorical controls.
	Options  []string
	Selected []string

	// Range controls.
	Bounds  Range
	Value   Range
	Integer bool
}

// Categorical reports whether the control is a multi-select.
func (c Control) Categorical() bool { return c.Role == columns.Area }

// Result is the outcome of one filtering pass.
type Result struct {
	Controls []Control
	Spec     Spec
	View     *analysis.Table
}

var rangeRoles = []struct {
	role    columns.Role
	label   string
	integer bool
}{
	{columns.Bedrooms, "Bedroom range", true},
	{columns.Energy, "Energy_score range", false},
	{columns.Transport, "Transport range (optional)", false},
}

// Build derives the sidebar controls and applies the selection to t. Controls
// are built in the order area, bedrooms, energy, transport, each from the view
// left by the constraints before it. Unbound roles get no control. A numeric
// role whose view has no numbers, or whose min equals its max, gets no control
// and no constraint. areaLimit <= 0 uses DefaultAreaLimit.
func Build(t *analysis.Table, b columns.Bindings, sel Selection, areaLimit int) *Result {
	if areaLimit <= 0 {
		areaLimit = DefaultAreaLimit
	}
	res := &Result{
		Spec: Spec{Categories: map[columns.Role][]string{}, Ranges: map[columns.Role]Range{}},
		View: t,
	}

	if col, ok := b.Column(columns.Area); ok && t.HasColumn(col) {
		opts := distinct(t, col)
		c := Control{Role: columns.Area, Label: "Area", Column: col, Options: opts}
		if sel.AreasSet {
			c.Selected = requested(sel.Areas, opts)
		} else if len(opts) > areaLimit {
			c.Selected = append([]string(nil), opts[:areaLimit]...)
		} else {
			c.Selected = append([]string(nil), opts...)
		}
		res.Controls = append(res.Controls, c)
		if len(c.Selected) > 0 {
			res.Spec.Categories[columns.Area] = c.Selected
			res.View = Apply(res.View, b, Spec{Categories: map[columns.Role][]string{columns.Area: c.Selected}})
		}
	}

	for _, rr := range rangeRoles {
		col, ok := b.Column(rr.role)
		if !ok || !res.View.HasColumn(col) {
			continue
		}
		nums := res.View.Numeric(col)
		if len(nums) == 0 {
			continue
		}
		lo, hi := nums[0], nums[0]
		for _, v := range nums[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if rr.integer {
			lo, hi = math.Trunc(lo), math.Trunc(hi)
		}
		if lo == hi {
			continue
		}
		bounds := Range{Lo: lo, Hi: hi}
		val := bounds
		if req, ok := sel.Ranges[rr.role]; ok {
			val = clamp(req, bounds, rr.integer)
		}
		res.Controls = append(res.Controls, Control{
			Role: rr.role, Label: rr.label, Column: col,
			Bounds: bounds, Value: val, Integer: rr.integer,
		})
		res.Spec.Ranges[rr.role] = val
		res.View = Apply(res.View, b, Spec{Ranges: map[columns.Role]Range{rr.role: val}})
	}
	return res
}

func clamp(r, bounds Range, integer bool) Range {
	if r.Lo > r.Hi {
		r.Lo, r.Hi = r.Hi, r.Lo
	}
	if integer {
		r.Lo, r.Hi = math.Round(r.Lo), math.Round(r.Hi)
	}
	r.Lo = math.Min(math.Max(r.Lo, bounds.Lo), bounds.Hi)
	r.Hi = math.Min(math.Max(r.Hi, bounds.Lo), bounds.Hi)
	return r
}

// distinct returns the sorted distinct non-missing values of a column.
// Numeric-looking values sort numerically and ahead of text.
func distinct(t *analysis.Table, col string) []string {
	vals, _ := t.Column(col)
	seen := make(map[string]struct{}, len(vals))
	var out []string
	for _, v := range vals {
		if v.IsMissing() {
			continue
		}
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		fi, ei := strconv.ParseFloat(out[i], 64)
		fj, ej := strconv.ParseFloat(out[j], 64)
		switch {
		case ei == nil && ej == nil:
			if fi != fj {
				return fi < fj
			}
			return out[i] < out[j]
		case ei == nil:
			return true
		case ej == nil:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// requested returns the explicit area choice: offered values in option order,
// then values no option matches in request order. Unmatched values stay in
// the constraint so they select nothing rather than lifting it.
func requested(req, opts []string) []string {
	want := make(map[string]struct{}, len(req))
	for _, r := range req {
		if r != "" {
			want[r] = struct{}{}
		}
	}
	var out []string
	for _, o := range opts {
		if _, ok := want[o]; ok {
			out = append(out, o)
			delete(want, o)
		}
	}
	for _, r := range req {
		if _, ok := want[r]; ok {
			out = append(out, r)
			delete(want, r)
		}
	}
	return out
}
