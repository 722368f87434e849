package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/KaramelBytes/housedash/internal/columns"
	"github.com/KaramelBytes/housedash/internal/filter"
)

var rangeParams = []columns.Role{columns.Bedrooms, columns.Energy, columns.Transport}

// parseSelection reads widget state from a query string. "area" may repeat;
// "area_set=1" marks an explicit (possibly empty) area choice. Numeric roles
// use "<role>_min" and "<role>_max"; an omitted side is open.
func parseSelection(q url.Values) (filter.Selection, error) {
	sel := filter.Selection{Ranges: map[columns.Role]filter.Range{}}
	for _, a := range q["area"] {
		if a != "" {
			sel.Areas = append(sel.Areas, a)
		}
	}
	sel.AreasSet = q.Get("area_set") == "1" || len(sel.Areas) > 0
	for _, role := range rangeParams {
		lo, hasLo, err := floatParam(q, string(role)+"_min", math.Inf(-1))
		if err != nil {
			return sel, err
		}
		hi, hasHi, err := floatParam(q, string(role)+"_max", math.Inf(1))
		if err != nil {
			return sel, err
		}
		if hasLo || hasHi {
			sel.Ranges[role] = filter.Range{Lo: lo, Hi: hi}
		}
	}
	return sel, nil
}

func floatParam(q url.Values, key string, def float64) (float64, bool, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return def, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, true, nil
}

// encodeSelection renders the effective state of controls as a query string,
// so that links such as the CSV export reproduce the current view.
func encodeSelection(controls []filter.Control) string {
	q := url.Values{}
	for _, c := range controls {
		if c.Categorical() {
			q.Set("area_set", "1")
			for _, s := range c.Selected {
				q.Add("area", s)
			}
			continue
		}
		q.Set(string(c.Role)+"_min", formatNum(c.Value.Lo))
		q.Set(string(c.Role)+"_max", formatNum(c.Value.Hi))
	}
	return q.Encode()
}

func formatNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
