// Package columns binds the dashboard's semantic roles to the column names
// actually present in a dataset.
package columns

import "github.com/KaramelBytes/housedash/internal/analysis"

// Role is a semantic category a dataset column can play.
type Role string

const (
	Area         Role = "area"
	Bedrooms     Role = "bedrooms"
	Energy       Role = "energy"
	Transport    Role = "transport"
	Price        Role = "price"
	PricePerArea Role = "price_per_area"
	LnPrice      Role = "ln_price"
)

// Roles lists every role in resolution order.
var Roles = []Role{Area, Bedrooms, Energy, Transport, Price, PricePerArea, LnPrice}

// candidates holds the literal column names accepted for each role, highest
// priority first. Matching is exact and case-sensitive.
var candidates = map[Role][]string{
	Area:         {"Area", "area", "neighborhood", "Neighbourhood", "quartiere", "Quartiere"},
	Bedrooms:     {"Bedroom", "Bedrooms", "bedroom", "bedrooms", "beds"},
	Energy:       {"Energy_score", "energy_score", "energy", "EnergyScore", "energyScore"},
	Transport:    {"transport", "Transport", "transport_score", "Transport_score"},
	Price:        {"price", "Price"},
	PricePerArea: {"priceperm", "price_per_m2", "price_per_sqm", "PricePerm", "price_per_meter"},
	LnPrice:      {"ln_price", "lnprice", "Ln_price"},
}

// Candidates returns a copy of the accepted names for r.
func Candidates(r Role) []string {
	c := candidates[r]
	out := make([]string, len(c))
	copy(out, c)
	return out
}

// Bindings maps each bound role to its column name. Unbound roles are absent.
type Bindings map[Role]string

// Column returns the bound column for r.
func (b Bindings) Column(r Role) (string, bool) {
	c, ok := b[r]
	return c, ok
}

// Resolve returns the first candidate for r that names a column of t.
func Resolve(t *analysis.Table, r Role) (string, bool) {
	for _, c := range candidates[r] {
		if t.HasColumn(c) {
			return c, true
		}
	}
	return "", false
}

// ResolveAll binds every role against t.
func ResolveAll(t *analysis.Table) Bindings {
	b := make(Bindings, len(Roles))
	for _, r := range Roles {
		if c, ok := Resolve(t, r); ok {
			b[r] = c
		}
	}
	return b
}
