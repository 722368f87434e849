package filter

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/housedash/internal/analysis"
	"github.com/KaramelBytes/housedash/internal/columns"
)

func num(f float64) analysis.Value { return analysis.NumberValue(f, "") }
func txt(s string) analysis.Value { return analysis.TextValue(s) }

// listings has Area, Bedroom, Energy_score, price, priceperm.
func listings() (*analysis.Table, columns.Bindings) {
	tbl := analysis.NewTable("listings", []string{"Area", "Bedroom", "Energy_score", "price", "priceperm"}, [][]analysis.Value{
		{txt("Brera"), num(2), num(80), num(500000), num(8000)},
		{txt("Navigli"), num(1), num(60), num(300000), num(6000)},
		{txt("Brera"), num(3), num(90), num(900000), num(9000)},
		{txt("Isola"), num(2), {}, num(450000), num(7000)},
		{{}, num(2), num(70), txt("n/a"), {}},
	})
	return tbl, columns.ResolveAll(tbl)
}

func areas(t *analysis.Table) []string {
	var out []string
	for _, r := range t.Rows {
		out = append(out, r[0].String())
	}
	return out
}

func TestApplyEmptySpecKeepsEverything(t *testing.T) {
	tbl, b := listings()
	got := Apply(tbl, b, Spec{})
	if got.Len() != tbl.Len() {
		t.Fatalf("len = %d, want %d", got.Len(), tbl.Len())
	}
	if !(Spec{Categories: map[columns.Role][]string{columns.Area: nil}}).Empty() {
		t.Fatal("empty category set should count as empty")
	}
}

func TestApplyCategoryAndRange(t *testing.T) {
	tbl, b := listings()
	spec := Spec{
		Categories: map[columns.Role][]string{columns.Area: {"Brera"}},
		Ranges:     map[columns.Role]Range{columns.Bedrooms: {Lo: 2, Hi: 2}},
	}
	got := Apply(tbl, b, spec)
	if diff := cmp.Diff([]string{"Brera"}, areas(got)); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
	if got.Rows[0][3].String() != "500000" {
		t.Fatalf("unexpected row %v", got.Rows[0])
	}
}

func TestApplyRangeIsInclusiveAndDropsMissing(t *testing.T) {
	tbl, b := listings()
	got := Apply(tbl, b, Spec{Ranges: map[columns.Role]Range{columns.Energy: {Lo: 60, Hi: 80}}})
	if diff := cmp.Diff([]string{"Brera", "Navigli", ""}, areas(got)); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
}

func TestApplyMissingCategoryNeverMatches(t *testing.T) {
	tbl, b := listings()
	got := Apply(tbl, b, Spec{Categories: map[columns.Role][]string{columns.Area: {"Brera", "Navigli", "Isola", ""}}})
	if got.Len() != 4 {
		t.Fatalf("len = %d, want 4", got.Len())
	}
}

func TestApplyIgnoresUnboundRoles(t *testing.T) {
	tbl, b := listings()
	got := Apply(tbl, b, Spec{Ranges: map[columns.Role]Range{columns.Transport: {Lo: 100, Hi: 200}}})
	if got.Len() != tbl.Len() {
		t.Fatalf("unbound role filtered rows: %d", got.Len())
	}
}

func TestApplyIsSubsetAndIdempotent(t *testing.T) {
	tbl, b := listings()
	spec := Spec{
		Categories: map[columns.Role][]string{columns.Area: {"Brera", "Isola"}},
		Ranges:     map[columns.Role]Range{columns.Bedrooms: {Lo: 2, Hi: 3}},
	}
	once := Apply(tbl, b, spec)
	twice := Apply(once, b, spec)
	if diff := cmp.Diff(areas(once), areas(twice)); diff != "" {
		t.Fatalf("not idempotent (-once +twice):\n%s", diff)
	}
	if once.Len() > tbl.Len() {
		t.Fatal("filter added rows")
	}
	if diff := cmp.Diff([]string{"Brera", "Brera", "Isola"}, areas(once)); diff != "" {
		t.Fatalf("order not preserved (-want +got):\n%s", diff)
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange(" 3 : 1 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r != (Range{Lo: 1, Hi: 3}) {
		t.Fatalf("range = %v", r)
	}
	if r.String() != "1:3" {
		t.Fatalf("string = %q", r.String())
	}
	for _, bad := range []string{"", "3", "a:2", "1:b", "nan:5", "1:NaN"} {
		if _, err := ParseRange(bad); err == nil {
			t.Errorf("ParseRange(%q) should fail", bad)
		}
	}
	if !(Range{Lo: math.Inf(-1), Hi: 5}).Contains(-1e300) {
		t.Fatal("open lower bound should contain everything below Hi")
	}
}

func TestApplyBedroomRangeEndToEnd(t *testing.T) {
	tbl := analysis.NewTable("t", []string{"Area", "Bedroom", "price"}, [][]analysis.Value{
		{txt("X"), num(2), num(500000)},
		{txt("Y"), num(5), num(15)},
	})
	b := columns.ResolveAll(tbl)
	spec := Spec{Ranges: map[columns.Role]Range{columns.Bedrooms: {Lo: 2, Hi: 3}}}

	got := Apply(tbl, b, spec)
	if diff := cmp.Diff([]string{"X"}, areas(got)); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
	if m := analysis.CentralTendency(got, b[columns.Price], analysis.Median); m != "500,000" {
		t.Fatalf("median price = %q", m)
	}

	res := Build(tbl, b, Selection{Ranges: spec.Ranges}, 0)
	if diff := cmp.Diff(areas(got), areas(res.View)); diff != "" {
		t.Fatalf("Build and Apply disagree (-apply +build):\n%s", diff)
	}
}
