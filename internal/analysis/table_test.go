package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewTableNormalisesHeader(t *testing.T) {
	tbl := NewTable("t", []string{"price", "", "price", " Area ", "price"}, [][]Value{
		{NumberValue(1, "")},
	})
	want := []string{"price", "Unnamed: 1", "price.1", "Area", "price.2"}
	if strings.Join(tbl.Columns, "|") != strings.Join(want, "|") {
		t.Fatalf("columns = %v, want %v", tbl.Columns, want)
	}
	if len(tbl.Rows[0]) != len(want) {
		t.Fatalf("row not padded: %d cells", len(tbl.Rows[0]))
	}
	if !tbl.Rows[0][4].IsMissing() {
		t.Fatalf("padded cell should be missing")
	}
}

func TestValueFloatIsStrict(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
		ok   bool
	}{
		{NumberValue(3.5, ""), 3.5, true},
		{TextValue(" 12 "), 12, true},
		{TextValue("1e3"), 1000, true},
		{TextValue("1,234"), 0, false},
		{TextValue("3,5"), 0, false},
		{TextValue("n/a"), 0, false},
		{TextValue("NaN"), 0, false},
		{TextValue(""), 0, false},
		{Value{}, 0, false},
	}
	for _, c := range cases {
		got, ok := c.v.Float()
		if ok != c.ok || got != c.want {
			t.Errorf("Float(%q) = %v,%v want %v,%v", c.v.Raw, got, ok, c.want, c.ok)
		}
	}
}

func TestSelectAndHeadShareColumns(t *testing.T) {
	tbl := NewTable("t", []string{"n"}, [][]Value{
		{NumberValue(1, "")}, {NumberValue(2, "")}, {TextValue("x")}, {NumberValue(4, "")},
	})
	even := tbl.Select(func(r []Value) bool {
		f, ok := r[0].Float()
		return ok && int(f)%2 == 0
	})
	if even.Len() != 2 {
		t.Fatalf("select len = %d", even.Len())
	}
	if !even.HasColumn("n") {
		t.Fatal("view lost its column index")
	}
	if got := even.Numeric("n"); len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("numeric = %v", got)
	}
	if tbl.Head(2).Len() != 2 || tbl.Head(100).Len() != 4 || tbl.Head(-1).Len() != 4 {
		t.Fatal("unexpected head lengths")
	}
	if tbl.Len() != 4 {
		t.Fatal("source table modified")
	}
	var nilTable *Table
	if nilTable.Len() != 0 || nilTable.HasColumn("n") {
		t.Fatal("nil table should be empty")
	}
}
