package analysis

import (
	"bytes"
	"testing"
)

func TestReadCSVInfersAndSkipsBlankRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv", "\uFEFFArea,price,bedrooms\nBrera,\"500,000\",2\n,,\nNavigli,350000,\n")
	tbl, err := ReadCSV(path, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tbl.Columns[0] != "Area" {
		t.Fatalf("BOM not stripped: %q", tbl.Columns[0])
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d", tbl.Len())
	}
	if _, ok := tbl.Rows[0][1].Float(); ok {
		t.Fatal("thousands separator should not coerce")
	}
	if f, ok := tbl.Rows[1][1].Float(); !ok || f != 350000 {
		t.Fatalf("price = %v %v", f, ok)
	}
	if !tbl.Rows[1][2].IsMissing() {
		t.Fatal("empty cell should be missing")
	}
}

func TestReadCSVTabDelimitedByExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.tsv", "a\tb\n1\tx\n")
	tbl, err := ReadCSV(path, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(tbl.Columns) != 2 || tbl.Rows[0][1].String() != "x" {
		t.Fatalf("unexpected table %v %v", tbl.Columns, tbl.Rows)
	}
}

func TestWriteCSVKeepsSourceText(t *testing.T) {
	tbl := NewTable("t", []string{"Area", "price", "ok"}, [][]Value{
		{TextValue("Brera, centro"), NumberValue(500000, "500000.0"), NumberValue(1, "True")},
		{TextValue("Navigli"), {}, NumberValue(0, "False")},
	})
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "Area,price,ok\n\"Brera, centro\",500000.0,True\nNavigli,,False\n"
	if buf.String() != want {
		t.Fatalf("csv = %q, want %q", buf.String(), want)
	}
}
