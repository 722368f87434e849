package analysis

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadXLSX loads one worksheet of a .xlsx workbook into a Table. The first
// row is the header. If sheetName is empty and sheetIndex <= 0 the first sheet
// is read; sheetIndex is 1-based (Sheet1 == 1).
func ReadXLSX(path string, sheetName string, sheetIndex int) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	sheets := parseWorkbook(readZipFile(zr, "xl/workbook.xml"))
	rels := parseRelationships(readZipFile(zr, "xl/_rels/workbook.xml.rels"))

	target := ""
	if sheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s.Name, sheetName) {
				if rel, ok := rels[s.RID]; ok {
					target = normalizeRelPath(rel)
				}
				break
			}
		}
		if target == "" {
			names := make([]string, len(sheets))
			for i, s := range sheets {
				names[i] = s.Name
			}
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				sheetName, filepath.Base(path), strings.Join(names, ", "))
		}
	}
	if target == "" {
		idx := sheetIndex
		if idx <= 0 {
			idx = 1
		}
		// Prefer workbook order, then sheetId, then the conventional file name.
		if idx <= len(sheets) {
			if rel, ok := rels[sheets[idx-1].RID]; ok {
				target = normalizeRelPath(rel)
			}
		}
		if target == "" {
			for _, s := range sheets {
				if s.SheetID == idx {
					if rel, ok := rels[s.RID]; ok {
						target = normalizeRelPath(rel)
					}
					break
				}
			}
		}
		if target == "" {
			target = filepath.ToSlash(filepath.Join("xl", "worksheets", fmt.Sprintf("sheet%d.xml", idx)))
		}
	}
	sheetXML := readZipFile(zr, target)
	if sheetXML == nil {
		return nil, fmt.Errorf("open xlsx: worksheet %s missing from '%s'", target, filepath.Base(path))
	}

	rr := newSheetRowReader(sheetXML, parseSharedStrings(readZipFile(zr, "xl/sharedStrings.xml")))
	name := filepath.Base(path)
	header, ok := rr.Next()
	if !ok {
		if rr.err != nil {
			return nil, fmt.Errorf("parse sheet: %w", rr.err)
		}
		return NewTable(name, nil, nil), nil
	}
	cols := make([]string, len(header))
	for i, v := range header {
		cols[i] = v.String()
	}
	var rows [][]Value
	for {
		row, ok := rr.Next()
		if !ok {
			break
		}
		if blankRow(row) {
			continue
		}
		rows = append(rows, row)
	}
	if rr.err != nil {
		return nil, fmt.Errorf("parse sheet: %w", rr.err)
	}
	return NewTable(name, cols, rows), nil
}

func blankRow(row []Value) bool {
	for _, v := range row {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}

type wbSheet struct {
	Name    string
	SheetID int
	RID     string
}

// parseWorkbook extracts sheet entries, in workbook order, with names and
// relationship ids.
func parseWorkbook(data []byte) []wbSheet {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var sheets []wbSheet
	for {
		tok, err := dec.Token()
		if err != nil {
			return sheets
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		var s wbSheet
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "name":
				s.Name = a.Value
			case "sheetId":
				s.SheetID = atoiSafe(a.Value)
			case "id":
				s.RID = a.Value // r: namespace
			}
		}
		sheets = append(sheets, s)
	}
}

// parseRelationships returns map[r:id]Target.
func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	if len(data) == 0 {
		return out
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	}
}

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return b
	}
	return nil
}

// parseSharedStrings flattens rich-text runs of each <si>; phonetic runs
// (<rPh>) are skipped.
func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT, inPh bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inT = !inPh
			case "rPh":
				inPh = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inT = false
			case "rPh":
				inPh = false
			case "si":
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write(se)
			}
		}
	}
}

// sheetRowReader streams typed rows out of a worksheet part.
type sheetRowReader struct {
	dec    *xml.Decoder
	shared []string
	err    error
}

func newSheetRowReader(data []byte, shared []string) *sheetRowReader {
	return &sheetRowReader{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

// Next returns the next <row>. Cells are placed by their reference so that
// sparse rows keep their column positions. Decoding errors other than EOF are
// kept in r.err.
func (r *sheetRowReader) Next() ([]Value, bool) {
	var row []Value
	inRow := false
	next := 0
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = err
			}
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				inRow = true
				row = nil
				next = 0
				continue
			}
			if !inRow || se.Name.Local != "c" {
				continue
			}
			var ref, typ string
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "r":
					ref = a.Value
				case "t":
					typ = a.Value
				}
			}
			col := next
			if ref != "" {
				col = colIndexFromRef(ref)
			}
			next = col + 1
			v, err := r.readCell(typ)
			if err != nil {
				r.err = err
				return nil, false
			}
			if col < 0 {
				continue
			}
			if len(row) <= col {
				tmp := make([]Value, col+1)
				copy(tmp, row)
				row = tmp
			}
			row[col] = v
		case xml.EndElement:
			if se.Name.Local == "row" && inRow {
				return row, true
			}
		}
	}
}

// readCell consumes tokens up to </c> and types the cell by its t attribute.
func (r *sheetRowReader) readCell(typ string) (Value, error) {
	var sb strings.Builder
	var inVal bool
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return Value{}, fmt.Errorf("read cell: %w", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				inVal = true
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "v", "t":
				inVal = false
			case "c":
				return typedCell(typ, sb.String(), r.shared), nil
			}
		case xml.CharData:
			if inVal {
				sb.Write(se)
			}
		}
	}
}

func typedCell(typ, raw string, shared []string) Value {
	switch typ {
	case "s":
		if raw == "" {
			return Value{}
		}
		idx := atoiSafe(raw)
		if idx >= 0 && idx < len(shared) {
			return TextValue(shared[idx])
		}
		return Value{}
	case "inlineStr", "str":
		return TextValue(raw)
	case "b":
		switch strings.TrimSpace(raw) {
		case "1":
			return NumberValue(1, "True")
		case "0":
			return NumberValue(0, "False")
		}
		return Value{}
	case "e":
		return Value{}
	default:
		t := strings.TrimSpace(raw)
		if t == "" {
			return Value{}
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return NumberValue(f, "")
		}
		return TextValue(raw)
	}
}

// colIndexFromRef converts refs like "C12" to a 0-based column index.
func colIndexFromRef(ref string) int {
	idx := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// normalizeRelPath converts relationship Target paths to ZIP entry names.
// Targets may be absolute ("/xl/worksheets/sheet1.xml") or relative to xl/.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return "xl/" + rel
}
