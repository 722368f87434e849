package analysis

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// xcell is one worksheet cell in a test workbook. An empty typ with an empty
// value leaves the cell out of the row entirely.
type xcell struct {
	typ string
	val string
}

func str(s string) xcell { return xcell{typ: "s", val: s} }
func inl(s string) xcell { return xcell{typ: "inlineStr", val: s} }
func num(s string) xcell { return xcell{val: s} }
func boolean(b bool) xcell { return xcell{typ: "b", val: map[bool]string{true: "1", false: "0"}[b]} }
func errCell() xcell { return xcell{typ: "e", val: "#N/A"} }
func skip() xcell { return xcell{} }
func (c xcell) empty() bool { return c.typ == "" && c.val == "" }

type xsheet struct {
	name string
	rows [][]xcell
}

type xlsxFixture struct {
	// sheets defaults to a single "Sheet1" holding rows.
	sheets []xsheet
	rows   [][]xcell
	// relTarget overrides the relationship target of the first sheet.
	relTarget string
}

func xmlEscape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func cellRef(col, row int) string {
	name := ""
	for col++; col > 0; col = (col - 1) / 26 {
		name = string(rune('A'+(col-1)%26)) + name
	}
	return fmt.Sprintf("%s%d", name, row)
}

// writeXLSX builds a minimal workbook with shared strings and returns its path.
func writeXLSX(t *testing.T, dir, name string, fx xlsxFixture) string {
	t.Helper()
	sheets := fx.sheets
	if len(sheets) == 0 {
		sheets = []xsheet{{name: "Sheet1", rows: fx.rows}}
	}

	var shared []string
	sharedIdx := map[string]int{}
	intern := func(s string) int {
		if i, ok := sharedIdx[s]; ok {
			return i
		}
		sharedIdx[s] = len(shared)
		shared = append(shared, s)
		return sharedIdx[s]
	}

	var wb, rels strings.Builder
	wb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets>`)
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	parts := map[string]string{}
	for i, sh := range sheets {
		rid := fmt.Sprintf("rId%d", i+1)
		target := fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		if i == 0 && fx.relTarget != "" {
			target = fx.relTarget
		}
		fmt.Fprintf(&wb, `<sheet name="%s" sheetId="%d" r:id="%s"/>`, xmlEscape(sh.name), i+1, rid)
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="%s"/>`, rid, target)

		var ws strings.Builder
		ws.WriteString(`<?xml version="1.0" encoding="UTF-8"?><worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
		for r, row := range sh.rows {
			fmt.Fprintf(&ws, `<row r="%d">`, r+1)
			for c, cell := range row {
				if cell.empty() {
					continue
				}
				ref := cellRef(c, r+1)
				switch cell.typ {
				case "s":
					fmt.Fprintf(&ws, `<c r="%s" t="s"><v>%d</v></c>`, ref, intern(cell.val))
				case "inlineStr":
					fmt.Fprintf(&ws, `<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`, ref, xmlEscape(cell.val))
				case "":
					fmt.Fprintf(&ws, `<c r="%s"><v>%s</v></c>`, ref, xmlEscape(cell.val))
				default:
					fmt.Fprintf(&ws, `<c r="%s" t="%s"><v>%s</v></c>`, ref, cell.typ, xmlEscape(cell.val))
				}
			}
			ws.WriteString(`</row>`)
		}
		ws.WriteString(`</sheetData></worksheet>`)
		parts[normalizeRelPath(target)] = ws.String()
	}
	wb.WriteString(`</sheets></workbook>`)
	rels.WriteString(`</Relationships>`)

	var sst strings.Builder
	fmt.Fprintf(&sst, `<?xml version="1.0" encoding="UTF-8"?><sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`, len(shared), len(shared))
	for _, s := range shared {
		fmt.Fprintf(&sst, `<si><t>%s</t></si>`, xmlEscape(s))
	}
	sst.WriteString(`</sst>`)

	parts["xl/workbook.xml"] = wb.String()
	parts["xl/_rels/workbook.xml.rels"] = rels.String()
	parts["xl/sharedStrings.xml"] = sst.String()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return path
}
