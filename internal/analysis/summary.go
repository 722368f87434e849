package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Report is a markdown-friendly schema summary of a loaded table.
type Report struct {
	Name string
	Rows int
	Cols []ColumnSummary
}

// ColumnSummary captures inferred kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|text|empty
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// Describe summarises every column of t. A column is numeric when most of its
// present cells coerce to numbers, categorical when its text values are short
// and repeat, and text otherwise.
func Describe(t *Table) *Report {
	rep := &Report{Name: t.Name, Rows: t.Len()}
	for j, name := range t.Columns {
		s := ColumnSummary{Name: name}
		cats := map[string]int{}
		var nums []float64
		for _, row := range t.Rows {
			v := row[j]
			if v.IsMissing() {
				s.Missing++
				continue
			}
			s.NonNull++
			if f, ok := v.Float(); ok {
				nums = append(nums, f)
				continue
			}
			if len(cats) <= 10000 && len(v.Raw) <= 64 {
				cats[v.Raw]++
			}
		}
		switch {
		case s.NonNull == 0:
			s.Kind = "empty"
		case len(nums)*2 >= s.NonNull:
			s.Kind = "numeric"
			s.Min, s.Max = math.Inf(1), math.Inf(-1)
			var sum float64
			for _, f := range nums {
				s.Min = math.Min(s.Min, f)
				s.Max = math.Max(s.Max, f)
				sum += f
			}
			s.Mean = sum / float64(len(nums))
		case len(cats) > 0 && len(cats) < s.NonNull:
			s.Kind = "categorical"
			s.Unique = len(cats)
			s.TopValues = topValues(cats, 8)
		default:
			s.Kind = "text"
			s.Unique = len(cats)
		}
		rep.Cols = append(rep.Cols, s)
	}
	return rep
}

func topValues(cats map[string]int, n int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > n {
		tops = tops[:n]
	}
	return tops
}

// Markdown renders a compact schema report.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %s\n", FormatCount(r.Rows)))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeVal(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g", c.Min, c.Max, c.Mean))
		case "categorical":
			b.WriteString(" — top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			if c.Unique > len(c.TopValues) {
				b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
