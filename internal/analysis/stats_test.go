package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestFormatMetric(t *testing.T) {
	cases := map[float64]string{
		1234:        "1,234",
		500000:      "500,000",
		0.456:       "0.456",
		10:          "10.000",
		10.5:        "10",
		11.5:        "12",
		-2500.4:     "-2,500",
		-3.14159:    "-3.142",
		0:           "0.000",
		1234567.891: "1,234,568",
	}
	for v, want := range cases {
		if got := FormatMetric(v); got != want {
			t.Errorf("FormatMetric(%v) = %q, want %q", v, got, want)
		}
	}
	if got := FormatMetric(math.NaN()); got != NoData {
		t.Errorf("NaN = %q", got)
	}
	if got := FormatMetric(math.Inf(1)); got != "+Inf" {
		t.Errorf("+Inf = %q", got)
	}
}

func TestStatisticCompute(t *testing.T) {
	vals := []float64{5, 1, 3, 100}
	m, err := Median.Compute(vals)
	if err != nil || m != 4 {
		t.Fatalf("median = %v, %v", m, err)
	}
	if vals[0] != 5 {
		t.Fatal("median must not reorder its input")
	}
	mean, err := Mean.Compute(vals)
	if err != nil || mean != 27.25 {
		t.Fatalf("mean = %v, %v", mean, err)
	}
	if _, err := Mean.Compute(nil); !errors.Is(err, ErrNoNumericData) {
		t.Fatalf("expected ErrNoNumericData, got %v", err)
	}
}

func TestCentralTendency(t *testing.T) {
	tbl := NewTable("t", []string{"price", "ln_price", "note"}, [][]Value{
		{NumberValue(500000, ""), NumberValue(13.1, ""), TextValue("a")},
		{TextValue("n/a"), NumberValue(12.9, ""), TextValue("b")},
		{NumberValue(300000, ""), {}, {}},
	})
	if got := CentralTendency(tbl, "price", Median); got != "400,000" {
		t.Errorf("median price = %q", got)
	}
	if got := CentralTendency(tbl, "ln_price", Mean); got != "13" {
		t.Errorf("mean ln_price = %q", got)
	}
	if got := CentralTendency(tbl, "note", Median); got != NoData {
		t.Errorf("text column = %q", got)
	}
	if got := CentralTendency(tbl, "", Median); got != NoData {
		t.Errorf("unbound column = %q", got)
	}
	if got := CentralTendency(tbl.Head(0), "price", Median); got != NoData {
		t.Errorf("empty view = %q", got)
	}
}

func TestHistogram(t *testing.T) {
	vals := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins, err := Histogram(vals, 5)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(bins) != 5 {
		t.Fatalf("bins = %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(vals) {
		t.Fatalf("counts sum to %d, want %d", total, len(vals))
	}
	// right-closed: (-0.01,2] holds 0,1,2 and (2,4] holds 3,4
	if bins[0].Count != 3 || bins[1].Count != 2 {
		t.Fatalf("counts = %d,%d", bins[0].Count, bins[1].Count)
	}
	if bins[0].Lo >= 0 || bins[4].Hi != 10 {
		t.Fatalf("edges = %v..%v", bins[0].Lo, bins[4].Hi)
	}

	one, err := Histogram([]float64{7, 7}, 3)
	if err != nil {
		t.Fatalf("constant histogram: %v", err)
	}
	if n := one[0].Count + one[1].Count + one[2].Count; n != 2 {
		t.Fatalf("constant values counted %d times", n)
	}

	if _, err := Histogram(nil, 25); !errors.Is(err, ErrNoNumericData) {
		t.Fatalf("expected ErrNoNumericData, got %v", err)
	}
}
