package analysis

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
)

// NoData is shown wherever a statistic has no numeric input.
const NoData = "—"

// ErrNoNumericData reports that a column had no coercible numeric values.
var ErrNoNumericData = errors.New("no numeric data")

// Statistic selects the central tendency measure.
type Statistic int

const (
	Mean Statistic = iota
	Median
)

func (s Statistic) String() string {
	if s == Median {
		return "median"
	}
	return "mean"
}

// Compute returns the statistic over values, or ErrNoNumericData when values
// is empty.
func (s Statistic) Compute(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoNumericData
	}
	switch s {
	case Median:
		cp := make([]float64, len(values))
		copy(cp, values)
		sort.Float64s(cp)
		return quantile(cp, 0.5), nil
	default:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values)), nil
	}
}

// CentralTendency computes the statistic over the named column of view and
// formats it for display. A column that is empty, absent, or has no numeric
// cells yields NoData.
func CentralTendency(view *Table, column string, s Statistic) string {
	if column == "" || !view.HasColumn(column) {
		return NoData
	}
	v, err := s.Compute(view.Numeric(column))
	if err != nil {
		return NoData
	}
	return FormatMetric(v)
}

// FormatMetric renders large magnitudes (|v| > 10) with no decimals and
// thousands separators, and small ones with three decimals.
func FormatMetric(v float64) string {
	if math.IsNaN(v) {
		return NoData
	}
	if math.Abs(v) > 10 {
		if math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'f', 0, 64)
		}
		if math.Abs(v) >= math.MaxInt64 {
			return humanize.Commaf(math.RoundToEven(v))
		}
		return humanize.Comma(int64(math.RoundToEven(v)))
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// FormatCount renders a row count with thousands separators.
func FormatCount(n int) string { return humanize.Comma(int64(n)) }

// Bin is one right-closed histogram interval (Lo, Hi].
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits values into n equal-width bins between their min and max.
// The lowest edge is widened by 0.1% of the range so the minimum falls inside
// the first bin; a zero range is widened by 0.1% of the value on each side.
func Histogram(values []float64, n int) ([]Bin, error) {
	if len(values) == 0 {
		return nil, ErrNoNumericData
	}
	if n <= 0 {
		n = 1
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	edges := make([]float64, n+1)
	if lo == hi {
		pad := 0.001 * math.Abs(lo)
		if pad == 0 {
			pad = 0.001
		}
		lo, hi = lo-pad, hi+pad
		for i := range edges {
			edges[i] = lo + (hi-lo)*float64(i)/float64(n)
		}
	} else {
		for i := range edges {
			edges[i] = lo + (hi-lo)*float64(i)/float64(n)
		}
		edges[0] = lo - (hi-lo)*0.001
	}
	edges[n] = hi
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lo: edges[i], Hi: edges[i+1]}
	}
	for _, v := range values {
		// first upper edge >= v
		i := sort.SearchFloat64s(edges[1:], v)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins, nil
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
