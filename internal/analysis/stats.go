package analysis

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StatCell is one entry of a describe table: a number, a label, or undefined.
type StatCell struct {
	Num   Null[float64]
	Label string
}

func num(v float64) StatCell {
	if math.IsNaN(v) {
		return StatCell{}
	}
	return StatCell{Num: Some(v)}
}

// String formats numbers with six decimals; undefined cells read "NaN".
func (c StatCell) String() string {
	if c.Label != "" {
		return c.Label
	}
	if !c.Num.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(c.Num.V, 'f', 6, 64)
}

func (c StatCell) MarshalJSON() ([]byte, error) {
	if c.Label != "" {
		return json.Marshal(c.Label)
	}
	if !c.Num.Valid || math.IsInf(c.Num.V, 0) || math.IsNaN(c.Num.V) {
		return []byte("null"), nil
	}
	return json.Marshal(c.Num.V)
}

// NumericSummary holds the describe statistics of one column.
type NumericSummary struct {
	Count                    int
	Mean, Std                Null[float64]
	Min, Q1, Median, Q3, Max Null[float64]
}

// Summarize computes count, mean, sample std, min, quartiles and max.
func Summarize(vals []float64) NumericSummary {
	s := NumericSummary{Count: len(vals)}
	if len(vals) == 0 {
		return s
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	s.Mean = defined(mean)
	if len(sorted) > 1 {
		s.Std = defined(std)
	}
	s.Min = defined(floats.Min(sorted))
	s.Max = defined(floats.Max(sorted))
	s.Q1 = defined(quantile(sorted, 0.25))
	s.Median = defined(quantile(sorted, 0.5))
	s.Q3 = defined(quantile(sorted, 0.75))
	return s
}

// defined treats NaN as undefined; infinities stay valid.
func defined(v float64) Null[float64] {
	if math.IsNaN(v) {
		return Null[float64]{}
	}
	return Some(v)
}

// quantile uses linear interpolation between closest ranks on sorted input.
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

// pairwise returns the rows where both columns are present.
func pairwise(a, b *Column) (xs, ys []float64) {
	for i := 0; i < a.Len(); i++ {
		x, okx := a.Float(i)
		y, oky := b.Float(i)
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string     `json:"columns"`
	Values  [][]StatCell `json:"values"` // row-major, Values[i][j]
}

// Correlations computes Pearson r over pairwise-complete rows. Pairs with
// fewer than two rows or zero variance are undefined.
func Correlations(t *Table) *CorrMatrix {
	var cols []*Column
	for _, c := range t.Columns {
		if c.Kind.Numeric() {
			cols = append(cols, c)
		}
	}
	if len(cols) < 2 {
		return nil
	}
	n := len(cols)
	m := &CorrMatrix{Columns: make([]string, n), Values: make([][]StatCell, n)}
	for i, c := range cols {
		m.Columns[i] = c.Name
		m.Values[i] = make([]StatCell, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			xs, ys := pairwise(cols[i], cols[j])
			var cell StatCell
			if len(xs) >= 2 {
				r := stat.Correlation(xs, ys, nil)
				if r > 1 {
					r = 1
				} else if r < -1 {
					r = -1
				}
				if !math.IsInf(r, 0) {
					cell = num(r)
				}
			}
			m.Values[i][j] = cell
			m.Values[j][i] = cell
		}
	}
	return m
}
