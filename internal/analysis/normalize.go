package analysis

import (
	"math"
	"strconv"
	"strings"
)

// DefaultCurrency is the glyph stripped from text cells before numeric coercion.
const DefaultCurrency = "₹"

// NormalizeOptions controls the column cleaning pass.
type NormalizeOptions struct {
	// Currency is removed from every text cell. Empty disables stripping.
	Currency string
	// KeepMissingFloat leaves entirely-missing floating columns as floating
	// instead of zero-filling them into integers.
	KeepMissingFloat bool
}

// DefaultNormalizeOptions returns the dashboard defaults.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{Currency: DefaultCurrency}
}

// Conversion records a kind change made by Normalize.
type Conversion struct {
	Column string `json:"column"`
	From   Kind   `json:"from"`
	To     Kind   `json:"to"`
}

// StripCurrency removes every occurrence of glyph from s.
func StripCurrency(s, glyph string) string {
	if glyph == "" {
		return s
	}
	return strings.ReplaceAll(s, glyph, "")
}

// Normalize coerces text columns to numbers and downcasts whole-valued
// floating columns to integers. Names and order are preserved; cells that
// fail to parse become missing.
func Normalize(t *Table, opt NormalizeOptions) []Conversion {
	var changes []Conversion
	for i, c := range t.Columns {
		if c.Kind != KindText {
			continue
		}
		nc := coerceText(c, opt.Currency)
		t.Columns[i] = nc
		changes = append(changes, Conversion{Column: c.Name, From: KindText, To: nc.Kind})
	}
	for i, c := range t.Columns {
		if c.Kind != KindFloat {
			continue
		}
		if opt.KeepMissingFloat && c.NonNull() == 0 && c.Len() > 0 {
			continue
		}
		if !wholeValued(c.Floats) {
			continue
		}
		t.Columns[i] = NewIntColumn(c.Name, zeroFilledInts(c.Floats))
		changes = mergeConversion(changes, Conversion{Column: c.Name, From: KindFloat, To: KindInt})
	}
	return changes
}

func mergeConversion(changes []Conversion, c Conversion) []Conversion {
	for i := range changes {
		if changes[i].Column == c.Column {
			changes[i].To = c.To
			return changes
		}
	}
	return append(changes, c)
}

func coerceText(c *Column, glyph string) *Column {
	n := len(c.Text)
	ints := make([]Null[int64], n)
	floats := make([]Null[float64], n)
	allInt := n > 0
	for i, cell := range c.Text {
		if !cell.Valid {
			allInt = false
			continue
		}
		num, ok := parseNumber(StripCurrency(cell.V, glyph))
		if !ok {
			allInt = false
			continue
		}
		if num.isInt {
			ints[i] = Some(num.i)
		} else {
			allInt = false
		}
		floats[i] = Some(num.f)
	}
	if allInt {
		return NewIntColumn(c.Name, ints)
	}
	return NewFloatColumn(c.Name, floats)
}

// wholeValued reports whether every cell, missing read as zero, is integral
// and representable as int64.
func wholeValued(cells []Null[float64]) bool {
	for _, cell := range cells {
		if !cell.Valid {
			continue
		}
		v := cell.V
		if math.IsInf(v, 0) || math.IsNaN(v) || v != math.Trunc(v) {
			return false
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return false
		}
	}
	return true
}

func zeroFilledInts(cells []Null[float64]) []Null[int64] {
	out := make([]Null[int64], len(cells))
	for i, cell := range cells {
		if cell.Valid {
			out[i] = Some(int64(cell.V))
		} else {
			out[i] = Some[int64](0)
		}
	}
	return out
}

type number struct {
	i     int64
	f     float64
	isInt bool
}

// parseNumber accepts decimal integers and floats (including exponents and
// inf). NaN and hex/underscore forms are rejected.
func parseNumber(s string) (number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return number{}, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return number{i: i, f: float64(i), isInt: true}, true
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "0x") || strings.Contains(s, "_") {
		return number{}, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return number{}, false
	}
	return number{f: f}, true
}
