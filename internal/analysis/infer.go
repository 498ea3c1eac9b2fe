package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// naValues are read as missing, matching common dataframe readers.
var naValues = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {},
	"None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell reads as missing.
func IsMissing(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, ok := naValues[s]
	return ok
}

// FromRecords builds a table from a header row and raw records. Short rows
// are padded with missing cells; longer rows are an error. Each column is
// typed integer when every cell is a present integer, floating when every
// present cell is a number, and text otherwise.
func FromRecords(name string, header []string, records [][]string) (*Table, error) {
	names := uniqueNames(header)
	ncol := len(names)
	raw := make([][]Null[string], ncol)
	for j := range raw {
		raw[j] = make([]Null[string], len(records))
	}
	for i, rec := range records {
		if len(rec) > ncol {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", i+2, ncol, len(rec))
		}
		for j, v := range rec {
			if !IsMissing(v) {
				raw[j][i] = Some(v)
			}
		}
	}
	cols := make([]*Column, ncol)
	for j := range names {
		cols[j] = InferColumn(names[j], raw[j])
	}
	return NewTable(name, cols...)
}

// InferColumn types a column of raw text cells.
func InferColumn(name string, cells []Null[string]) *Column {
	allInt := true
	ints := make([]Null[int64], len(cells))
	floats := make([]Null[float64], len(cells))
	for i, cell := range cells {
		if !cell.Valid {
			allInt = false
			continue
		}
		s := strings.TrimSpace(cell.V)
		if allInt {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				ints[i] = Some(v)
				floats[i] = Some(float64(v))
				continue
			}
			allInt = false
		}
		n, ok := parseNumber(s)
		if !ok {
			return NewTextColumn(name, cells)
		}
		floats[i] = Some(n.f)
	}
	if allInt && len(cells) > 0 {
		return NewIntColumn(name, ints)
	}
	return NewFloatColumn(name, floats)
}

// uniqueNames names blank headers "Unnamed: <index>" and suffixes repeats
// with ".1", ".2", ...
func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for {
			n, dup := seen[name]
			if !dup {
				break
			}
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", h, n+1)
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}
