package analysis

import (
	"fmt"
	"strconv"
)

// Kind is the resolved type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
)

// String returns the dataframe-style dtype name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	default:
		return "object"
	}
}

// MarshalText encodes the dtype name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Numeric reports whether the kind is integer or floating.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// Null wraps a cell value; Valid is false for a missing cell.
type Null[T any] struct {
	V     T
	Valid bool
}

// Some returns a present cell.
func Some[T any](v T) Null[T] { return Null[T]{V: v, Valid: true} }

// Column holds one homogeneously typed column. Exactly one of Text, Ints or
// Floats is populated, selected by Kind.
type Column struct {
	Name   string
	Kind   Kind
	Text   []Null[string]
	Ints   []Null[int64]
	Floats []Null[float64]
}

// NewTextColumn builds a text column.
func NewTextColumn(name string, cells []Null[string]) *Column {
	return &Column{Name: name, Kind: KindText, Text: cells}
}

// NewIntColumn builds an integer column.
func NewIntColumn(name string, cells []Null[int64]) *Column {
	return &Column{Name: name, Kind: KindInt, Ints: cells}
}

// NewFloatColumn builds a floating column.
func NewFloatColumn(name string, cells []Null[float64]) *Column {
	return &Column{Name: name, Kind: KindFloat, Floats: cells}
}

// Len returns the number of cells.
func (c *Column) Len() int {
	switch c.Kind {
	case KindInt:
		return len(c.Ints)
	case KindFloat:
		return len(c.Floats)
	default:
		return len(c.Text)
	}
}

// NonNull counts present cells.
func (c *Column) NonNull() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.Valid(i) {
			n++
		}
	}
	return n
}

// Valid reports whether cell i is present.
func (c *Column) Valid(i int) bool {
	switch c.Kind {
	case KindInt:
		return c.Ints[i].Valid
	case KindFloat:
		return c.Floats[i].Valid
	default:
		return c.Text[i].Valid
	}
}

// Float returns cell i as a float64. ok is false for missing cells and for
// text columns.
func (c *Column) Float(i int) (float64, bool) {
	switch c.Kind {
	case KindInt:
		return float64(c.Ints[i].V), c.Ints[i].Valid
	case KindFloat:
		return c.Floats[i].V, c.Floats[i].Valid
	default:
		return 0, false
	}
}

// Values returns the present numeric values in row order.
func (c *Column) Values() []float64 {
	out := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			out = append(out, v)
		}
	}
	return out
}

// Format renders cell i for previews. Missing cells render as "".
func (c *Column) Format(i int) string {
	if !c.Valid(i) {
		return ""
	}
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Ints[i].V, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Floats[i].V, 'g', -1, 64)
	default:
		return c.Text[i].V
	}
}

// Table is an ordered set of equal-length, uniquely named columns.
type Table struct {
	Name    string
	Columns []*Column
	rows    int
}

// NewTable validates column lengths and name uniqueness.
func NewTable(name string, cols ...*Column) (*Table, error) {
	t := &Table{Name: name, Columns: cols}
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if i == 0 {
			t.rows = c.Len()
			continue
		}
		if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), t.rows)
		}
	}
	return t, nil
}

// Rows returns the row count.
func (t *Table) Rows() int { return t.rows }

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Preview is the first rows of a table formatted as strings.
type Preview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Head returns up to n leading rows.
func (t *Table) Head(n int) Preview {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	p := Preview{Columns: t.Names(), Rows: make([][]string, n)}
	for r := 0; r < n; r++ {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Format(r)
		}
		p.Rows[r] = row
	}
	return p
}
