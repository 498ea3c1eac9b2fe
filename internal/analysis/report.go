package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// DefaultPriceColumn is the column forced to float on the insights page.
const DefaultPriceColumn = "Price"

// FixPrice strips the currency glyph from a text column and forces it to
// floating. It reports whether the column was converted. Numeric or absent
// columns are left alone.
func FixPrice(t *Table, column, glyph string) (bool, error) {
	c, ok := t.Column(column)
	if !ok || c.Kind != KindText {
		return false, nil
	}
	cells := make([]Null[float64], len(c.Text))
	for i, cell := range c.Text {
		if !cell.Valid {
			continue
		}
		raw := strings.TrimSpace(StripCurrency(cell.V, glyph))
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return false, &ConversionError{Column: column, Row: i, Value: cell.V, Err: err}
		}
		if math.IsNaN(f) {
			continue
		}
		cells[i] = Some(f)
	}
	for i := range t.Columns {
		if t.Columns[i] == c {
			t.Columns[i] = NewFloatColumn(c.Name, cells)
		}
	}
	return true, nil
}

// ColumnInfo is the structural summary of one column.
type ColumnInfo struct {
	Name    string `json:"name"`
	Kind    Kind   `json:"dtype"`
	NonNull int    `json:"non_null"`
}

// Info is the structural report of a table.
type Info struct {
	Name    string         `json:"name,omitempty"`
	Rows    int            `json:"rows"`
	Columns []ColumnInfo   `json:"columns"`
	Dtypes  map[string]int `json:"dtypes"`
}

// Structure lists every column with its kind and non-null count.
func Structure(t *Table) Info {
	info := Info{Name: t.Name, Rows: t.Rows(), Columns: make([]ColumnInfo, 0, len(t.Columns)), Dtypes: map[string]int{}}
	for _, c := range t.Columns {
		info.Columns = append(info.Columns, ColumnInfo{Name: c.Name, Kind: c.Kind, NonNull: c.NonNull()})
		info.Dtypes[c.Kind.String()]++
	}
	return info
}

// Text renders the report in the familiar dataframe info layout.
func (in Info) Text() string {
	var b strings.Builder
	if in.Rows == 0 {
		b.WriteString("RangeIndex: 0 entries\n")
	} else {
		b.WriteString(fmt.Sprintf("RangeIndex: %d entries, 0 to %d\n", in.Rows, in.Rows-1))
	}
	if len(in.Columns) == 0 {
		b.WriteString("Empty table\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Data columns (total %d columns):\n", len(in.Columns)))
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " #\tColumn\tNon-Null Count\tDtype")
	fmt.Fprintln(tw, "---\t------\t--------------\t-----")
	for i, c := range in.Columns {
		fmt.Fprintf(tw, " %d\t%s\t%d non-null\t%s\n", i, safeName(c.Name), c.NonNull, c.Kind)
	}
	_ = tw.Flush()
	kinds := make([]string, 0, len(in.Dtypes))
	for k := range in.Dtypes {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s(%d)", k, in.Dtypes[k])
	}
	b.WriteString("dtypes: " + strings.Join(parts, ", ") + "\n")
	return b.String()
}

// Stats is a describe table: one row per statistic, one column per table column.
type Stats struct {
	Index   []string     `json:"index"`
	Columns []string     `json:"columns"`
	Values  [][]StatCell `json:"values"` // Values[row][col]
}

var numericIndex = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
var textIndex = []string{"count", "unique", "top", "freq"}

// Describe summarizes numeric columns. Tables without numeric columns get
// count/unique/top/freq over their text columns instead.
func Describe(t *Table) Stats {
	var numeric []*Column
	for _, c := range t.Columns {
		if c.Kind.Numeric() {
			numeric = append(numeric, c)
		}
	}
	if len(numeric) == 0 {
		return describeText(t)
	}
	st := Stats{Index: numericIndex, Columns: make([]string, len(numeric)), Values: make([][]StatCell, len(numericIndex))}
	for r := range st.Values {
		st.Values[r] = make([]StatCell, len(numeric))
	}
	for j, c := range numeric {
		st.Columns[j] = c.Name
		s := Summarize(c.Values())
		col := []StatCell{
			num(float64(s.Count)),
			StatCell{Num: s.Mean},
			StatCell{Num: s.Std},
			StatCell{Num: s.Min},
			StatCell{Num: s.Q1},
			StatCell{Num: s.Median},
			StatCell{Num: s.Q3},
			StatCell{Num: s.Max},
		}
		for r := range col {
			st.Values[r][j] = col[r]
		}
	}
	return st
}

func describeText(t *Table) Stats {
	st := Stats{Index: textIndex, Values: make([][]StatCell, len(textIndex))}
	for _, c := range t.Columns {
		if c.Kind != KindText {
			continue
		}
		st.Columns = append(st.Columns, c.Name)
		counts := map[string]int{}
		var order []string
		total := 0
		for _, cell := range c.Text {
			if cell.Valid {
				if _, ok := counts[cell.V]; !ok {
					order = append(order, cell.V)
				}
				counts[cell.V]++
				total++
			}
		}
		// ties go to the value seen first
		top, freq := "", 0
		for _, v := range order {
			if n := counts[v]; n > freq {
				top, freq = v, n
			}
		}
		topCell, freqCell := StatCell{}, StatCell{}
		if total > 0 {
			topCell = StatCell{Label: top}
			freqCell = num(float64(freq))
		}
		st.Values[0] = append(st.Values[0], num(float64(total)))
		st.Values[1] = append(st.Values[1], num(float64(len(counts))))
		st.Values[2] = append(st.Values[2], topCell)
		st.Values[3] = append(st.Values[3], freqCell)
	}
	return st
}

// Markdown renders the stats table.
func (s Stats) Markdown() string {
	if len(s.Columns) == 0 {
		return "(no columns to describe)\n"
	}
	var b strings.Builder
	b.WriteString("| stat | ")
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = safeVal(safeName(c))
	}
	b.WriteString(strings.Join(names, " | "))
	b.WriteString(" |\n|---")
	for range s.Columns {
		b.WriteString("|---")
	}
	b.WriteString("|\n")
	for r, label := range s.Index {
		b.WriteString("| " + label)
		for _, v := range s.Values[r] {
			b.WriteString(" | " + safeVal(v.String()))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

// Markdown lists the strongest pairs by |r|.
func (m *CorrMatrix) Markdown() string {
	if m == nil || len(m.Columns) < 2 {
		return ""
	}
	type pr struct {
		A, B string
		R    float64
	}
	var pairs []pr
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if c := m.Values[i][j]; c.Num.Valid {
				pairs = append(pairs, pr{A: m.Columns[i], B: m.Columns[j], R: c.Num.V})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai := math.Abs(pairs[i].R)
		aj := math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if len(pairs) > 10 {
		pairs = pairs[:10]
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
