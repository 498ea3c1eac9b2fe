package analysis

import (
	"fmt"
	"strings"
)

// NoNumericNotice is shown instead of charts when a table has no numeric columns.
const NoNumericNotice = "No numeric columns found in the dataset. Please upload a file with numeric data for analysis."

// Options controls the page pipelines.
type Options struct {
	// PreviewRows is the number of leading rows shown before any cleaning.
	PreviewRows int
	// PriceColumn is forced to float on the insights page when it is text.
	PriceColumn string
	Normalize   NormalizeOptions
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		PreviewRows: 5,
		PriceColumn: DefaultPriceColumn,
		Normalize:   DefaultNormalizeOptions(),
	}
}

// Analytics is the result of the visual analytics pipeline.
type Analytics struct {
	Name        string       `json:"name"`
	Preview     Preview      `json:"preview"`
	Conversions []Conversion `json:"conversions,omitempty"`
	Numeric     []string     `json:"numeric_columns"`
	Plan        Plan         `json:"plan"`
}

// HasCharts reports whether any numeric column was found.
func (a *Analytics) HasCharts() bool { return len(a.Numeric) > 0 }

// RunAnalytics previews, normalizes, selects numeric columns and plans charts.
// The table is modified in place. A table without numeric columns yields an
// empty plan; callers show a notice instead of charts.
func RunAnalytics(t *Table, opt Options) *Analytics {
	a := &Analytics{Name: t.Name, Preview: t.Head(opt.PreviewRows)}
	a.Conversions = Normalize(t, opt.Normalize)
	a.Numeric = NumericColumns(t)
	a.Plan = PlanCharts(a.Numeric)
	return a
}

// Insights is the result of the descriptive statistics pipeline.
type Insights struct {
	Name       string      `json:"name"`
	Preview    Preview     `json:"preview"`
	PriceFixed bool        `json:"price_fixed"`
	PriceCol   string      `json:"price_column,omitempty"`
	Info       Info        `json:"info"`
	Stats      Stats       `json:"stats"`
	Corr       *CorrMatrix `json:"correlations,omitempty"`
}

// RunInsights previews the table, applies the price fix-up and reports
// structure and statistics. A ConversionError from the fix-up is returned as is.
func RunInsights(t *Table, opt Options) (*Insights, error) {
	in := &Insights{Name: t.Name, Preview: t.Head(opt.PreviewRows)}
	if opt.PriceColumn != "" {
		fixed, err := FixPrice(t, opt.PriceColumn, opt.Normalize.Currency)
		if err != nil {
			return nil, err
		}
		in.PriceFixed = fixed
		if fixed {
			in.PriceCol = opt.PriceColumn
		}
	}
	in.Info = Structure(t)
	in.Stats = Describe(t)
	in.Corr = Correlations(t)
	return in, nil
}

// Markdown renders the analytics result for terminals and prompts.
func (a *Analytics) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	if a.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", a.Name))
	}
	b.WriteString("\n")
	writePreview(&b, a.Preview)
	if len(a.Conversions) > 0 {
		b.WriteString("\n[CLEANING]\n")
		for _, c := range a.Conversions {
			b.WriteString(fmt.Sprintf("- %s: %s -> %s\n", safeName(c.Column), c.From, c.To))
		}
	}
	b.WriteString("\n")
	if !a.HasCharts() {
		b.WriteString(NoNumericNotice + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("[NUMERIC COLUMNS]\n%s\n\n", strings.Join(a.Numeric, ", ")))
	b.WriteString(a.Plan.Markdown())
	return b.String()
}

// Markdown renders the insights result.
func (in *Insights) Markdown(currency string) string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	if in.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", in.Name))
	}
	b.WriteString("\n")
	writePreview(&b, in.Preview)
	if in.PriceFixed {
		b.WriteString(fmt.Sprintf("\nRemoved %s symbol from '%s' column.\n", currency, in.PriceCol))
	}
	b.WriteString("\n[DATA STRUCTURE]\n")
	b.WriteString(in.Info.Text())
	b.WriteString("\n[DESCRIPTIVE STATISTICS]\n")
	b.WriteString(in.Stats.Markdown())
	if md := in.Corr.Markdown(); md != "" {
		b.WriteString("\n[CORRELATIONS]\n")
		b.WriteString(md)
	}
	return b.String()
}

func writePreview(b *strings.Builder, p Preview) {
	b.WriteString("[DATA PREVIEW]\n")
	if len(p.Columns) == 0 {
		b.WriteString("(empty)\n")
		return
	}
	b.WriteString("| ")
	for i, c := range p.Columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(safeName(c)))
	}
	b.WriteString(" |\n| ")
	for i := range p.Columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range p.Rows {
		b.WriteString("| ")
		for i, val := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			if r := []rune(val); len(r) > 80 {
				val = string(r[:77]) + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
}
