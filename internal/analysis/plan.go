package analysis

import (
	"fmt"
	"strings"
)

// ChartSpec describes one chart for a renderer.
type ChartSpec interface {
	ChartTitle() string
}

// ScatterSpec plots Y against X.
type ScatterSpec struct {
	X     string `json:"x"`
	Y     string `json:"y"`
	Title string `json:"title"`
}

func (s ScatterSpec) ChartTitle() string { return s.Title }

// HistogramSpec plots the distribution of one column.
type HistogramSpec struct {
	Column string `json:"column"`
	Title  string `json:"title"`
	KDE    bool   `json:"kde"`
}

func (h HistogramSpec) ChartTitle() string { return h.Title }

// PairplotSpec plots every column against every other in a grid.
type PairplotSpec struct {
	Columns []string `json:"columns"`
}

func (p PairplotSpec) ChartTitle() string { return "Pairplot" }

// Plan is the ordered set of charts for one table.
type Plan struct {
	Scatter    []ScatterSpec   `json:"scatter"`
	Histograms []HistogramSpec `json:"histograms"`
	Pairplot   *PairplotSpec   `json:"pairplot,omitempty"`
}

// PlanCharts enumerates every unordered pair of columns once, in ascending
// (i, j) order, and every column once for a histogram.
func PlanCharts(cols []string) Plan {
	n := len(cols)
	p := Plan{
		Scatter:    make([]ScatterSpec, 0, n*(n-1)/2+1),
		Histograms: make([]HistogramSpec, 0, n),
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p.Scatter = append(p.Scatter, ScatterSpec{
				X:     cols[i],
				Y:     cols[j],
				Title: fmt.Sprintf("Scatter Plot: %s vs %s", cols[i], cols[j]),
			})
		}
	}
	for _, c := range cols {
		p.Histograms = append(p.Histograms, HistogramSpec{Column: c, Title: fmt.Sprintf("Histogram of %s", c), KDE: true})
	}
	if n > 0 {
		all := make([]string, n)
		copy(all, cols)
		p.Pairplot = &PairplotSpec{Columns: all}
	}
	return p
}

// Specs returns every chart in render order.
func (p Plan) Specs() []ChartSpec {
	out := make([]ChartSpec, 0, len(p.Scatter)+len(p.Histograms)+1)
	for _, s := range p.Scatter {
		out = append(out, s)
	}
	for _, h := range p.Histograms {
		out = append(out, h)
	}
	if p.Pairplot != nil {
		out = append(out, *p.Pairplot)
	}
	return out
}

// Markdown renders the plan as a compact checklist.
func (p Plan) Markdown() string {
	var b strings.Builder
	b.WriteString("[SCATTER PLOTS]\n")
	if len(p.Scatter) == 0 {
		b.WriteString("(none)\n")
	}
	for _, s := range p.Scatter {
		b.WriteString(fmt.Sprintf("- %s\n", s.Title))
	}
	b.WriteString("\n[HISTOGRAMS]\n")
	if len(p.Histograms) == 0 {
		b.WriteString("(none)\n")
	}
	for _, h := range p.Histograms {
		b.WriteString(fmt.Sprintf("- %s\n", h.Title))
	}
	if p.Pairplot != nil {
		b.WriteString("\n[PAIRPLOT]\n")
		b.WriteString(fmt.Sprintf("- %s\n", strings.Join(p.Pairplot.Columns, ", ")))
	}
	return b.String()
}
