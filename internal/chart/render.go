// Package chart draws the specs produced by the analytics planner as PNG
// images. It is the only package that talks to the plotting library.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/datainsights/internal/analysis"
)

// ErrNoData is returned when a chart has no plottable values.
var ErrNoData = errors.New("no plottable values")

// Image is a rendered chart.
type Image struct {
	Title string
	PNG   []byte
}

// DataURI embeds the image for inline HTML.
func (im Image) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(im.PNG)
}

// Renderer draws one chart spec against a table.
type Renderer interface {
	Render(t *analysis.Table, spec analysis.ChartSpec) (Image, error)
}

var _ Renderer = (*PNGRenderer)(nil)

// PNGRenderer renders charts with go-chart.
type PNGRenderer struct {
	Width  int
	Height int
	// Cell is the edge length of one pairplot panel.
	Cell int
}

// NewPNGRenderer returns a renderer with the given sizes; zero values fall
// back to 800x400 charts and 220px pairplot panels.
func NewPNGRenderer(width, height, cell int) *PNGRenderer {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 400
	}
	if cell <= 0 {
		cell = 220
	}
	return &PNGRenderer{Width: width, Height: height, Cell: cell}
}

// Render dispatches on the spec type.
func (r *PNGRenderer) Render(t *analysis.Table, spec analysis.ChartSpec) (Image, error) {
	var (
		b   []byte
		err error
	)
	switch s := spec.(type) {
	case analysis.ScatterSpec:
		b, err = r.scatter(t, s.X, s.Y, s.Title, r.Width, r.Height)
	case analysis.HistogramSpec:
		b, err = r.histogram(t, s.Column, s.Title, s.KDE, r.Width, r.Height)
	case analysis.PairplotSpec:
		b, err = r.pairplot(t, s.Columns)
	default:
		err = fmt.Errorf("unsupported chart spec %T", spec)
	}
	if err != nil {
		return Image{}, fmt.Errorf("render %q: %w", spec.ChartTitle(), err)
	}
	return Image{Title: spec.ChartTitle(), PNG: b}, nil
}

func numericColumn(t *analysis.Table, name string) (*analysis.Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	if !c.Kind.Numeric() {
		return nil, fmt.Errorf("column %q is %s, not numeric", name, c.Kind)
	}
	return c, nil
}

// padRange widens degenerate ranges so the axis never has zero span.
func padRange(lo, hi float64) *gochart.ContinuousRange {
	if lo == hi {
		d := math.Abs(lo) * 0.05
		if d == 0 {
			d = 1
		}
		lo, hi = lo-d, hi+d
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

// finite drops infinite and NaN values.
func finite(vals []float64) []float64 {
	out := vals[:0:0]
	for _, v := range vals {
		if isFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

func isFinite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

func bounds(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func encode(ch gochart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	dotColor  = gochart.ColorBlue
	barColor  = drawing.ColorFromHex("4c72b0")
	lineColor = drawing.ColorFromHex("1f3b73")
)
