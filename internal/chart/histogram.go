package chart

import (
	"math"
	"sort"

	gochart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KaramelBytes/datainsights/internal/analysis"
)

const (
	maxBins   = 200
	kdePoints = 200
)

// Bins holds histogram counts over equal-width bins. Dividers has one more
// entry than Counts.
type Bins struct {
	Dividers []float64
	Counts   []float64
}

// Width returns the width of one bin.
func (b Bins) Width() float64 {
	if len(b.Dividers) < 2 {
		return 0
	}
	return b.Dividers[1] - b.Dividers[0]
}

// AutoBins bins the finite values of vals with the smaller of the Sturges
// and Freedman-Diaconis bin widths.
func AutoBins(vals []float64) Bins {
	vals = finite(vals)
	if len(vals) == 0 {
		return Bins{}
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	n := binCount(sorted, hi-lo)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// the top divider is exclusive
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)
	return Bins{Dividers: dividers, Counts: counts}
}

func binCount(sorted []float64, span float64) int {
	if span == 0 {
		return 1
	}
	size := float64(len(sorted))
	width := span / (math.Log2(size) + 1)
	iqr := stat.Quantile(0.75, stat.LinInterp, sorted, nil) - stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	if fd := 2 * iqr * math.Pow(size, -1.0/3.0); fd > 0 && fd < width {
		width = fd
	}
	if width <= 0 {
		return 1
	}
	n := int(math.Ceil(span / width))
	if n < 1 {
		n = 1
	}
	if n > maxBins {
		n = maxBins
	}
	return n
}

// KDE evaluates a Gaussian kernel density estimate with Scott's bandwidth at
// kdePoints positions across [lo, hi]. It returns nil when the bandwidth is
// zero.
func KDE(vals []float64, lo, hi float64) (xs, ys []float64) {
	if len(vals) < 2 {
		return nil, nil
	}
	bw := stat.StdDev(vals, nil) * math.Pow(float64(len(vals)), -0.2)
	if bw <= 0 || math.IsNaN(bw) {
		return nil, nil
	}
	kernels := make([]distuv.Normal, len(vals))
	for i, v := range vals {
		kernels[i] = distuv.Normal{Mu: v, Sigma: bw}
	}
	xs = floats.Span(make([]float64, kdePoints), lo, hi)
	ys = make([]float64, kdePoints)
	for i, x := range xs {
		var d float64
		for _, k := range kernels {
			d += k.Prob(x)
		}
		ys[i] = d / float64(len(vals))
	}
	return xs, ys
}

func (r *PNGRenderer) histogram(t *analysis.Table, name, title string, kde bool, w, h int) ([]byte, error) {
	c, err := numericColumn(t, name)
	if err != nil {
		return nil, err
	}
	vals := finite(c.Values())
	if len(vals) == 0 {
		return nil, ErrNoData
	}
	bins := AutoBins(vals)
	// outline of the bars as a filled step line
	var xs, ys []float64
	var top float64
	for i, n := range bins.Counts {
		lo, hi := bins.Dividers[i], bins.Dividers[i+1]
		xs = append(xs, lo, lo, hi, hi)
		ys = append(ys, 0, n, n, 0)
		top = math.Max(top, n)
	}
	series := []gochart.Series{
		gochart.ContinuousSeries{
			Name: "count",
			Style: gochart.Style{
				StrokeWidth: 1,
				StrokeColor: lineColor,
				FillColor:   barColor.WithAlpha(160),
			},
			XValues: xs,
			YValues: ys,
		},
	}
	lo, hi := bins.Dividers[0], bins.Dividers[len(bins.Dividers)-1]
	if kde {
		kx, ky := KDE(vals, floats.Min(vals), floats.Max(vals))
		if kx != nil {
			scale := float64(len(vals)) * bins.Width()
			for i := range ky {
				ky[i] *= scale
				top = math.Max(top, ky[i])
			}
			series = append(series, gochart.ContinuousSeries{
				Name:    "kde",
				Style:   gochart.Style{StrokeWidth: 2, StrokeColor: lineColor},
				XValues: kx,
				YValues: ky,
			})
		}
	}
	ch := gochart.Chart{
		Title:  title,
		Width:  w,
		Height: h,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  gochart.XAxis{Name: name, Range: padRange(lo, hi)},
		YAxis:  gochart.YAxis{Name: "Count", Range: &gochart.ContinuousRange{Min: 0, Max: math.Max(top*1.05, 1)}},
		Series: series,
	}
	return encode(ch)
}
