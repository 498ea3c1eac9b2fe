package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/datainsights/internal/analysis"
)

func (r *PNGRenderer) scatter(t *analysis.Table, xName, yName, title string, w, h int) ([]byte, error) {
	xc, err := numericColumn(t, xName)
	if err != nil {
		return nil, err
	}
	yc, err := numericColumn(t, yName)
	if err != nil {
		return nil, err
	}
	var xs, ys []float64
	for i := 0; i < t.Rows(); i++ {
		x, okx := xc.Float(i)
		y, oky := yc.Float(i)
		if okx && oky && isFinite(x) && isFinite(y) {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) == 0 {
		return nil, ErrNoData
	}
	xlo, xhi := bounds(xs)
	ylo, yhi := bounds(ys)
	ch := gochart.Chart{
		Title:  title,
		Width:  w,
		Height: h,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{Name: xName, Range: padRange(xlo, xhi)},
		YAxis: gochart.YAxis{Name: yName, Range: padRange(ylo, yhi)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name: title,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    3,
					DotColor:    dotColor,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return encode(ch)
}
