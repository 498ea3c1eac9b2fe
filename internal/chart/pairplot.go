package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/KaramelBytes/datainsights/internal/analysis"
)

// pairplot draws an n x n grid: histograms on the diagonal, Y=row column
// against X=column column elsewhere. Panels that cannot be drawn stay blank.
func (r *PNGRenderer) pairplot(t *analysis.Table, cols []string) ([]byte, error) {
	n := len(cols)
	if n == 0 {
		return nil, ErrNoData
	}
	cell := r.Cell
	canvas := image.NewRGBA(image.Rect(0, 0, n*cell, n*cell))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	drawn := 0
	var firstErr error
	for i, yName := range cols {
		for j, xName := range cols {
			var (
				b   []byte
				err error
			)
			if i == j {
				b, err = r.histogram(t, xName, "", false, cell, cell)
			} else {
				b, err = r.scatter(t, xName, yName, "", cell, cell)
			}
			if err == nil {
				err = paste(canvas, b, j*cell, i*cell)
			}
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("panel %s/%s: %w", yName, xName, err)
				}
				continue
			}
			drawn++
		}
	}
	if drawn == 0 {
		return nil, firstErr
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode pairplot: %w", err)
	}
	return buf.Bytes(), nil
}

func paste(dst draw.Image, b []byte, x, y int) error {
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("decode panel: %w", err)
	}
	sb := img.Bounds()
	draw.Draw(dst, image.Rect(x, y, x+sb.Dx(), y+sb.Dy()), img, sb.Min, draw.Over)
	return nil
}
