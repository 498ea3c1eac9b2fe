package analysis

import (
	"fmt"
	"testing"
)

func TestPlanCharts_ThreeColumns(t *testing.T) {
	p := PlanCharts([]string{"A", "B", "C"})
	want := [][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}}
	if len(p.Scatter) != len(want) {
		t.Fatalf("scatter len = %d, want %d", len(p.Scatter), len(want))
	}
	for i, w := range want {
		s := p.Scatter[i]
		if s.X != w[0] || s.Y != w[1] {
			t.Fatalf("pair %d = (%s,%s), want (%s,%s)", i, s.X, s.Y, w[0], w[1])
		}
	}
	if p.Scatter[0].Title != "Scatter Plot: A vs B" {
		t.Fatalf("title = %q", p.Scatter[0].Title)
	}
	if len(p.Histograms) != 3 || p.Histograms[2].Title != "Histogram of C" || !p.Histograms[2].KDE {
		t.Fatalf("histograms = %#v", p.Histograms)
	}
	if p.Pairplot == nil || len(p.Pairplot.Columns) != 3 {
		t.Fatalf("pairplot = %#v", p.Pairplot)
	}
	if specs := p.Specs(); len(specs) != 7 {
		t.Fatalf("specs = %d, want 7", len(specs))
	}
}

func TestPlanCharts_Counts(t *testing.T) {
	for n := 0; n <= 7; n++ {
		cols := make([]string, n)
		for i := range cols {
			cols[i] = fmt.Sprintf("c%d", i)
		}
		p := PlanCharts(cols)
		if len(p.Scatter) != n*(n-1)/2 {
			t.Fatalf("n=%d scatter = %d", n, len(p.Scatter))
		}
		if len(p.Histograms) != n {
			t.Fatalf("n=%d histograms = %d", n, len(p.Histograms))
		}
		if (p.Pairplot == nil) != (n == 0) {
			t.Fatalf("n=%d pairplot = %v", n, p.Pairplot)
		}
		seen := map[string]bool{}
		for _, s := range p.Scatter {
			if s.X == s.Y {
				t.Fatalf("self pair %s", s.X)
			}
			key := s.X + "|" + s.Y
			if seen[key] || seen[s.Y+"|"+s.X] {
				t.Fatalf("duplicate pair %s", key)
			}
			seen[key] = true
		}
	}
}

func TestPlanCharts_SingleColumn(t *testing.T) {
	p := PlanCharts([]string{"only"})
	if len(p.Scatter) != 0 || len(p.Histograms) != 1 {
		t.Fatalf("plan = %#v", p)
	}
}
