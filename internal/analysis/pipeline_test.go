package analysis

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFromRecords_Kinds(t *testing.T) {
	tbl, err := FromRecords("x.csv", []string{"i", "f", "s", "e"}, [][]string{
		{"1", "1.5", "a", ""},
		{"2", "NA", "b", "nan"},
	})
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	kinds := []Kind{KindInt, KindFloat, KindText, KindFloat}
	for i, k := range kinds {
		if tbl.Columns[i].Kind != k {
			t.Fatalf("column %s kind = %s, want %s", tbl.Columns[i].Name, tbl.Columns[i].Kind, k)
		}
	}
	if _, err := FromRecords("x.csv", []string{"a"}, [][]string{{"1", "2"}}); err == nil {
		t.Fatalf("expected error for wide row")
	}
}

func TestRunAnalytics(t *testing.T) {
	tbl, err := FromRecords("shop.csv", []string{"Item", "Price", "Qty", "Rating"}, [][]string{
		{"kettle", "₹100", "2", "4.5"},
		{"toaster", "₹250", "", "3.0"},
		{"mixer", "₹80", "5", "5.0"},
	})
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	a := RunAnalytics(tbl, DefaultOptions())
	if a.Preview.Rows[0][1] != "₹100" {
		t.Fatalf("preview should show raw values, got %v", a.Preview.Rows[0])
	}
	// Item has no numeric cells, so it is zero-filled into an integer column.
	if strings.Join(a.Numeric, ",") != "Item,Price,Qty,Rating" {
		t.Fatalf("numeric = %v", a.Numeric)
	}
	if len(a.Plan.Scatter) != 6 || len(a.Plan.Histograms) != 4 {
		t.Fatalf("plan = %#v", a.Plan)
	}
	if item, _ := tbl.Column("Item"); item.Kind != KindInt || item.Ints[0].V != 0 {
		t.Fatalf("item = %#v", item)
	}
	if qty, _ := tbl.Column("Qty"); qty.Kind != KindInt || qty.Ints[1].V != 0 {
		t.Fatalf("qty = %#v", qty)
	}
	if r, _ := tbl.Column("Rating"); r.Kind != KindFloat {
		t.Fatalf("rating kind = %s", r.Kind)
	}
	md := a.Markdown()
	if !strings.Contains(md, "Scatter Plot: Price vs Qty") || !strings.Contains(md, "Histogram of Rating") {
		t.Fatalf("markdown = %s", md)
	}
}

func TestRunAnalytics_NoNumeric(t *testing.T) {
	a2 := RunAnalytics(mustTable(t), DefaultOptions())
	if a2.HasCharts() || len(a2.Plan.Scatter) != 0 || a2.Plan.Pairplot != nil {
		t.Fatalf("expected empty plan, got %#v", a2.Plan)
	}
	if !strings.Contains(a2.Markdown(), "No numeric columns found") {
		t.Fatalf("markdown = %s", a2.Markdown())
	}
}

func TestRunInsights(t *testing.T) {
	tbl, err := FromRecords("shop.csv", []string{"Item", "Price"}, [][]string{
		{"kettle", "₹100"},
		{"toaster", "₹250"},
	})
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	in, err := RunInsights(tbl, DefaultOptions())
	if err != nil {
		t.Fatalf("RunInsights: %v", err)
	}
	if !in.PriceFixed || strings.Join(in.Stats.Columns, ",") != "Price" {
		t.Fatalf("insights = %#v", in)
	}
	md := in.Markdown(DefaultCurrency)
	if !strings.Contains(md, "Removed ₹ symbol from 'Price' column.") || !strings.Contains(md, "[DESCRIPTIVE STATISTICS]") {
		t.Fatalf("markdown = %s", md)
	}

	bad, _ := FromRecords("bad.csv", []string{"Price"}, [][]string{{"abc"}})
	_, err = RunInsights(bad, DefaultOptions())
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
}

func TestAnalyticsMarkdown_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("₹", 100)
	tbl, err := FromRecords("wide.csv", []string{"Note"}, [][]string{{long}})
	if err != nil {
		t.Fatalf("from records: %v", err)
	}
	a := &Analytics{Name: tbl.Name, Preview: tbl.Head(5)}
	md := a.Markdown()
	if !utf8.ValidString(md) {
		t.Fatalf("markdown is not valid UTF-8")
	}
	if !strings.Contains(md, strings.Repeat("₹", 77)+"...") {
		t.Fatalf("expected 77 runes then ellipsis:\n%s", md)
	}
}
