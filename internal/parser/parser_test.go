package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/datainsights/internal/analysis"
	"github.com/KaramelBytes/datainsights/internal/parser"
)

func TestParseCSV_InfersKinds(t *testing.T) {
	content := "item,qty,weight,price,note\n" +
		"apple,3,1.5,₹100,fresh\n" +
		"pear,4,,₹250,\n" +
		"plum,5,2.0,₹80,ripe\n"
	tbl, err := parser.Parse("fruit.csv", strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Name != "fruit.csv" || tbl.Rows() != 3 {
		t.Fatalf("name=%q rows=%d", tbl.Name, tbl.Rows())
	}
	want := map[string]analysis.Kind{
		"item":   analysis.KindText,
		"qty":    analysis.KindInt,
		"weight": analysis.KindFloat,
		"price":  analysis.KindText,
		"note":   analysis.KindText,
	}
	for name, kind := range want {
		c, ok := tbl.Column(name)
		if !ok {
			t.Fatalf("missing column %q", name)
		}
		if c.Kind != kind {
			t.Fatalf("%s kind = %s, want %s", name, c.Kind, kind)
		}
	}
	w, _ := tbl.Column("weight")
	if w.NonNull() != 2 {
		t.Fatalf("weight non-null = %d, want 2", w.NonNull())
	}
	note, _ := tbl.Column("note")
	if note.Valid(1) {
		t.Fatalf("empty note should be missing")
	}
}

func TestParseCSV_ShortRowsPaddedAndHeadersDeduplicated(t *testing.T) {
	content := "a,a,\n1,2,3\n4\n"
	tbl, err := parser.Parse("dupes.csv", strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := strings.Join(tbl.Names(), "|")
	if got != "a|a.1|Unnamed: 2" {
		t.Fatalf("names = %q", got)
	}
	c, _ := tbl.Column("a.1")
	if c.Kind != analysis.KindFloat || c.Valid(1) {
		t.Fatalf("padded column should be float with a missing cell, got %s", c.Kind)
	}
}

func TestParseCSV_MalformedIsParseError(t *testing.T) {
	cases := map[string]string{
		"too many fields": "a,b\n1,2,3\n",
		"bare quote":      "a,b\n\"1,2\n3,\"4\n",
		"empty":           "",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parser.Parse("bad.csv", strings.NewReader(content))
			var pe *parser.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if pe.Name != "bad.csv" {
				t.Fatalf("name = %q", pe.Name)
			}
		})
	}
	_, err := parser.Parse("empty.csv", strings.NewReader(""))
	if !errors.Is(err, parser.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestParse_UnsupportedExtension(t *testing.T) {
	if parser.Supported("notes.txt") {
		t.Fatalf("txt should not be supported")
	}
	if !parser.Supported("DATA.CSV") || !parser.Supported("book.xlsx") {
		t.Fatalf("csv and xlsx should be supported")
	}
	_, err := parser.Parse("notes.txt", strings.NewReader("x"))
	if !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestParseXLSX_FirstSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"Product", "Units", "Price"},
		{"kettle", 2, "₹100"},
		{"toaster", 7, "₹250"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	tbl, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Name != "sales.xlsx" || tbl.Rows() != 2 {
		t.Fatalf("name=%q rows=%d", tbl.Name, tbl.Rows())
	}
	units, _ := tbl.Column("Units")
	if units.Kind != analysis.KindInt || units.Ints[1].V != 7 {
		t.Fatalf("units = %#v", units)
	}
	price, _ := tbl.Column("Price")
	if price.Kind != analysis.KindText || price.Text[0].V != "₹100" {
		t.Fatalf("price = %#v", price)
	}
}

func TestParseXLSX_GarbageIsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := parser.ParseFile(path)
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
