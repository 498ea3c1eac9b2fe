package analysis

import (
	"strings"
	"testing"
)

func TestHead_LimitsAndFormats(t *testing.T) {
	var recs [][]string
	for i := 0; i < 7; i++ {
		recs = append(recs, []string{"x", "2.50", ""})
	}
	recs[1][2] = "4"
	tbl, err := FromRecords("t.csv", []string{"A", "B", "C"}, recs)
	if err != nil {
		t.Fatalf("from records: %v", err)
	}
	p := tbl.Head(5)
	if len(p.Rows) != 5 || strings.Join(p.Columns, ",") != "A,B,C" {
		t.Fatalf("preview shape: %+v", p)
	}
	if got := strings.Join(p.Rows[1], "|"); got != "x|2.5|4" {
		t.Fatalf("row 1 = %q", got)
	}
	if p.Rows[0][2] != "" {
		t.Fatalf("missing cell should format empty, got %q", p.Rows[0][2])
	}
	if got := tbl.Head(50); len(got.Rows) != 7 {
		t.Fatalf("head beyond rows: %d", len(got.Rows))
	}
}

func TestNewTable_RejectsDuplicatesAndRaggedColumns(t *testing.T) {
	a := NewIntColumn("a", []Null[int64]{Some[int64](1)})
	if _, err := NewTable("t", a, NewIntColumn("a", []Null[int64]{Some[int64](2)})); err == nil {
		t.Fatal("expected duplicate name error")
	}
	if _, err := NewTable("t", a, NewIntColumn("b", nil)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
