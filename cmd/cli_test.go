package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset sticky state between invocations
	cfg = nil
	cfgFile = ""
	anaJSON, anaOutDir, anaQuiet = false, "", false
	insJSON = false
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestExpandInputs_GlobSortDedup(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.csv", "x\n1\n")
	a := writeFile(t, dir, "a.csv", "x\n1\n")
	files, err := expandInputs([]string{filepath.Join(dir, "*.csv"), a})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(files) != 2 || files[0] != a || files[1] != b {
		t.Fatalf("files = %v", files)
	}
	if _, err := expandInputs([]string{filepath.Join(dir, "*.xlsx")}); err == nil {
		t.Fatal("expected error when nothing matches")
	}
}

func TestCLI_AnalyzeMarkdownAndCharts(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "config.yaml")
	data := writeFile(t, dir, "sales.csv", "Name,Price,Qty\nPen,₹10,3\nBook,₹250,1\nLamp,₹99.5,2\n")
	outDir := filepath.Join(dir, "charts")

	out := runCmd(t, "--config", conf, "analyze", data, "--out-dir", outDir)
	for _, want := range []string{"[1/1] Processing sales.csv", "[SCATTER PLOTS]", "Scatter Plot: Price vs Qty", "[HISTOGRAMS]", "[PAIRPLOT]", "Wrote 7 charts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	pngs, _ := filepath.Glob(filepath.Join(outDir, "*.png"))
	if len(pngs) != 7 {
		t.Fatalf("expected 7 charts, got %d: %v", len(pngs), pngs)
	}
	if _, err := os.Stat(filepath.Join(outDir, "sales__scatter_plot_price_vs_qty.png")); err != nil {
		t.Fatalf("missing scatter png: %v", err)
	}
}

func TestCLI_AnalyzeJSON(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "config.yaml")
	data := writeFile(t, dir, "m.csv", "a,b\n1,2.5\n2,\n3,4.0\n")
	out := runCmd(t, "--config", conf, "analyze", "--json", data)
	var got []struct {
		Numeric []string `json:"numeric_columns"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 1 || strings.Join(got[0].Numeric, ",") != "a,b" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestCLI_InsightsPriceNote(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "config.yaml")
	data := writeFile(t, dir, "p.csv", "Item,Price\nPen,₹100\nBook,₹250\n")
	out := runCmd(t, "--config", conf, "insights", data)
	for _, want := range []string{"Removed ₹ symbol from 'Price' column.", "[DATA STRUCTURE]", "Price", "float64", "| mean | 175.000000 |"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_InsightsConversionError(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "config.yaml")
	data := writeFile(t, dir, "bad.csv", "Price\n₹100\nabc\n")
	if _, err := execCmd(t, "--config", conf, "insights", data); err == nil || !strings.Contains(err.Error(), "could not convert") {
		t.Fatalf("expected conversion error, got %v", err)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "config.yaml")
	runCmd(t, "--config", conf, "config", "set", "preview_rows", "8")
	runCmd(t, "--config", conf, "config", "set", "currency_symbol", "$")
	out := runCmd(t, "--config", conf, "config", "show")
	if !strings.Contains(out, "preview_rows: 8") || !strings.Contains(out, "currency_symbol: $") {
		t.Fatalf("config show:\n%s", out)
	}
	if _, err := execCmd(t, "--config", conf, "config", "set", "nope", "1"); err == nil {
		t.Fatal("expected unknown key error")
	}
	if _, err := execCmd(t, "--config", conf, "config", "set", "max_upload_mb", "0"); err == nil {
		t.Fatal("expected validation error")
	}
}
