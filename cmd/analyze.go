package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datainsights/internal/analysis"
	"github.com/KaramelBytes/datainsights/internal/chart"
	"github.com/KaramelBytes/datainsights/internal/parser"
	"github.com/KaramelBytes/datainsights/internal/utils"
)

var (
	anaJSON   bool
	anaOutDir string
	anaQuiet  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <files...>",
	Short: "Clean CSV/XLSX files and plan (or render) their charts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := settings()
		if err != nil {
			return err
		}
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		opt := analysisOptions(c)
		var renderer chart.Renderer
		if anaOutDir != "" {
			if err := utils.EnsureDir(anaOutDir); err != nil {
				return fmt.Errorf("create out dir: %w", err)
			}
			renderer = newRenderer(c)
		}

		results := make([]*analysis.Analytics, 0, len(files))
		for i, path := range files {
			if !anaQuiet && !anaJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] Processing %s...\n", i+1, len(files), filepath.Base(path))
			}
			t, err := parser.ParseFile(path)
			if err != nil {
				return err
			}
			a := analysis.RunAnalytics(t, opt)
			logger.Debug("analytics done", "file", path, "numeric", len(a.Numeric), "conversions", len(a.Conversions))
			if renderer != nil && a.HasCharts() {
				n, err := writeCharts(renderer, t, a.Plan, anaOutDir)
				if err != nil {
					return err
				}
				if !anaQuiet && !anaJSON {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d charts to %s\n", n, anaOutDir)
				}
			}
			if anaJSON {
				results = append(results, a)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.Markdown())
		}
		if anaJSON {
			b, err := utils.PrettyJSON(results)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
		}
		return nil
	},
}

// writeCharts renders every planned chart to <dir>/<table>__<title>.png.
// A chart that fails to render is logged and skipped.
func writeCharts(r chart.Renderer, t *analysis.Table, plan analysis.Plan, dir string) (int, error) {
	n := 0
	for _, spec := range plan.Specs() {
		img, err := r.Render(t, spec)
		if err != nil {
			logger.Warn("chart failed", "file", t.Name, "chart", spec.ChartTitle(), "err", err)
			continue
		}
		out := filepath.Join(dir, utils.Slug(t.Name)+"__"+utils.Slug(img.Title)+".png")
		if err := utils.SafeWriteFile(out, img.PNG); err != nil {
			return n, fmt.Errorf("write chart: %w", err)
		}
		n++
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "print results as JSON")
	analyzeCmd.Flags().StringVar(&anaOutDir, "out-dir", "", "render chart PNGs into this directory")
	analyzeCmd.Flags().BoolVarP(&anaQuiet, "quiet", "q", false, "suppress progress lines")
}
