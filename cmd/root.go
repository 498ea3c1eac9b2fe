package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datainsights/internal/analysis"
	"github.com/KaramelBytes/datainsights/internal/chart"
	cfgpkg "github.com/KaramelBytes/datainsights/internal/config"
	"github.com/KaramelBytes/datainsights/internal/logging"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// Process logger; replaced once config is loaded
	logger      = slog.Default()
	closeLogger = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "datainsights",
	Short: "Data Insights: upload a table, get charts and summary statistics",
	Long: `Data Insights loads CSV and Excel files, cleans numeric-looking columns and
produces scatter plots, histograms, a pairplot, structure information and
descriptive statistics, either in a browser dashboard (serve) or on the
command line (analyze, insights).`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	err := rootCmd.Execute()
	closeLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datainsights/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}
	if debug {
		level = slog.LevelDebug
	}
	closeLogger()
	logger, closeLogger = logging.Setup(logging.Options{Level: level, SeqURL: cfg.SeqURL, Out: os.Stderr})
	logger.Debug("config loaded", "file", cfgFile, "listen_addr", cfg.ListenAddr)
}

// settings returns the loaded config, or defaults when loading failed.
func settings() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

func analysisOptions(c *cfgpkg.Global) analysis.Options {
	opt := analysis.DefaultOptions()
	opt.PreviewRows = c.PreviewRows
	opt.PriceColumn = c.PriceColumn
	opt.Normalize.Currency = c.CurrencySymbol
	opt.Normalize.KeepMissingFloat = c.KeepMissingFloat
	return opt
}

func newRenderer(c *cfgpkg.Global) *chart.PNGRenderer {
	return chart.NewPNGRenderer(c.ChartWidth, c.ChartHeight, c.PairplotCell)
}
