package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/datainsights/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Data Insights configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(w, "max_upload_mb: %d\n", cfg.MaxUploadMB)
		fmt.Fprintf(w, "preview_rows: %d\n", cfg.PreviewRows)
		fmt.Fprintf(w, "currency_symbol: %s\n", cfg.CurrencySymbol)
		fmt.Fprintf(w, "price_column: %s\n", cfg.PriceColumn)
		fmt.Fprintf(w, "keep_missing_float: %t\n", cfg.KeepMissingFloat)
		fmt.Fprintf(w, "chart_width: %d\n", cfg.ChartWidth)
		fmt.Fprintf(w, "chart_height: %d\n", cfg.ChartHeight)
		fmt.Fprintf(w, "pairplot_cell: %d\n", cfg.PairplotCell)
		fmt.Fprintf(w, "log_level: %s\n", cfg.LogLevel)
		if cfg.SeqURL != "" {
			fmt.Fprintf(w, "seq_url: %s\n", cfg.SeqURL)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := settings()
		if err != nil {
			return err
		}
		if err := setKey(c, key, val); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid int for %s: %w", key, err)
		}
		return i, nil
	}
	var err error
	switch key {
	case "listen_addr":
		c.ListenAddr = val
	case "max_upload_mb":
		c.MaxUploadMB, err = atoi()
	case "preview_rows":
		c.PreviewRows, err = atoi()
	case "currency_symbol":
		c.CurrencySymbol = val
	case "price_column":
		c.PriceColumn = val
	case "keep_missing_float":
		b, perr := strconv.ParseBool(val)
		if perr != nil {
			return fmt.Errorf("invalid bool for keep_missing_float: %w", perr)
		}
		c.KeepMissingFloat = b
	case "chart_width":
		c.ChartWidth, err = atoi()
	case "chart_height":
		c.ChartHeight, err = atoi()
	case "pairplot_cell":
		c.PairplotCell, err = atoi()
	case "log_level":
		c.LogLevel = val
	case "seq_url":
		c.SeqURL = val
	default:
		return fmt.Errorf("unknown key: %s (known: %v)", key, cfgpkg.Keys)
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
