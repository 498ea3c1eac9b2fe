package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	// Analysis
	PreviewRows      int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	CurrencySymbol   string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	PriceColumn      string `mapstructure:"price_column" yaml:"price_column"`
	KeepMissingFloat bool   `mapstructure:"keep_missing_float" yaml:"keep_missing_float"`

	// Charts
	ChartWidth   int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight  int `mapstructure:"chart_height" yaml:"chart_height"`
	PairplotCell int `mapstructure:"pairplot_cell" yaml:"pairplot_cell"`

	// Logging
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	SeqURL   string `mapstructure:"seq_url" yaml:"seq_url"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"listen_addr", "max_upload_mb",
	"preview_rows", "currency_symbol", "price_column", "keep_missing_float",
	"chart_width", "chart_height", "pairplot_cell",
	"log_level", "seq_url",
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datainsights"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.datainsights/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAINSIGHTS")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8501")
	v.SetDefault("max_upload_mb", 200)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("currency_symbol", "₹")
	v.SetDefault("price_column", "Price")
	v.SetDefault("keep_missing_float", false)
	v.SetDefault("chart_width", 800)
	v.SetDefault("chart_height", 400)
	v.SetDefault("pairplot_cell", 220)
	v.SetDefault("log_level", "info")
	v.SetDefault("seq_url", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the server cannot run with.
func (c *Global) Validate() error {
	switch {
	case c.MaxUploadMB <= 0:
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	case c.PreviewRows < 0:
		return fmt.Errorf("preview_rows must not be negative, got %d", c.PreviewRows)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0 || c.PairplotCell <= 0:
		return fmt.Errorf("chart sizes must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}
