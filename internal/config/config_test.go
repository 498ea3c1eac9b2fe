package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ListenAddr != ":8501" || c.MaxUploadMB != 200 || c.PreviewRows != 5 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CurrencySymbol != "₹" || c.PriceColumn != "Price" || c.KeepMissingFloat {
		t.Fatalf("unexpected analysis defaults: %+v", c)
	}
	if c.LogLevel != "info" {
		t.Fatalf("log level = %q", c.LogLevel)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.PreviewRows = 10
	c.CurrencySymbol = "$"
	c.KeepMissingFloat = true
	if err := Save(c, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(cfg)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.PreviewRows != 10 || got.CurrencySymbol != "$" || !got.KeepMissingFloat {
		t.Fatalf("round trip lost values: %+v", got)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfg, []byte("preview_rows: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATAINSIGHTS_PREVIEW_ROWS", "7")
	c, err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.PreviewRows != 7 {
		t.Fatalf("preview_rows = %d, want 7", c.PreviewRows)
	}
}

func TestLoad_RejectsBadLevel(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfg, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(cfg); err == nil {
		t.Fatal("expected error for bad log level")
	}
}
