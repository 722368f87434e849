package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DatasetFile != "data_final.xlsx" || c.MetricsFile != "model_metrics.json" {
		t.Fatalf("unexpected artifact defaults: %+v", c)
	}
	if c.ListenAddr != "127.0.0.1:8501" || c.HistogramBins != 25 || c.DefaultAreaLimit != 10 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestSaveLoadAndEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := &Global{DataDir: "/srv/housing", PreviewRows: 20, ListenAddr: ":9000"}
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	t.Setenv("HOUSEDASH_LISTEN_ADDR", "0.0.0.0:8080")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DataDir != "/srv/housing" || got.PreviewRows != 20 {
		t.Fatalf("file values lost: %+v", got)
	}
	if got.ListenAddr != "0.0.0.0:8080" {
		t.Fatalf("env should win over file, got %q", got.ListenAddr)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}
