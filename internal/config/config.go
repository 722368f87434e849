package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Install root holding the dataset and artifacts.
	DataDir     string `mapstructure:"data_dir" yaml:"data_dir"`
	DatasetFile string `mapstructure:"dataset_file" yaml:"dataset_file"`
	SheetName   string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex  int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Optional artifacts
	MapFile            string `mapstructure:"map_file" yaml:"map_file"`
	MetricsFile        string `mapstructure:"metrics_file" yaml:"metrics_file"`
	ShapSummaryFile    string `mapstructure:"shap_summary_file" yaml:"shap_summary_file"`
	ShapBeeswarmFile   string `mapstructure:"shap_beeswarm_file" yaml:"shap_beeswarm_file"`
	ShapDependenceFile string `mapstructure:"shap_dependence_file" yaml:"shap_dependence_file"`

	// Presentation
	PreviewRows      int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	MapHeight        int    `mapstructure:"map_height" yaml:"map_height"`
	HistogramBins    int    `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	DefaultAreaLimit int    `mapstructure:"default_area_limit" yaml:"default_area_limit"`
	ExportFileName   string `mapstructure:"export_file_name" yaml:"export_file_name"`

	// Server
	ListenAddr         string `mapstructure:"listen_addr" yaml:"listen_addr"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`
	LogLevel           string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultPath returns ~/.housedash/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".housedash", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.housedash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
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
// Precedence: env (including a local .env file) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// A .env in the working directory seeds the environment; real env vars win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HOUSEDASH")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_dir", ".")
	v.SetDefault("dataset_file", "data_final.xlsx")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("map_file", "milan_area_map_lnprice.html")
	v.SetDefault("metrics_file", "model_metrics.json")
	v.SetDefault("shap_summary_file", "shap_summary_bar.png")
	v.SetDefault("shap_beeswarm_file", "shap_beeswarm.png")
	v.SetDefault("shap_dependence_file", "shap_dependence_transport.png")
	v.SetDefault("preview_rows", 50)
	v.SetDefault("map_height", 560)
	v.SetDefault("histogram_bins", 25)
	v.SetDefault("default_area_limit", 10)
	v.SetDefault("export_file_name", "milan_filtered.csv")
	// Server defaults
	v.SetDefault("listen_addr", "127.0.0.1:8501")
	v.SetDefault("shutdown_timeout_sec", 10)
	v.SetDefault("log_level", "info")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".housedash"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
