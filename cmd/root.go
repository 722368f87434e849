package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KaramelBytes/housedash/internal/artifacts"
	cfgpkg "github.com/KaramelBytes/housedash/internal/config"
	"github.com/KaramelBytes/housedash/internal/dashboard"
	"github.com/KaramelBytes/housedash/internal/dataset"
	"github.com/KaramelBytes/housedash/internal/parser"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagDataDir string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "housedash",
	Short: "Milan housing dashboard: explore listings, map and model artifacts",
	Long: `housedash serves an interactive dashboard over a Milan housing dataset.
It filters listings by area, bedrooms, energy score and transport access,
shows summary KPIs, a price histogram, a pre-rendered map, model metrics
and SHAP explainability images. The same views are available from the
command line.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.housedash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the dataset and artifacts (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("data-dir") && flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
}

// currentConfig returns the loaded configuration, loading it on demand when
// OnInitialize failed earlier.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	cfg = c
	return cfg, nil
}

// newLogger builds the process logger. Logs go to stderr so command output on
// stdout stays clean.
func newLogger(c *cfgpkg.Global) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	level := zapcore.InfoLevel
	if c != nil && c.LogLevel != "" {
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func newLocator(c *cfgpkg.Global) *artifacts.Locator {
	return artifacts.Locate(c.DataDir, artifacts.Names{
		Dataset:        c.DatasetFile,
		Map:            c.MapFile,
		Metrics:        c.MetricsFile,
		ShapSummary:    c.ShapSummaryFile,
		ShapBeeswarm:   c.ShapBeeswarmFile,
		ShapDependence: c.ShapDependenceFile,
	})
}

// newDashboard wires loader, locator and dashboard from the loaded config.
func newDashboard(log *zap.Logger) (*cfgpkg.Global, *dashboard.Dashboard, error) {
	c, err := currentConfig()
	if err != nil {
		return nil, nil, err
	}
	loader := dataset.NewLoader(parser.Options{SheetName: c.SheetName, SheetIndex: c.SheetIndex}, log)
	d, err := dashboard.New(loader, newLocator(c), dashboard.Options{
		PreviewRows:   c.PreviewRows,
		HistogramBins: c.HistogramBins,
		AreaLimit:     c.DefaultAreaLimit,
		MapHeight:     c.MapHeight,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return c, d, nil
}

func shutdownTimeout(c *cfgpkg.Global) time.Duration {
	if c.ShutdownTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}
