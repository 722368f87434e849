package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/housedash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set housedash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_dir: %s\n", cfg.DataDir)
		fmt.Fprintf(out, "dataset_file: %s\n", cfg.DatasetFile)
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", cfg.SheetIndex)
		fmt.Fprintf(out, "map_file: %s\n", cfg.MapFile)
		fmt.Fprintf(out, "metrics_file: %s\n", cfg.MetricsFile)
		fmt.Fprintf(out, "shap_summary_file: %s\n", cfg.ShapSummaryFile)
		fmt.Fprintf(out, "shap_beeswarm_file: %s\n", cfg.ShapBeeswarmFile)
		fmt.Fprintf(out, "shap_dependence_file: %s\n", cfg.ShapDependenceFile)
		fmt.Fprintf(out, "preview_rows: %d\n", cfg.PreviewRows)
		fmt.Fprintf(out, "map_height: %d\n", cfg.MapHeight)
		fmt.Fprintf(out, "histogram_bins: %d\n", cfg.HistogramBins)
		fmt.Fprintf(out, "default_area_limit: %d\n", cfg.DefaultAreaLimit)
		fmt.Fprintf(out, "export_file_name: %s\n", cfg.ExportFileName)
		fmt.Fprintf(out, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(out, "shutdown_timeout_sec: %d\n", cfg.ShutdownTimeoutSec)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		positive := func(name string) (int, error) {
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return 0, fmt.Errorf("invalid positive int for %s: %v", name, val)
			}
			return i, nil
		}
		var err error
		switch key {
		case "data_dir":
			cfg.DataDir = val
		case "dataset_file":
			cfg.DatasetFile = val
		case "sheet_name":
			cfg.SheetName = val
		case "sheet_index":
			cfg.SheetIndex, err = positive(key)
		case "map_file":
			cfg.MapFile = val
		case "metrics_file":
			cfg.MetricsFile = val
		case "shap_summary_file":
			cfg.ShapSummaryFile = val
		case "shap_beeswarm_file":
			cfg.ShapBeeswarmFile = val
		case "shap_dependence_file":
			cfg.ShapDependenceFile = val
		case "preview_rows":
			cfg.PreviewRows, err = positive(key)
		case "map_height":
			cfg.MapHeight, err = positive(key)
		case "histogram_bins":
			cfg.HistogramBins, err = positive(key)
		case "default_area_limit":
			cfg.DefaultAreaLimit, err = positive(key)
		case "export_file_name":
			cfg.ExportFileName = val
		case "listen_addr":
			cfg.ListenAddr = val
		case "shutdown_timeout_sec":
			cfg.ShutdownTimeoutSec, err = positive(key)
		case "log_level":
			switch val {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = val
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
