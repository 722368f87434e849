package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/housedash/internal/utils"
)

var (
	exportOut     string
	exportFilters filterFlags
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered listings as CSV",
	Long: `Apply the same filters as the dashboard sidebar and write the resulting
rows as CSV to stdout, or to a file with -o.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := exportFilters.selection(cmd)
		if err != nil {
			return err
		}
		c, err := currentConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(c)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		_, dash, err := newDashboard(log)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := dash.Export(&buf, sel); err != nil {
			return err
		}
		if exportOut == "" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		if err := utils.SafeWriteFile(exportOut, buf.Bytes()); err != nil {
			return err
		}
		log.Debug("export written", zap.String("path", exportOut), zap.Int("bytes", buf.Len()))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", exportOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
	exportFilters.register(exportCmd)
}
