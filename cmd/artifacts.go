package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Report which dataset and artifact files are present",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		loc := newLocator(c)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Data dir: %s\n", loc.Root)
		for _, s := range loc.Stat() {
			if s.Present {
				fmt.Fprintf(out, "✓ %-32s %s (%s)\n", s.Artifact, s.Path, humanize.Bytes(uint64(s.Size)))
				continue
			}
			fmt.Fprintf(out, "✗ %-32s %s (missing)\n", s.Artifact, s.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(artifactsCmd)
}
