package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/housedash/internal/columns"
	"github.com/KaramelBytes/housedash/internal/filter"
)

// filterFlags is the command-line equivalent of the dashboard sidebar.
type filterFlags struct {
	areas     []string
	bedrooms  string
	energy    string
	transport string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.areas, "area", nil, "area(s) to keep (repeatable); pass --area= for no area constraint")
	cmd.Flags().StringVar(&f.bedrooms, "bedrooms", "", "bedroom range lo:hi")
	cmd.Flags().StringVar(&f.energy, "energy", "", "energy score range lo:hi")
	cmd.Flags().StringVar(&f.transport, "transport", "", "transport range lo:hi")
}

// selection converts the flags into widget state. Areas are explicit as soon
// as --area is given, even if empty.
func (f *filterFlags) selection(cmd *cobra.Command) (filter.Selection, error) {
	sel := filter.Selection{Ranges: map[columns.Role]filter.Range{}}
	if cmd.Flags().Changed("area") {
		sel.AreasSet = true
		for _, a := range f.areas {
			if a = strings.TrimSpace(a); a != "" {
				sel.Areas = append(sel.Areas, a)
			}
		}
	}
	for role, s := range map[columns.Role]string{
		columns.Bedrooms:  f.bedrooms,
		columns.Energy:    f.energy,
		columns.Transport: f.transport,
	} {
		if s == "" {
			continue
		}
		r, err := filter.ParseRange(s)
		if err != nil {
			return sel, fmt.Errorf("--%s: %w", role, err)
		}
		sel.Ranges[role] = r
	}
	return sel, nil
}
