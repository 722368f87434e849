package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/housedash/internal/analysis"
	"github.com/KaramelBytes/housedash/internal/dashboard"
	"github.com/KaramelBytes/housedash/internal/utils"
)

var (
	summarySchema  bool
	summaryJSON    bool
	summaryFilters filterFlags
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard KPIs for the filtered listings",
	Long: `Run one dashboard pass with the given filters and print the dataset status,
the effective filter controls, the KPI row and the model metrics.
With --schema the column report of the filtered rows is appended.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := summaryFilters.selection(cmd)
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
		page, err := dash.Render(sel)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if summaryJSON {
			b, err := utils.PrettyJSON(newSummaryJSON(page))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(b))
			return err
		}
		writeSummary(out, page)
		if summarySchema {
			fmt.Fprintln(out)
			fmt.Fprint(out, analysis.Describe(page.View).Markdown())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summarySchema, "schema", false, "append the column report of the filtered rows")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print the summary as JSON")
	summaryFilters.register(summaryCmd)
}

func writeSummary(w io.Writer, p *dashboard.Page) {
	fmt.Fprintf(w, "%s\n%s\n\n", p.Title, p.Caption)
	fmt.Fprintf(w, "✓ %s\n\n", p.Loaded.Text)

	fmt.Fprintln(w, "[FILTERS]")
	for _, c := range p.Controls {
		if c.Categorical() {
			sel := "(all)"
			if len(c.Selected) > 0 {
				sel = strings.Join(c.Selected, ", ")
			}
			fmt.Fprintf(w, "- %s: %s [%d options]\n", c.Label, sel, len(c.Options))
			continue
		}
		fmt.Fprintf(w, "- %s: %s (bounds %s)\n", c.Label, c.Value, c.Bounds)
	}
	fmt.Fprintf(w, "Rows after filters: %s\n\n", p.FilteredRows)

	fmt.Fprintln(w, "[KPIS]")
	for _, k := range p.KPIs {
		fmt.Fprintf(w, "- %s: %s\n", k.Label, k.Value)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[MODEL]")
	for _, k := range p.Model.KPIs {
		fmt.Fprintf(w, "- %s: %s\n", k.Label, k.Value)
	}
	fmt.Fprintf(w, "%s %s\n", noticeMark(p.Model.Notice.Level), p.Model.Notice.Text)
	fmt.Fprintf(w, "%s %s\n", noticeMark(p.Map.Notice.Level), p.Map.Notice.Text)
	for _, im := range p.Images {
		if im.Notice != nil {
			fmt.Fprintf(w, "%s %s\n", noticeMark(im.Notice.Level), im.Notice.Text)
		}
	}
}

func noticeMark(l dashboard.Level) string {
	switch l {
	case dashboard.LevelSuccess:
		return "✓"
	case dashboard.LevelWarning:
		return "⚠"
	case dashboard.LevelError:
		return "✗"
	case dashboard.LevelInfo:
		return "ℹ"
	default:
		return "·"
	}
}

type kpiJSON struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type summaryJSONOut struct {
	Rows         int       `json:"rows"`
	Columns      int       `json:"columns"`
	FilteredRows string    `json:"filtered_rows"`
	Filters      []string  `json:"filters"`
	KPIs         []kpiJSON `json:"kpis"`
	Model        []kpiJSON `json:"model"`
	Notices      []string  `json:"notices"`
}

func newSummaryJSON(p *dashboard.Page) summaryJSONOut {
	out := summaryJSONOut{Rows: p.DatasetRows, Columns: p.DatasetCols, FilteredRows: p.FilteredRows}
	for _, c := range p.Controls {
		if c.Categorical() {
			out.Filters = append(out.Filters, fmt.Sprintf("%s=%s", c.Role, strings.Join(c.Selected, ",")))
			continue
		}
		out.Filters = append(out.Filters, fmt.Sprintf("%s=%s", c.Role, c.Value))
	}
	for _, k := range p.KPIs {
		out.KPIs = append(out.KPIs, kpiJSON(k))
	}
	for _, k := range p.Model.KPIs {
		out.Model = append(out.Model, kpiJSON(k))
	}
	out.Notices = append(out.Notices, p.Model.Notice.Text, p.Map.Notice.Text)
	for _, im := range p.Images {
		if im.Notice != nil {
			out.Notices = append(out.Notices, im.Notice.Text)
		}
	}
	return out
}
