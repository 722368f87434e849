package dashboard

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/KaramelBytes/housedash/internal/analysis"
	"github.com/KaramelBytes/housedash/internal/artifacts"
	"github.com/KaramelBytes/housedash/internal/columns"
	"github.com/KaramelBytes/housedash/internal/dataset"
	"github.com/KaramelBytes/housedash/internal/filter"
)

// Options controls presentation details of a render pass.
type Options struct {
	PreviewRows   int
	HistogramBins int
	AreaLimit     int
	MapHeight     int
}

// DefaultOptions returns the standard page layout.
func DefaultOptions() Options {
	return Options{PreviewRows: 50, HistogramBins: 25, AreaLimit: filter.DefaultAreaLimit, MapHeight: 560}
}

// Dashboard renders pages from a memoized dataset and the artifact files.
type Dashboard struct {
	loader *dataset.Loader
	loc    *artifacts.Locator
	opt    Options
	log    *zap.Logger
	about  string
}

// New wires a dashboard. Zero option fields fall back to DefaultOptions.
func New(loader *dataset.Loader, loc *artifacts.Locator, opt Options, log *zap.Logger) (*Dashboard, error) {
	def := DefaultOptions()
	if opt.PreviewRows <= 0 {
		opt.PreviewRows = def.PreviewRows
	}
	if opt.HistogramBins <= 0 {
		opt.HistogramBins = def.HistogramBins
	}
	if opt.AreaLimit <= 0 {
		opt.AreaLimit = def.AreaLimit
	}
	if opt.MapHeight <= 0 {
		opt.MapHeight = def.MapHeight
	}
	if log == nil {
		log = zap.NewNop()
	}
	about, err := renderAbout()
	if err != nil {
		return nil, err
	}
	return &Dashboard{loader: loader, loc: loc, opt: opt, log: log, about: about}, nil
}

// Locator exposes the artifact paths the dashboard reads.
func (d *Dashboard) Locator() *artifacts.Locator { return d.loc }

// Filter loads the dataset and applies sel. A missing or unreadable dataset
// is returned as an error and nothing else is computed.
func (d *Dashboard) Filter(sel filter.Selection) (*dataset.Dataset, *filter.Result, error) {
	ds, err := d.loader.Load(d.loc.Dataset)
	if err != nil {
		return nil, nil, err
	}
	return ds, filter.Build(ds.Table, ds.Bindings, sel, d.opt.AreaLimit), nil
}

// Render runs a full pass. The only error it returns is the fatal dataset
// failure; every optional artifact problem degrades its own section.
func (d *Dashboard) Render(sel filter.Selection) (*Page, error) {
	ds, res, err := d.Filter(sel)
	if err != nil {
		return nil, err
	}
	t, view := ds.Table, res.View
	p := &Page{
		Title:        "Milan Housing Dashboard",
		Caption:      "Explore listings + map + model metrics + SHAP explainability",
		DatasetRows:  t.Len(),
		DatasetCols:  len(t.Columns),
		Controls:     res.Controls,
		FilteredRows: analysis.FormatCount(view.Len()),
		Preview:      view.Head(d.opt.PreviewRows),
		AboutHTML:    d.about,
		View:         view,
	}
	p.Loaded = Notice{Level: LevelSuccess, Text: fmt.Sprintf("Dataset loaded | Rows: %s | Columns: %d", analysis.FormatCount(t.Len()), len(t.Columns))}
	p.KPIs = KPIs(view, ds.Bindings)
	p.Map = d.mapSection()
	p.Histogram = d.histogram(view, ds.Bindings)
	p.Model = d.modelSection()
	p.Images = d.imageTabs()
	return p, nil
}

// Export writes the filtered view for sel as CSV.
func (d *Dashboard) Export(w io.Writer, sel filter.Selection) error {
	_, res, err := d.Filter(sel)
	if err != nil {
		return err
	}
	return analysis.WriteCSV(w, res.View)
}

// KPIs computes the headline row over a filtered view. Unbound roles and
// columns without numbers show analysis.NoData.
func KPIs(view *analysis.Table, b columns.Bindings) []KPI {
	return []KPI{
		{Label: "Listings (filtered)", Value: analysis.FormatCount(view.Len())},
		{Label: "Median price", Value: analysis.CentralTendency(view, b[columns.Price], analysis.Median)},
		{Label: "Median price / m²", Value: analysis.CentralTendency(view, b[columns.PricePerArea], analysis.Median)},
		{Label: "Mean ln_price", Value: analysis.CentralTendency(view, b[columns.LnPrice], analysis.Mean)},
	}
}

func (d *Dashboard) mapSection() MapSection {
	name := filepath.Base(d.loc.Map)
	html, err := artifacts.ReadMap(d.loc.Map)
	var missing *artifacts.MissingFileError
	switch {
	case errors.As(err, &missing):
		return MapSection{Notice: Notice{Level: LevelWarning, Text: "Map file not found: " + name}}
	case err != nil:
		d.log.Warn("map unreadable", zap.String("path", d.loc.Map), zap.Error(err))
		return MapSection{Notice: Notice{Level: LevelWarning, Text: fmt.Sprintf("Couldn't read %s: %v", name, err)}}
	}
	return MapSection{HTML: html, Height: d.opt.MapHeight, Notice: Notice{Level: LevelCaption, Text: "Map rendered from " + name}}
}

func (d *Dashboard) histogram(view *analysis.Table, b columns.Bindings) *HistogramSection {
	col, ok := b.Column(columns.Price)
	if !ok || !view.HasColumn(col) {
		return nil
	}
	bins, err := analysis.Histogram(view.Numeric(col), d.opt.HistogramBins)
	if err != nil {
		return &HistogramSection{Notice: &Notice{Level: LevelInfo, Text: "No numeric price values to plot."}}
	}
	h := &HistogramSection{Bins: bins}
	for _, bin := range bins {
		h.Peak = max(h.Peak, bin.Count)
	}
	return h
}

func (d *Dashboard) modelSection() ModelSection {
	name := filepath.Base(d.loc.Metrics)
	labels := []string{"RMSE", "MAE", "R²"}
	empty := make([]KPI, len(labels))
	for i, l := range labels {
		empty[i] = KPI{Label: l, Value: analysis.NoData}
	}
	m, err := artifacts.ReadMetrics(d.loc.Metrics)
	var missing *artifacts.MissingFileError
	switch {
	case errors.As(err, &missing):
		return ModelSection{KPIs: empty, Notice: Notice{Level: LevelInfo, Text: "Create " + name + " in your notebook to show metrics here."}}
	case err != nil:
		d.log.Warn("metrics unreadable", zap.String("path", d.loc.Metrics), zap.Error(err))
		return ModelSection{KPIs: empty, Notice: Notice{Level: LevelWarning, Text: fmt.Sprintf("Couldn't read %s: %v", name, err)}}
	}
	return ModelSection{
		KPIs: []KPI{
			{Label: labels[0], Value: fmt.Sprintf("%.4f", m.RMSE)},
			{Label: labels[1], Value: fmt.Sprintf("%.4f", m.MAE)},
			{Label: labels[2], Value: fmt.Sprintf("%.4f", m.R2)},
		},
		Notice: Notice{Level: LevelCaption, Text: "Metrics loaded from " + name},
	}
}

func (d *Dashboard) imageTabs() []ImageTab {
	tabs := make([]ImageTab, len(d.loc.Images))
	for i, im := range d.loc.Images {
		tabs[i] = ImageTab{Title: im.Title, Name: im.Name, Present: artifacts.Exists(im.Path)}
		if !tabs[i].Present {
			tabs[i].Notice = &Notice{Level: LevelInfo, Text: "Missing: " + im.Name}
		}
	}
	return tabs
}
