// Package dashboard runs one render pass: it filters the loaded dataset,
// derives the KPIs and gathers the optional artifacts into a Page that any
// front end (HTML, CLI) can display.
package dashboard

import (
	"github.com/KaramelBytes/housedash/internal/analysis"
	"github.com/KaramelBytes/housedash/internal/filter"
)

// Level grades a user-visible notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelCaption Level = "caption"
)

// Notice is a message shown in place of, or under, a section.
type Notice struct {
	Level Level
	Text  string
}

// KPI is a labelled headline figure.
type KPI struct {
	Label string
	Value string
}

// MapSection embeds the pre-rendered map page.
type MapSection struct {
	HTML   string
	Height int
	Notice Notice
}

// HistogramSection is the filtered price distribution. Bins is empty when
// Notice explains why nothing is plotted.
type HistogramSection struct {
	Bins   []analysis.Bin
	Peak   int
	Notice *Notice
}

// ModelSection holds the model metric KPIs and their status line.
type ModelSection struct {
	KPIs   []KPI
	Notice Notice
}

// ImageTab is one explainability sub-tab.
type ImageTab struct {
	Title   string
	Name    string
	Present bool
	Notice  *Notice
}

// Page is everything one render pass produced.
type Page struct {
	Title   string
	Caption string

	Loaded       Notice
	DatasetRows  int
	DatasetCols  int
	Controls     []filter.Control
	FilteredRows string

	KPIs      []KPI
	Preview   *analysis.Table
	Map       MapSection
	Histogram *HistogramSection

	Model  ModelSection
	Images []ImageTab

	AboutHTML string

	// View is the complete filtered view, for export.
	View *analysis.Table
}
