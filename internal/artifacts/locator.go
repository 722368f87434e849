// Package artifacts locates and reads the pre-built files the dashboard
// displays: the dataset, the map page, the model metrics and SHAP images.
package artifacts

import (
	"os"
	"path/filepath"
)

// Default file names, relative to the install root.
const (
	DatasetFile        = "data_final.xlsx"
	MapFile            = "milan_area_map_lnprice.html"
	MetricsFile        = "model_metrics.json"
	ShapSummaryFile    = "shap_summary_bar.png"
	ShapBeeswarmFile   = "shap_beeswarm.png"
	ShapDependenceFile = "shap_dependence_transport.png"
)

// Image is one explainability picture shown in its own sub-tab.
type Image struct {
	Title string
	Name  string
	Path  string
}

// Locator resolves artifact paths against an install root.
type Locator struct {
	Root    string
	Dataset string
	Map     string
	Metrics string
	Images  []Image
}

// Names overrides the default artifact file names. Empty fields keep the
// defaults.
type Names struct {
	Dataset        string
	Map            string
	Metrics        string
	ShapSummary    string
	ShapBeeswarm   string
	ShapDependence string
}

// Locate builds a Locator rooted at root. Absolute names are used as given.
func Locate(root string, n Names) *Locator {
	join := func(name, def string) string {
		if name == "" {
			name = def
		}
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(root, name)
	}
	img := func(title, name, def string) Image {
		p := join(name, def)
		return Image{Title: title, Name: filepath.Base(p), Path: p}
	}
	return &Locator{
		Root:    root,
		Dataset: join(n.Dataset, DatasetFile),
		Map:     join(n.Map, MapFile),
		Metrics: join(n.Metrics, MetricsFile),
		Images: []Image{
			img("Summary bar", n.ShapSummary, ShapSummaryFile),
			img("Beeswarm", n.ShapBeeswarm, ShapBeeswarmFile),
			img("Dependence (transport)", n.ShapDependence, ShapDependenceFile),
		},
	}
}

// Image looks up an image by base name.
func (l *Locator) Image(name string) (Image, bool) {
	for _, im := range l.Images {
		if im.Name == name {
			return im, true
		}
	}
	return Image{}, false
}

// Exists reports whether path is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Status is the presence report of one artifact.
type Status struct {
	Artifact string
	Path     string
	Present  bool
	Size     int64
}

// Stat reports presence and size of every artifact in display order.
func (l *Locator) Stat() []Status {
	entries := []Status{
		{Artifact: "dataset", Path: l.Dataset},
		{Artifact: "map", Path: l.Map},
		{Artifact: "metrics", Path: l.Metrics},
	}
	for _, im := range l.Images {
		entries = append(entries, Status{Artifact: "image: " + im.Title, Path: im.Path})
	}
	for i := range entries {
		if info, err := os.Stat(entries[i].Path); err == nil && info.Mode().IsRegular() {
			entries[i].Present = true
			entries[i].Size = info.Size()
		}
	}
	return entries
}
