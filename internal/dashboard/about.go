package dashboard

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

const aboutMarkdown = `### What is this?
A compact dashboard to explore Milan housing listings, visualize a Folium map, and show an XGBoost model with SHAP explainability.

### Data and artifacts
- Listings are read from the dataset spreadsheet and filtered in memory.
- The map, the model metrics and the SHAP plots are produced offline and displayed as-is.

### Notes
Filters apply in order: area, bedrooms, energy score, transport. Each slider's bounds come from the rows left by the filters before it.
An empty area selection shows every area.`

// renderAbout converts the About tab Markdown to HTML.
func renderAbout() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(aboutMarkdown), &buf); err != nil {
		return "", fmt.Errorf("render about: %w", err)
	}
	return buf.String(), nil
}
