package server

import (
	"html/template"

	"github.com/KaramelBytes/housedash/internal/filter"
)

var funcs = template.FuncMap{
	"num": formatNum,
	"step": func(c filter.Control) string {
		if c.Integer {
			return "1"
		}
		return "any"
	},
	"selected": func(c filter.Control, opt string) bool {
		for _, s := range c.Selected {
			if s == opt {
				return true
			}
		}
		return false
	},
	"barWidth": func(count, peak int) int {
		if peak <= 0 {
			return 0
		}
		return count * 100 / peak
	},
	"trusted": func(s string) template.HTML { return template.HTML(s) },
}
