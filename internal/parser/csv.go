package parser

import (
	"strings"

	"github.com/KaramelBytes/housedash/internal/analysis"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvParser) Parse(path string, opt Options) (*analysis.Table, error) {
	return analysis.ReadCSV(path, opt.Delimiter)
}
