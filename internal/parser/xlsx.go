package parser

import (
	"strings"

	"github.com/KaramelBytes/housedash/internal/analysis"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxParser) Parse(path string, opt Options) (*analysis.Table, error) {
	return analysis.ReadXLSX(path, opt.SheetName, opt.SheetIndex)
}
