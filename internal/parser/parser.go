// Package parser reads dataset files into tables, choosing a reader by file
// extension.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/housedash/internal/analysis"
)

// Options tunes format-specific readers.
type Options struct {
	// SheetName selects an XLSX sheet; SheetIndex (1-based) is used when
	// SheetName is empty.
	SheetName  string
	SheetIndex int
	// Delimiter for CSV. If 0, chosen from the extension.
	Delimiter rune
}

// Parser defines a dataset reader implementation.
type Parser interface {
	CanParse(filename string) bool
	Parse(path string, opt Options) (*analysis.Table, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported dataset format")

// ParseFile reads path with the first registered parser that accepts it.
func ParseFile(path string, opt Options) (*analysis.Table, error) {
	for _, p := range registry {
		if p.CanParse(path) {
			return p.Parse(path, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

func init() {
	Register(xlsxParser{})
	Register(csvParser{})
}
