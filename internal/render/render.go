// Package render emits diagram-description text from an ERDiagram. Each
// target grammar registers a Generator under its format name, the same way
// database dialects register their extractors.
package render

import (
	"fmt"
	"strings"

	"erdgen/internal/model"
)

// Options tunes generator output. Zero values fall back to the defaults
// below; generators never mutate the diagram or the options.
type Options struct {
	Title          string
	ShowProperties bool
	Direction      string // d2 layout direction
	Shape          string // d2 entity shape
	EntitiesPerRow int    // drawio layout
	HSpacing       int    // drawio horizontal cell spacing
	VSpacing       int    // drawio vertical cell spacing
	Timestamp      string // drawio modified attribute, omitted when empty
}

// DefaultOptions returns the options the CLI and server start from.
func DefaultOptions() Options {
	return Options{
		ShowProperties: true,
		Direction:      "right",
		Shape:          "sql_table",
		EntitiesPerRow: 4,
		HSpacing:       280,
		VSpacing:       220,
	}
}

// Generator renders one target grammar. Implementations are pure: the same
// diagram and options always produce the same string, and empty diagrams
// still yield a syntactically valid document.
type Generator interface {
	Generate(d model.ERDiagram, opts Options) string
}

var formats = map[string]Generator{}

// Register makes a Generator available under name.
func Register(name string, g Generator) {
	formats[strings.ToLower(name)] = g
}

// Formats returns the registered format keys (for diagnostics).
func Formats() []string {
	keys := make([]string, 0, len(formats))
	for k := range formats {
		keys = append(keys, k)
	}
	return keys
}

// NormalizeFormat maps common aliases to canonical format keys.
func NormalizeFormat(f string) string {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case "mermaid", "mmd", "erdiagram":
		return "mermaid"
	case "d2":
		return "d2"
	case "drawio", "draw.io", "mxfile", "xml":
		return "drawio"
	default:
		return strings.ToLower(f)
	}
}

// New returns the generator registered for format.
func New(format string) (Generator, error) {
	g, ok := formats[NormalizeFormat(format)]
	if !ok {
		return nil, fmt.Errorf("format not registered: %q (available: %v)", format, Formats())
	}
	return g, nil
}
