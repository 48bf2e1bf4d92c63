// Package source holds the frontends that turn input text into declaration
// facts. Frontends register under a name, mirroring the database dialect
// registry, and are looked up by name or by file extension.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"erdgen/internal/decl"
)

type Frontend interface {

	// Parse converts one input document into declaration facts. The filename
	// is recorded on the declarations for display only.
	Parse(filename string, src []byte) ([]decl.Declaration, error)
}

var frontends = map[string]Frontend{}

// Register makes a Frontend available under name.
func Register(name string, f Frontend) {
	frontends[strings.ToLower(name)] = f
}

// RegisteredFrontends returns the registered frontend keys (for diagnostics).
func RegisteredFrontends() []string {
	keys := make([]string, 0, len(frontends))
	for k := range frontends {
		keys = append(keys, k)
	}
	return keys
}

// New returns the frontend registered under name.
func New(name string) (Frontend, error) {
	f, ok := frontends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("frontend not registered: %q (available: %v)", name, RegisteredFrontends())
	}
	return f, nil
}

// ForFile picks a frontend from the file extension.
func ForFile(path string) (Frontend, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return New("yaml")
	case ".go":
		return New("go")
	}
	return nil, fmt.Errorf("no frontend for file %q (available: %v)", path, RegisteredFrontends())
}
