// Package loader reads part geometry from STL and OpenSCAD files
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/openscad"
	"github.com/philipparndt/gomold/pkg/stl"
	"github.com/rs/zerolog"
)

// Loader dispatches on the file extension
type Loader struct {
	logger zerolog.Logger
}

// New creates a loader
func New(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// IsOpenSCAD reports whether path is an OpenSCAD source file
func IsOpenSCAD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Load reads the mesh stored in path
func (l *Loader) Load(ctx context.Context, path string) (*mesh.TriangleMesh, error) {
	var (
		m   *mesh.TriangleMesh
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		m, err = stl.Parse(path)
	case ".scad":
		m, err = l.renderer(path).Render(ctx, filepath.Base(path))
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .stl or .scad)", ext)
	}
	if err != nil {
		return nil, err
	}

	if m.Name() == "" {
		m = m.WithName(filepath.Base(path))
	}
	l.logger.Debug().
		Str("file", path).
		Int("vertices", m.VertexCount()).
		Int("faces", m.FaceCount()).
		Msg("mesh loaded")
	return m, nil
}

// Dependencies returns every file whose change affects the mesh in path
func (l *Loader) Dependencies(path string) ([]string, error) {
	if IsOpenSCAD(path) {
		return l.renderer(path).ResolveDependencies(filepath.Base(path))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	return []string{abs}, nil
}

func (l *Loader) renderer(path string) *openscad.Renderer {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		dir = filepath.Dir(path)
	}
	return openscad.NewRenderer(dir, l.logger)
}
