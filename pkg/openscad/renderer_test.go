package openscad

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.scad"), "use <lib/shapes.scad>\ninclude <./params.scad>\n// use <ignored.scad>\ncube(10);\n")
	write(t, filepath.Join(dir, "lib", "shapes.scad"), "include <../params.scad>\nmodule peg() {}\n")
	write(t, filepath.Join(dir, "params.scad"), "size = 10;\n")

	r := NewRenderer(dir, zerolog.Nop())
	deps, err := r.ResolveDependencies("main.scad")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "main.scad"),
		filepath.Join(dir, "lib", "shapes.scad"),
		filepath.Join(dir, "params.scad"),
	}, deps)
}

func TestResolveDependenciesCycle(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.scad"), "include <b.scad>\n")
	write(t, filepath.Join(dir, "b.scad"), "include <a.scad>\n")

	deps, err := NewRenderer(dir, zerolog.Nop()).ResolveDependencies(filepath.Join(dir, "a.scad"))
	require.NoError(t, err)
	assert.Len(t, deps, 2)
}

func TestResolveDependenciesMissingImport(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.scad"), "use <nowhere.scad>\n")

	_, err := NewRenderer(dir, zerolog.Nop()).ResolveDependencies("main.scad")
	assert.Error(t, err)
}

func TestRenderWithoutExecutable(t *testing.T) {
	r := NewRenderer(t.TempDir(), zerolog.Nop())
	r.Binary = "openscad-does-not-exist"

	assert.ErrorIs(t, r.Available(), mesh.ErrCapabilityUnavailable)

	_, err := r.Render(context.Background(), "part.scad")
	assert.ErrorIs(t, err, mesh.ErrCapabilityUnavailable)
}
