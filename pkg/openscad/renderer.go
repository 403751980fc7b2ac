// Package openscad turns OpenSCAD sources into meshes through the openscad
// executable
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/stl"
	"github.com/rs/zerolog"
)

// DefaultBinary is the executable looked up in PATH
const DefaultBinary = "openscad"

// Matches: use <file.scad>, include <./lib/file.scad>
var importPattern = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer renders .scad files relative to a working directory
type Renderer struct {
	Binary  string
	workDir string
	logger  zerolog.Logger
}

// NewRenderer creates a renderer using the openscad executable from PATH
func NewRenderer(workDir string, logger zerolog.Logger) *Renderer {
	return &Renderer{
		Binary:  DefaultBinary,
		workDir: workDir,
		logger:  logger,
	}
}

// Available reports whether the executable can be found
func (r *Renderer) Available() error {
	if _, err := exec.LookPath(r.Binary); err != nil {
		return fmt.Errorf("%s not found in PATH, install it from https://openscad.org/: %w", r.Binary, mesh.ErrCapabilityUnavailable)
	}
	return nil
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders scadFile into outputFile
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	if err := r.Available(); err != nil {
		return err
	}

	source := r.abs(scadFile)
	cmd := exec.CommandContext(ctx, r.Binary, "-o", outputFile, source)
	cmd.Dir = r.workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	r.logger.Debug().Str("source", source).Str("output", outputFile).Msg("rendering OpenSCAD file")
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(output.String()); msg != "" {
			return fmt.Errorf("failed to render %s: %w\n%s", scadFile, err, msg)
		}
		return fmt.Errorf("failed to render %s: %w", scadFile, err)
	}
	return nil
}

// Render renders scadFile into a temporary STL and loads it
func (r *Renderer) Render(ctx context.Context, scadFile string) (*mesh.TriangleMesh, error) {
	dir, err := os.MkdirTemp("", "gomold-scad-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, strings.TrimSuffix(filepath.Base(scadFile), filepath.Ext(scadFile))+".stl")
	if err := r.RenderToSTL(ctx, scadFile, out); err != nil {
		return nil, err
	}

	m, err := stl.Parse(out)
	if err != nil {
		return nil, err
	}
	return m.WithName(filepath.Base(scadFile)), nil
}

// ResolveDependencies returns scadFile and every file it pulls in through
// use/include statements, transitively, as absolute paths
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	pending := []string{r.abs(scadFile)}
	for len(pending) > 0 {
		file := pending[0]
		pending = pending[1:]
		if visited[file] {
			continue
		}
		visited[file] = true
		deps = append(deps, file)

		imports, err := r.imports(file)
		if err != nil {
			return nil, err
		}
		pending = append(pending, imports...)
	}

	return deps, nil
}

// imports lists the files referenced by one source file
func (r *Renderer) imports(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	dir := filepath.Dir(scadFile)
	var imports []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := importPattern.FindStringSubmatch(line); m != nil {
			imports = append(imports, r.locate(m[1], dir))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}

	return imports, nil
}

// locate resolves an import next to the importing file first, then in the
// working directory
func (r *Renderer) locate(ref, dir string) string {
	local := filepath.Clean(filepath.Join(dir, ref))
	if strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Clean(filepath.Join(r.workDir, ref))
}
