package main

import (
	"context"
	"fmt"

	"github.com/philipparndt/gomold/internal/loader"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/parting"
)

// loadPart reads an STL or OpenSCAD file
func loadPart(ctx context.Context, path string) (*mesh.TriangleMesh, error) {
	m, err := loader.New(logger).Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return m, nil
}

func newSelector() (*parting.Selector, error) {
	return parting.NewSelector(cfg.SelectorOptions(logger))
}

// analyzePart loads a part and runs the parting plane selection on it
func analyzePart(ctx context.Context, path string) (*mesh.TriangleMesh, parting.SelectionResult, error) {
	m, err := loadPart(ctx, path)
	if err != nil {
		return nil, parting.SelectionResult{}, err
	}

	selector, err := newSelector()
	if err != nil {
		return nil, parting.SelectionResult{}, err
	}

	result, err := selector.Analyze(ctx, m)
	if err != nil {
		return nil, parting.SelectionResult{}, fmt.Errorf("analysis of %s failed: %w", path, err)
	}
	return m, result, nil
}

// axisFlag resolves an optional --axis value, falling back to def
func axisFlag(value string, def parting.Axis) (parting.Axis, error) {
	if value == "" {
		return def, nil
	}
	return parting.ParseAxis(value)
}
