package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gomold/internal/history"
	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestDemoAnalyzeAndRecord(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")

	require.NoError(t, execute(t, "demo", "cube", "overhang", "--out", dir))
	part := filepath.Join(dir, "overhang.stl")
	require.FileExists(t, part)

	require.NoError(t, execute(t, "analyze", part, "--history", dbPath))

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, part, runs[0].FileName)
	assert.NotEqual(t, parting.XY, runs[0].BestAxis)
}

func TestPreviewAndChart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, "demo", "cube", "--out", dir))
	part := filepath.Join(dir, "cube.stl")

	img := filepath.Join(dir, "cube.webp")
	require.NoError(t, execute(t, "preview", part, "--out", img, "--width", "80", "--height", "60", "--channels"))
	data, err := os.ReadFile(img)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))

	chart := filepath.Join(dir, "scores.html")
	require.NoError(t, execute(t, "chart", part, "--out", chart))
	assert.FileExists(t, chart)
}

func TestUnknownFileType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.obj")
	require.NoError(t, os.WriteFile(path, []byte("o part"), 0o644))

	assert.Error(t, execute(t, "analyze", path, "--no-history"))
}

func TestDefaultPreviewPath(t *testing.T) {
	assert.Equal(t, filepath.Join("parts", "gear-preview.png"), defaultPreviewPath(filepath.Join("parts", "gear.stl"), "PNG"))
}

func TestAxisFlag(t *testing.T) {
	a, err := axisFlag("", parting.YZ)
	require.NoError(t, err)
	assert.Equal(t, parting.YZ, a)

	a, err = axisFlag("xz", parting.XY)
	require.NoError(t, err)
	assert.Equal(t, parting.XZ, a)

	_, err = axisFlag("zz", parting.XY)
	assert.Error(t, err)
}

func resetFlag(t *testing.T, name string) {
	t.Helper()
	f := rootCmd.PersistentFlags().Lookup(name)
	require.NotNil(t, f)
	require.NoError(t, f.Value.Set(f.DefValue))
	f.Changed = false
}

func TestDraftToleranceFlag(t *testing.T) {
	t.Cleanup(func() { resetFlag(t, "draft-tolerance") })

	err := execute(t, "material", "--draft-tolerance", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft_tolerance_deg")

	require.NoError(t, execute(t, "material", "--draft-tolerance", "0"))
	assert.Equal(t, 0.0, cfg.Analysis.DraftToleranceDeg)
}
