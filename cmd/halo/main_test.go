package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/halo/apsp"
	"github.com/katalvlaran/halo/bitmap"
	"github.com/katalvlaran/halo/edgelist"
	"github.com/katalvlaran/halo/grid"
	"github.com/katalvlaran/halo/matmul"
	"github.com/katalvlaran/halo/partition"
	"github.com/katalvlaran/halo/stencil"
	"github.com/katalvlaran/halo/workgraph"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func writeNoise(t *testing.T, path string, w, h int) *bitmap.Image {
	t.Helper()
	px := grid.MustNew[uint8](h, w*bitmap.Channels)
	data := px.Data()
	for i := range data {
		data[i] = uint8((i*73 + i/5*11) % 256)
	}
	img := &bitmap.Image{Pixels: px, Width: w, Height: h}
	require.NoError(t, bitmap.Write(path, img))

	return img
}

func TestStretch_MatchesSequential(t *testing.T) {
	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.bmp"), filepath.Join(dir, "out.bmp")
	img := writeNoise(t, in, 9, 11)

	_, stderr, err := execute(t, "stretch", in, out, "4", "--workers", "3", "--threads", "2")
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "stretch done")

	got, err := bitmap.Read(out)
	require.NoError(t, err)
	want, _, err := stencil.Sequential(img.Pixels, 4, 1, bitmap.Channels)
	require.NoError(t, err)
	assert.True(t, want.Equal(got.Pixels))
}

func TestStretch_Errors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.bmp")

	stdout, stderr, err := execute(t, "stretch", "only-one-arg")
	require.Error(t, err)
	assert.Contains(t, stdout+stderr, "Usage:")

	_, _, err = execute(t, "stretch", filepath.Join(dir, "missing.bmp"), out, "1")
	assert.ErrorIs(t, err, os.ErrNotExist)

	in := filepath.Join(dir, "in.bmp")
	writeNoise(t, in, 4, 4)
	stdout, stderr, err = execute(t, "stretch", in, out, "x")
	var numErr *strconv.NumError
	require.ErrorAs(t, err, &numErr)
	assert.Contains(t, stdout+stderr, "Usage:")

	stdout, stderr, err = execute(t, "stretch", in, out, "1", "--workers", "0")
	assert.ErrorIs(t, err, stencil.ErrOptionViolation)
	assert.Contains(t, stdout+stderr, "Usage:")

	stdout, stderr, err = execute(t, "stretch", in, out, "1", "--workers", "5")
	assert.ErrorIs(t, err, partition.ErrInvalidPartition)
	assert.Contains(t, stdout+stderr, "Usage:")

	_, err = os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist, "no output after failed runs")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestApsp_File(t *testing.T) {
	dir := t.TempDir()
	edges, out := filepath.Join(dir, "edges.txt"), filepath.Join(dir, "dist.txt")
	require.NoError(t, os.WriteFile(edges, []byte("0 1\n1 2\n2 3\n3 0\n0 7\n"), 0o600))

	_, stderr, err := execute(t, "apsp", edges, "4", "--workers", "2", "--out", out)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "out-of-range edges ignored")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	got, err := edgelist.ReadMatrix(f, 4)
	require.NoError(t, err)
	row0, _ := got.Row(0)
	assert.Equal(t, []int64{0, 1, 2, 3}, row0)
}

func TestApsp_StdoutAndEnv(t *testing.T) {
	dir := t.TempDir()
	edges := filepath.Join(dir, "edges.txt")
	require.NoError(t, os.WriteFile(edges, []byte("0 1 5\n"), 0o600))

	stdout, _, err := execute(t, "apsp", edges, "2")
	require.NoError(t, err)
	assert.Equal(t, "2\n0 5\nINF 0\n", stdout)

	t.Setenv("HALO_APSP_WORKERS", "0")
	_, _, err = execute(t, "apsp", edges, "2")
	assert.ErrorIs(t, err, apsp.ErrOptionViolation)
}

func TestApsp_MalformedInput(t *testing.T) {
	dir := t.TempDir()
	edges := filepath.Join(dir, "edges.txt")
	require.NoError(t, os.WriteFile(edges, []byte("0 1\nzero 2\n"), 0o600))

	stdout, stderr, err := execute(t, "apsp", edges, "3")
	require.ErrorIs(t, err, edgelist.ErrMalformed)
	assert.Contains(t, err.Error(), edges)
	assert.NotContains(t, stdout+stderr, "Usage:", "input errors are not usage errors")
}

func TestWorkgraph_InvalidArguments(t *testing.T) {
	for _, args := range [][]string{
		{"workgraph", "--degree", "-1"},
		{"workgraph", "--vertices", "0"},
		{"workgraph", "--max-work", "-1ms"},
	} {
		stdout, stderr, err := execute(t, args...)
		require.ErrorIs(t, err, workgraph.ErrOptionViolation, args)
		assert.Contains(t, stdout+stderr, "Usage:", args)
	}
}

func TestMM(t *testing.T) {
	stdout, stderr, err := execute(t, "mm", "-n", "40", "-t", "3")
	require.NoError(t, err, stderr)
	assert.True(t, strings.HasPrefix(stdout, "ok n=40 threads=3"), stdout)
	assert.Contains(t, stderr, "multiply done")

	stdout, stderr, err = execute(t, "mm", "-n", "4", "-t", "0")
	require.ErrorIs(t, err, matmul.ErrOptionViolation)
	assert.Contains(t, stdout+stderr, "Usage:")

	_, _, err = execute(t, "mm", "--size", "0")
	assert.ErrorIs(t, err, matmul.ErrOptionViolation)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "halo.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("workgraph:\n  vertices: 25\n  max-work: 0s\n"), 0o600))

	stdout, _, err := execute(t, "workgraph", "--config", cfg, "-t", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "visited 25 vertices"), stdout)

	_, _, err = execute(t, "workgraph", "--config", filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)

	_, _, err = execute(t, "workgraph", "--log-level", "loud")
	assert.Error(t, err)
}
