package shader_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shader"
)

func TestFromSourceEndToEnd(t *testing.T) {
	b, d, _ := newBuilder(t)

	prog, err := b.FromSource(passThroughVertex, solidFragment)
	require.NoError(t, err)
	require.NotNil(t, prog)

	assert.NotZero(t, prog.ID())
	assert.Equal(t, 0, d.LiveShaders())
	assert.Equal(t, 1, d.LivePrograms())

	prog.Release()
	assert.Zero(t, prog.ID())
	assert.Equal(t, 0, d.LivePrograms())
}

func TestFromSourceFragmentFailureReleasesVertex(t *testing.T) {
	b, d, _ := newBuilder(t)

	prog, err := b.FromSource(passThroughVertex, brokenFragment)
	assert.Nil(t, prog)
	assert.ErrorIs(t, err, shader.ErrCompileFailed)

	assert.Equal(t, 2, d.CountCalls("CreateShader"))
	assert.Equal(t, 0, d.LiveShaders(), "vertex stage leaked")
	assert.Equal(t, 0, d.CountCalls("CreateProgram"))
}

func TestFromSourceVertexFailureStopsEarly(t *testing.T) {
	b, d, _ := newBuilder(t)

	prog, err := b.FromSource("void main() {", solidFragment)
	assert.Nil(t, prog)
	assert.ErrorIs(t, err, shader.ErrCompileFailed)
	assert.Equal(t, 1, d.CountCalls("CreateShader"))
	assert.Equal(t, 0, d.LiveShaders())
}

func TestFromSourceLinkFailure(t *testing.T) {
	b, d, _ := newBuilder(t)

	prog, err := b.FromSource(passThroughVertex, mismatchedFragment)
	assert.Nil(t, prog)
	assert.ErrorIs(t, err, shader.ErrLinkFailed)
	assert.Equal(t, 0, d.LiveShaders())
	assert.Equal(t, 0, d.LivePrograms())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	vpath := writeFile(t, dir, "quad.vert", passThroughVertex)
	fpath := writeFile(t, dir, "quad.frag", texturedFragment)

	b, d, _ := newBuilder(t)
	prog, err := b.FromFiles(vpath, fpath)
	require.NoError(t, err)
	defer prog.Release()

	assert.NotZero(t, prog.ID())
	assert.Equal(t, 0, d.LiveShaders())
}

func TestFromFilesMissingVertex(t *testing.T) {
	dir := t.TempDir()
	fpath := writeFile(t, dir, "quad.frag", solidFragment)

	b, d, logs := newBuilder(t)
	prog, err := b.FromFiles(filepath.Join(dir, "missing.vert"), fpath)
	assert.Nil(t, prog)
	assert.ErrorIs(t, err, shader.ErrSourceUnavailable)
	assert.Empty(t, d.Calls(), "compiler must not be reached")
	assert.Contains(t, logs.String(), "missing.vert")
}

func TestFromFilesMissingFragment(t *testing.T) {
	dir := t.TempDir()
	vpath := writeFile(t, dir, "quad.vert", passThroughVertex)

	b, d, _ := newBuilder(t)
	prog, err := b.FromFiles(vpath, filepath.Join(dir, "missing.frag"))
	assert.Nil(t, prog)
	assert.ErrorIs(t, err, shader.ErrSourceUnavailable)
	assert.Empty(t, d.Calls(), "nothing is compiled until both sources are read")
}

func TestFromFilesCompileErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	vpath := writeFile(t, dir, "quad.vert", passThroughVertex)
	fpath := writeFile(t, dir, "broken.frag", brokenFragment)

	b, _, _ := newBuilder(t)
	_, err := b.FromFiles(vpath, fpath)
	require.ErrorIs(t, err, shader.ErrCompileFailed)
	assert.ErrorContains(t, err, "broken.frag")
}

func TestFromFilesWithFS(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/quad.vert":  {Data: []byte(passThroughVertex)},
		"shaders/solid.frag": {Data: []byte(solidFragment)},
	}
	b, _, _ := newBuilder(t, shader.WithFS(fsys))

	prog, err := b.FromFiles("shaders/quad.vert", "shaders/solid.frag")
	require.NoError(t, err)
	defer prog.Release()
	assert.True(t, prog.Valid())

	_, err = b.FromFiles("shaders/quad.vert", "shaders/nope.frag")
	assert.ErrorIs(t, err, shader.ErrSourceUnavailable)
}

func TestFromFilesWGSL(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "solid.wgsl", solidWGSL)

	b, d, _ := newBuilder(t)
	prog, err := b.FromFiles(p, p)
	require.NoError(t, err)
	defer prog.Release()

	assert.NotZero(t, prog.ID())
	assert.Equal(t, 0, d.LiveShaders())
}

func TestFromWGSL(t *testing.T) {
	b, d, _ := newBuilder(t)

	prog, err := b.FromWGSL(solidWGSL, "vs_main", "fs_main")
	require.NoError(t, err)
	defer prog.Release()
	assert.Equal(t, 1, d.LivePrograms())
}

func TestFromWGSLTranslateFailure(t *testing.T) {
	b, d, _ := newBuilder(t)

	prog, err := b.FromWGSL(solidWGSL, "vs_main", "no_such_entry")
	assert.Nil(t, prog)
	require.ErrorIs(t, err, shader.ErrCompileFailed)
	assert.ErrorContains(t, err, "translate fragment shader")
	assert.Equal(t, 0, d.LiveShaders(), "vertex stage leaked")
}
