package shader_test

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shader"
)

func libraryFS() fstest.MapFS {
	return fstest.MapFS{
		"shaders.toml":  {Data: []byte(manifestTOML)},
		"quad.vert":     {Data: []byte(passThroughVertex)},
		"textured.frag": {Data: []byte(texturedFragment)},
		"solid.wgsl":    {Data: []byte(solidWGSL)},
	}
}

func TestLoadLibrary(t *testing.T) {
	fsys := libraryFS()
	m, err := shader.LoadManifestFS(fsys, "shaders.toml")
	require.NoError(t, err)

	b, d, _ := newBuilder(t, shader.WithFS(fsys))
	lib, err := b.LoadLibrary(m)
	require.NoError(t, err)

	assert.Equal(t, []string{"textured", "solid"}, lib.Names())
	assert.Equal(t, 2, lib.Len())
	assert.Equal(t, 2, d.LivePrograms())
	assert.Equal(t, 0, d.LiveShaders())

	textured, ok := lib.Get("textured")
	require.True(t, ok)
	assert.True(t, textured.Valid())
	texturedID := textured.ID()

	_, ok = lib.Get("nope")
	assert.False(t, ok)

	lib.Close()
	lib.Close()
	assert.Equal(t, 0, d.LivePrograms())
	assert.Equal(t, 1, d.ProgramDeletes(texturedID))
	assert.False(t, textured.Valid())
	assert.Equal(t, 0, lib.Len())
}

func TestLibraryTake(t *testing.T) {
	fsys := libraryFS()
	m, err := shader.LoadManifestFS(fsys, "shaders.toml")
	require.NoError(t, err)

	b, d, _ := newBuilder(t, shader.WithFS(fsys))
	lib, err := b.LoadLibrary(m)
	require.NoError(t, err)

	inLib, _ := lib.Get("solid")
	solid, ok := lib.Take("solid")
	require.True(t, ok)
	assert.False(t, inLib.Valid(), "library copy must be null after Take")
	assert.Equal(t, []string{"textured"}, lib.Names())

	lib.Close()
	assert.Equal(t, 1, d.LivePrograms(), "taken program must survive Close")

	id := solid.ID()
	solid.Release()
	assert.Equal(t, 1, d.ProgramDeletes(id))
	assert.Equal(t, 0, d.LivePrograms())

	_, ok = lib.Take("solid")
	assert.False(t, ok)
}

func TestLoadLibraryFailureReleasesBuilt(t *testing.T) {
	fsys := libraryFS()
	fsys["solid.wgsl"] = &fstest.MapFile{Data: []byte("@vertex fn (")}
	m, err := shader.LoadManifestFS(fsys, "shaders.toml")
	require.NoError(t, err)

	b, d, _ := newBuilder(t, shader.WithFS(fsys))
	lib, err := b.LoadLibrary(m)
	assert.Nil(t, lib)
	require.ErrorIs(t, err, shader.ErrCompileFailed)
	assert.ErrorContains(t, err, `program "solid"`)

	assert.Equal(t, 1, d.CountCalls("CreateProgram"))
	assert.Equal(t, 0, d.LivePrograms(), "textured must be released when solid fails")
	assert.Equal(t, 0, d.LiveShaders())
}

func TestLoadLibraryRejectsInvalidManifest(t *testing.T) {
	quad := shader.ProgramSpec{Name: "quad", Vertex: "quad.vert", Fragment: "textured.frag"}
	tests := []struct {
		name string
		m    *shader.Manifest
	}{
		{"nil", nil},
		{"empty", &shader.Manifest{}},
		{"duplicate name", &shader.Manifest{Programs: []shader.ProgramSpec{quad, quad}}},
		{"missing fragment", &shader.Manifest{Programs: []shader.ProgramSpec{{Name: "quad", Vertex: "quad.vert"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, d, _ := newBuilder(t, shader.WithFS(libraryFS()))
			lib, err := b.LoadLibrary(tt.m)
			assert.Nil(t, lib)
			require.ErrorIs(t, err, shader.ErrInvalidManifest)
			assert.Empty(t, d.Calls(), "no native calls for an invalid manifest")
			assert.Equal(t, 0, d.LivePrograms())
		})
	}
}

func TestLoadLibraryHostManifestOnFSBuilder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shaders.toml", manifestTOML)
	m, err := shader.LoadManifest(filepath.Join(dir, "shaders.toml"))
	require.NoError(t, err)

	b, d, _ := newBuilder(t, shader.WithFS(libraryFS()))
	lib, err := b.LoadLibrary(m)
	assert.Nil(t, lib)
	require.ErrorIs(t, err, shader.ErrSourceUnavailable)
	assert.ErrorContains(t, err, `program "textured"`)
	assert.Equal(t, 0, d.LivePrograms())
	assert.Equal(t, 0, d.LiveShaders())
}
