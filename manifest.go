package shader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidManifest indicates a manifest that parsed but cannot be built.
var ErrInvalidManifest = errors.New("invalid shader manifest")

// Manifest lists named programs, one [[program]] table each:
//
//	[[program]]
//	name = "textured"
//	vertex = "textured.vert"
//	fragment = "texture.frag"
//
//	[[program]]
//	name = "solid"
//	vertex = "solid.wgsl"
//	fragment = "solid.wgsl"
//	vertex_entry = "vs_main"
//	fragment_entry = "fs_main"
type Manifest struct {
	Programs []ProgramSpec `toml:"program"`
}

// ProgramSpec describes one program: a vertex and a fragment source.
type ProgramSpec struct {
	Name     string `toml:"name"`
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`

	// Entry points, for .wgsl sources only.
	VertexEntry   string `toml:"vertex_entry"`
	FragmentEntry string `toml:"fragment_entry"`
}

// ParseManifest decodes and checks a TOML manifest. Unknown keys are errors.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads the manifest at file. Relative source paths are
// resolved against the manifest's directory.
func LoadManifest(file string) (*Manifest, error) {
	expanded, err := homedir.Expand(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	dir := filepath.Dir(expanded)
	m.resolve(func(p string) string {
		if filepath.IsAbs(p) || p[0] == '~' {
			return p
		}
		return filepath.Join(dir, p)
	})
	return m, nil
}

// LoadManifestFS reads the manifest name from fsys. Source paths are
// resolved against the manifest's directory within fsys.
func LoadManifestFS(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	dir := path.Dir(name)
	m.resolve(func(p string) string {
		return path.Join(dir, p)
	})
	return m, nil
}

// Lookup returns the spec named name.
func (m *Manifest) Lookup(name string) (ProgramSpec, bool) {
	for _, p := range m.Programs {
		if p.Name == name {
			return p, true
		}
	}
	return ProgramSpec{}, false
}

func (m *Manifest) validate() error {
	if len(m.Programs) == 0 {
		return fmt.Errorf("%w: no programs", ErrInvalidManifest)
	}
	seen := make(map[string]bool, len(m.Programs))
	for i, p := range m.Programs {
		switch {
		case p.Name == "":
			return fmt.Errorf("%w: program %d has no name", ErrInvalidManifest, i)
		case seen[p.Name]:
			return fmt.Errorf("%w: duplicate program %q", ErrInvalidManifest, p.Name)
		case p.Vertex == "":
			return fmt.Errorf("%w: program %q has no vertex source", ErrInvalidManifest, p.Name)
		case p.Fragment == "":
			return fmt.Errorf("%w: program %q has no fragment source", ErrInvalidManifest, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func (m *Manifest) resolve(fn func(string) string) {
	for i := range m.Programs {
		m.Programs[i].Vertex = fn(m.Programs[i].Vertex)
		m.Programs[i].Fragment = fn(m.Programs[i].Fragment)
	}
}
