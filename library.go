package shader

import "fmt"

// Library owns a set of named programs built from a manifest.
type Library struct {
	programs map[string]*Program
	order    []string
}

// LoadLibrary builds every program in m. If any program fails, the ones
// already built are released and the error names the failing program.
// m is validated first, so a hand-built manifest with duplicate or
// incomplete entries fails with ErrInvalidManifest before any native call.
//
// On a builder made with WithFS, m must come from LoadManifestFS on the
// same fs.FS; LoadManifest resolves to host paths, which fs.FS rejects.
func (b *Builder) LoadLibrary(m *Manifest) (*Library, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil manifest", ErrInvalidManifest)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	lib := &Library{programs: make(map[string]*Program, len(m.Programs))}
	for _, spec := range m.Programs {
		prog, err := b.Load(spec)
		if err != nil {
			lib.Close()
			return nil, fmt.Errorf("program %q: %w", spec.Name, err)
		}
		lib.programs[spec.Name] = prog
		lib.order = append(lib.order, spec.Name)
	}
	return lib, nil
}

// Get returns the program named name. The library keeps ownership.
func (l *Library) Get(name string) (*Program, bool) {
	p, ok := l.programs[name]
	return p, ok
}

// Take moves the program named name out of the library.
// The caller becomes responsible for releasing it.
func (l *Library) Take(name string) (*Program, bool) {
	p, ok := l.programs[name]
	if !ok {
		return nil, false
	}
	delete(l.programs, name)
	for i, n := range l.order {
		if n == name {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return p.Move(), true
}

// Names returns the owned program names in manifest order.
func (l *Library) Names() []string {
	return append([]string(nil), l.order...)
}

// Len returns the number of owned programs.
func (l *Library) Len() int {
	return len(l.programs)
}

// Close releases every owned program, last built first, and empties the
// library. It is safe to call more than once.
func (l *Library) Close() {
	for i := len(l.order) - 1; i >= 0; i-- {
		l.programs[l.order[i]].Release()
	}
	clear(l.programs)
	l.order = nil
}
