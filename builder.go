package shader

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
)

// Builder runs the load, compile and link pipeline against one driver.
// Like the driver, a Builder must only be used from the context thread.
type Builder struct {
	driver    Driver
	opts      options
	logger    *slog.Logger
	onRelease func(id uint32)
}

// NewBuilder returns a Builder that issues native calls through d.
func NewBuilder(d Driver, opts ...Option) *Builder {
	o := applyOptions(opts)
	b := &Builder{
		driver: d,
		opts:   o,
		logger: o.logger,
	}
	b.onRelease = o.onRelease
	if b.onRelease == nil {
		b.onRelease = func(id uint32) {
			b.logger.Debug("program released", "id", id)
		}
	}
	return b
}

// FromSource compiles both GLSL sources and links them.
func (b *Builder) FromSource(vertexSource, fragmentSource string) (*Program, error) {
	return b.build(stageSource{text: vertexSource}, stageSource{text: fragmentSource})
}

// FromFiles reads, compiles and links the two stage files.
// Files ending in .wgsl are translated to GLSL first, using the first
// entry point of the matching stage.
//
// Both files are read before anything is compiled; if either is missing
// the error matches ErrSourceUnavailable and the driver is never called.
func (b *Builder) FromFiles(vertexPath, fragmentPath string) (*Program, error) {
	return b.Load(ProgramSpec{Vertex: vertexPath, Fragment: fragmentPath})
}

// FromWGSL translates one WGSL module holding both entry points and links
// the result. Empty entry names select the first entry point of each stage.
func (b *Builder) FromWGSL(source, vertexEntry, fragmentEntry string) (*Program, error) {
	return b.build(
		stageSource{text: source, wgsl: true, entry: vertexEntry},
		stageSource{text: source, wgsl: true, entry: fragmentEntry},
	)
}

// Load builds the program described by spec.
func (b *Builder) Load(spec ProgramSpec) (*Program, error) {
	vtext, err := b.load(spec.Vertex)
	if err != nil {
		b.logger.Error("shader source unavailable", "stage", StageVertex, "name", spec.Vertex, "err", err)
		return nil, err
	}
	ftext, err := b.load(spec.Fragment)
	if err != nil {
		b.logger.Error("shader source unavailable", "stage", StageFragment, "name", spec.Fragment, "err", err)
		return nil, err
	}

	prog, err := b.build(
		stageSource{name: spec.Vertex, text: vtext, wgsl: isWGSL(spec.Vertex), entry: spec.VertexEntry},
		stageSource{name: spec.Fragment, text: ftext, wgsl: isWGSL(spec.Fragment), entry: spec.FragmentEntry},
	)
	if err != nil {
		return nil, err
	}
	if spec.Name != "" {
		b.logger.Debug("program built", "program", spec.Name, "id", prog.ID())
	}
	return prog, nil
}

// stageSource is one stage's input to build.
type stageSource struct {
	name  string
	text  string
	wgsl  bool
	entry string
}

func (b *Builder) build(vsrc, fsrc stageSource) (*Program, error) {
	vs, err := b.compileSource(vsrc, StageVertex)
	if err != nil {
		return nil, err
	}
	fs, err := b.compileSource(fsrc, StageFragment)
	if err != nil {
		vs.Delete()
		return nil, err
	}
	return b.Link(vs, fs)
}

func (b *Builder) compileSource(src stageSource, kind StageKind) (*Stage, error) {
	text := src.text
	if src.wgsl {
		glslText, err := TranslateWGSL(src.text, kind, src.entry, b.opts.glslVersion)
		if err != nil {
			return nil, b.diagnose(&DiagnosticError{Op: OpTranslate, Kind: kind, Name: src.name, Log: err.Error()})
		}
		text = glslText
	}
	return b.compile(src.name, text, kind)
}

// diagnose logs a failed step and returns it as an error.
func (b *Builder) diagnose(d *DiagnosticError) error {
	attrs := []any{"op", d.Op, "log", strings.TrimSpace(d.Log)}
	if d.Op != OpLink {
		attrs = append(attrs, "stage", d.Kind)
	}
	if d.Name != "" {
		attrs = append(attrs, "name", d.Name)
	}
	b.logger.Error(errors.Unwrap(d).Error(), attrs...)
	return d
}

func isWGSL(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".wgsl")
}
