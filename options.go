package shader

import (
	"io/fs"
	"log/slog"

	"github.com/gogpu/naga/glsl"
)

// Option configures a Builder.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	onRelease   func(id uint32)
	glslVersion glsl.Version
	fsys        fs.FS
}

func defaultOptions() options {
	return options{
		logger:      defaultLogger,
		glslVersion: glsl.Version410,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger routes diagnostics to l instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReleaseHook installs fn to run after each program built by the
// builder is deleted. It receives the id that was freed.
// Without a hook, releases are logged at debug level.
func WithReleaseHook(fn func(id uint32)) Option {
	return func(o *options) {
		o.onRelease = fn
	}
}

// WithGLSLVersion sets the GLSL version WGSL sources are translated to.
// Defaults to 4.10 core, matching the OpenGL backend.
func WithGLSLVersion(v glsl.Version) Option {
	return func(o *options) {
		o.glslVersion = v
	}
}

// WithFS makes the builder read source paths from fsys instead of the host
// filesystem. Manifests used with such a builder must be loaded with
// LoadManifestFS on the same fsys: paths from LoadManifest are host paths
// and fail with ErrSourceUnavailable.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}
