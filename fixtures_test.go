package shader_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/internal/fakegl"
)

const passThroughVertex = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos, 1.0);
    TexCoord = aTexCoord;
}
`

const solidFragment = `#version 410 core
out vec4 FragColor;

void main() {
    FragColor = vec4(1.0, 1.0, 0.0, 1.0);
}
`

const texturedFragment = `#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D tex;

void main() {
    FragColor = texture(tex, TexCoord);
}
`

// TexCoord is a vec2 in the vertex stage.
const mismatchedFragment = `#version 410 core
in vec3 TexCoord;
out vec4 FragColor;

void main() {
    FragColor = vec4(TexCoord, 1.0);
}
`

// Missing closing brace.
const brokenFragment = `#version 410 core
out vec4 FragColor;

void main() {
    FragColor = vec4(1.0);
`

const solidWGSL = `
@vertex
fn vs_main(@location(0) pos: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(pos.x, pos.y, pos.z, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.5, 0.0, 1.0);
}
`

// newBuilder returns a builder over a fresh fake driver. Everything the
// builder logs, down to debug level, ends up in the returned buffer.
func newBuilder(t *testing.T, opts ...shader.Option) (*shader.Builder, *fakegl.Driver, *bytes.Buffer) {
	t.Helper()
	d := fakegl.New()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]shader.Option{shader.WithLogger(logger)}, opts...)
	return shader.NewBuilder(d, opts...), d, &logs
}
