// Package opengl provides the OpenGL 4.1 backend for the shader package.
//
// All functions require a current OpenGL context and gl.Init to have
// been called on the calling thread.
package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/shader"
)

// maxInfoLogLength bounds the compile and link logs read back from the driver.
const maxInfoLogLength = 16 << 10

var stageTypes = map[shader.StageKind]uint32{
	shader.StageVertex:   gl.VERTEX_SHADER,
	shader.StageFragment: gl.FRAGMENT_SHADER,
}

// Driver implements shader.Driver with OpenGL calls.
type Driver struct{}

var _ shader.Driver = (*Driver)(nil)

// NewDriver returns an OpenGL driver.
func NewDriver() *Driver {
	return &Driver{}
}

func (*Driver) CreateShader(kind shader.StageKind) uint32 {
	typ, ok := stageTypes[kind]
	if !ok {
		return 0
	}
	return gl.CreateShader(typ)
}

func (*Driver) CompileShader(id uint32, source string) {
	csource, free := gl.Strs(cString(source))
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)
}

func (*Driver) ShaderCompileStatus(id uint32) bool {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (*Driver) ShaderInfoLog(id uint32) string {
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	n := clampLogLength(logLength)
	if n == 0 {
		return ""
	}
	log := make([]byte, n+1)
	gl.GetShaderInfoLog(id, n, nil, &log[0])
	return goString(log)
}

func (*Driver) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (*Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*Driver) AttachShader(program, shaderID uint32) {
	gl.AttachShader(program, shaderID)
}

func (*Driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*Driver) ProgramLinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (*Driver) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	n := clampLogLength(logLength)
	if n == 0 {
		return ""
	}
	log := make([]byte, n+1)
	gl.GetProgramInfoLog(program, n, nil, &log[0])
	return goString(log)
}

func (*Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// cString returns s with the NUL terminator gl.Strs requires.
func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// goString converts a NUL-terminated log buffer to a Go string.
func goString(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func clampLogLength(n int32) int32 {
	switch {
	case n <= 0:
		return 0
	case n > maxInfoLogLength:
		return maxInfoLogLength
	default:
		return n
	}
}
