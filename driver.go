package shader

// Driver is the native graphics API the pipeline runs against.
// backend/opengl provides the OpenGL implementation.
//
// Every method must be called on the thread that owns the current
// graphics context. Ids are opaque; zero never names a live object.
type Driver interface {
	// CreateShader allocates a shader object for the given stage.
	// Returns 0 if allocation failed.
	CreateShader(kind StageKind) uint32
	// CompileShader submits source to the shader object and compiles it.
	CompileShader(id uint32, source string)
	ShaderCompileStatus(id uint32) bool
	// ShaderInfoLog returns the compile log. It is only meaningful while
	// the shader object is alive.
	ShaderInfoLog(id uint32) string
	DeleteShader(id uint32)

	// CreateProgram allocates a program object. Returns 0 if allocation failed.
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinkStatus(program uint32) bool
	// ProgramInfoLog returns the link log. It is only meaningful while
	// the program object is alive.
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)

	// UseProgram selects the program for subsequent draw calls.
	UseProgram(program uint32)
}
