// Package fakegl is an in-memory shader.Driver for tests.
//
// It mimics the parts of a GLSL driver the pipeline depends on: compile
// and link status, info logs that disappear with their object, and link
// failures for mismatched stage interfaces. Every call is recorded and
// live objects are counted so tests can check for leaks and double frees.
package fakegl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-theft-auto/shader"
)

type shaderObject struct {
	kind     shader.StageKind
	source   string
	compiled bool
	log      string
}

type programObject struct {
	attached []uint32
	linked   bool
	log      string
}

// Driver implements shader.Driver in memory.
type Driver struct {
	// FailShaderAlloc makes CreateShader return 0.
	FailShaderAlloc bool
	// FailProgramAlloc makes CreateProgram return 0.
	FailProgramAlloc bool

	next     uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	current  uint32

	calls          []string
	shaderDeletes  map[uint32]int
	programDeletes map[uint32]int
}

// New returns an empty driver.
func New() *Driver {
	return &Driver{
		shaders:        make(map[uint32]*shaderObject),
		programs:       make(map[uint32]*programObject),
		shaderDeletes:  make(map[uint32]int),
		programDeletes: make(map[uint32]int),
	}
}

var _ shader.Driver = (*Driver)(nil)

func (d *Driver) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *Driver) CreateShader(kind shader.StageKind) uint32 {
	d.record("CreateShader(%s)", kind)
	if d.FailShaderAlloc {
		return 0
	}
	d.next++
	d.shaders[d.next] = &shaderObject{kind: kind}
	return d.next
}

func (d *Driver) CompileShader(id uint32, source string) {
	d.record("CompileShader(%d)", id)
	obj, ok := d.shaders[id]
	if !ok {
		return
	}
	obj.source = source
	obj.log = checkSource(source)
	obj.compiled = obj.log == ""
}

func (d *Driver) ShaderCompileStatus(id uint32) bool {
	obj, ok := d.shaders[id]
	return ok && obj.compiled
}

func (d *Driver) ShaderInfoLog(id uint32) string {
	d.record("ShaderInfoLog(%d)", id)
	if obj, ok := d.shaders[id]; ok {
		return obj.log
	}
	return ""
}

func (d *Driver) DeleteShader(id uint32) {
	d.record("DeleteShader(%d)", id)
	d.shaderDeletes[id]++
	delete(d.shaders, id)
}

func (d *Driver) CreateProgram() uint32 {
	d.record("CreateProgram")
	if d.FailProgramAlloc {
		return 0
	}
	d.next++
	d.programs[d.next] = &programObject{}
	return d.next
}

func (d *Driver) AttachShader(program, shaderID uint32) {
	d.record("AttachShader(%d, %d)", program, shaderID)
	if p, ok := d.programs[program]; ok {
		p.attached = append(p.attached, shaderID)
	}
}

func (d *Driver) LinkProgram(program uint32) {
	d.record("LinkProgram(%d)", program)
	p, ok := d.programs[program]
	if !ok {
		return
	}
	p.log = d.link(p)
	p.linked = p.log == ""
}

func (d *Driver) ProgramLinkStatus(program uint32) bool {
	p, ok := d.programs[program]
	return ok && p.linked
}

func (d *Driver) ProgramInfoLog(program uint32) string {
	d.record("ProgramInfoLog(%d)", program)
	if p, ok := d.programs[program]; ok {
		return p.log
	}
	return ""
}

func (d *Driver) DeleteProgram(program uint32) {
	d.record("DeleteProgram(%d)", program)
	d.programDeletes[program]++
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *Driver) UseProgram(program uint32) {
	d.record("UseProgram(%d)", program)
	d.current = program
}

// Calls returns every recorded call in order.
func (d *Driver) Calls() []string {
	return append([]string(nil), d.calls...)
}

// CallIndex returns the position of the first recorded call equal to
// call, or -1.
func (d *Driver) CallIndex(call string) int {
	for i, c := range d.calls {
		if c == call {
			return i
		}
	}
	return -1
}

// CountCalls returns how many recorded calls start with prefix.
func (d *Driver) CountCalls(prefix string) int {
	n := 0
	for _, c := range d.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Driver) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Driver) LivePrograms() int { return len(d.programs) }

// ShaderDeletes returns how many times DeleteShader was called for id.
func (d *Driver) ShaderDeletes(id uint32) int { return d.shaderDeletes[id] }

// ProgramDeletes returns how many times DeleteProgram was called for id.
func (d *Driver) ProgramDeletes(id uint32) int { return d.programDeletes[id] }

// Current returns the program last selected with UseProgram.
func (d *Driver) Current() uint32 { return d.current }

// checkSource returns a compile log, or "" if src compiles.
func checkSource(src string) string {
	if strings.TrimSpace(src) == "" {
		return "0:1(1): error: empty shader source\n"
	}
	opened, closed := strings.Count(src, "{"), strings.Count(src, "}")
	if opened != closed {
		line := strings.Count(src, "\n") + 1
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file, expecting '}'\n", line)
	}
	if !strings.Contains(src, "void main") {
		return "0:1(1): error: no function with name 'main'\n"
	}
	return ""
}

// ioDecl matches top-level `in`/`out` declarations, with or without a
// layout qualifier.
var ioDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:flat\s+|smooth\s+)?(in|out)\s+(\w+)\s+(\w+)\s*;`)

func declarations(src, qualifier string) map[string]string {
	decls := make(map[string]string)
	for _, m := range ioDecl.FindAllStringSubmatch(src, -1) {
		if m[1] == qualifier {
			decls[m[3]] = m[2]
		}
	}
	return decls
}

// link returns a link log, or "" if p links.
func (d *Driver) link(p *programObject) string {
	var vs, fs *shaderObject
	for _, id := range p.attached {
		obj, ok := d.shaders[id]
		if !ok {
			return fmt.Sprintf("error: attached shader %d is not a valid shader object\n", id)
		}
		if !obj.compiled {
			return fmt.Sprintf("error: linking with uncompiled/unspecialized shader %d\n", id)
		}
		switch obj.kind {
		case shader.StageVertex:
			vs = obj
		case shader.StageFragment:
			fs = obj
		}
	}
	if vs == nil || fs == nil {
		return "error: program requires a vertex and a fragment shader\n"
	}

	outputs := declarations(vs.source, "out")
	var b strings.Builder
	for name, typ := range declarations(fs.source, "in") {
		vtyp, ok := outputs[name]
		switch {
		case !ok:
			fmt.Fprintf(&b, "error: fragment shader input `%s' has no equivalent output in the vertex shader\n", name)
		case vtyp != typ:
			fmt.Fprintf(&b, "error: `%s' declared as type `%s' in the fragment shader but `%s' in the vertex shader\n", name, typ, vtyp)
		}
	}
	return b.String()
}
