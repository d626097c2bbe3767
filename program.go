package shader

// Program exclusively owns one linked native program object.
//
// A Program is either live (non-zero ID) or released (zero ID). Release
// frees the native object once; later calls do nothing. Go has no
// destructors, so the owner releases with defer:
//
//	prog, err := b.FromFiles("quad.vert", "quad.frag")
//	if err != nil {
//	    return err
//	}
//	defer prog.Release()
//
// Pass ownership with Move rather than sharing the pointer between owners.
type Program struct {
	id        uint32
	driver    Driver
	onRelease func(id uint32)
}

// NewProgram wraps a native program id that the caller already owns.
// Builder.Link is the only production constructor; this exists for tests
// and for adopting programs created elsewhere.
func NewProgram(d Driver, id uint32) *Program {
	return &Program{id: id, driver: d}
}

// ID returns the native program id, or 0 if released or moved out.
func (p *Program) ID() uint32 {
	if p == nil {
		return 0
	}
	return p.id
}

// Valid reports whether p still owns a native program.
func (p *Program) Valid() bool {
	return p.ID() != 0
}

// Use selects the program for subsequent draw calls.
// It does nothing on a released program.
func (p *Program) Use() {
	if !p.Valid() {
		return
	}
	p.driver.UseProgram(p.id)
}

// Release deletes the native program and leaves p null.
// Releasing a null program is a no-op.
func (p *Program) Release() {
	if p == nil || p.id == 0 {
		return
	}
	id := p.id
	p.id = 0
	p.driver.DeleteProgram(id)
	if p.onRelease != nil {
		p.onRelease(id)
	}
}

// Move transfers ownership to a new Program and leaves p null.
// Moving a null program yields another null program.
func (p *Program) Move() *Program {
	if p == nil {
		return &Program{}
	}
	moved := &Program{id: p.id, driver: p.driver, onRelease: p.onRelease}
	p.id = 0
	return moved
}
