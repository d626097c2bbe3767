package shader

import "fmt"

// Link links a vertex and a fragment stage into a program.
//
// Link takes ownership of both stages: they are deleted before it returns,
// whether linking succeeded or not. On failure the error is
// ErrProgramAllocationFailed or a *DiagnosticError matching ErrLinkFailed.
func (b *Builder) Link(vs, fs *Stage) (*Program, error) {
	// Runs after the link attempt on every path.
	defer func() {
		vs.Delete()
		fs.Delete()
	}()

	if vs.ID() == 0 || fs.ID() == 0 || vs.kind != StageVertex || fs.kind != StageFragment {
		return nil, b.diagnose(&DiagnosticError{
			Op:  OpLink,
			Log: fmt.Sprintf("expected a vertex and a fragment stage, got %s and %s", describeStage(vs), describeStage(fs)),
		})
	}

	id := b.driver.CreateProgram()
	if id == 0 {
		b.logger.Error("shader program allocation failed")
		return nil, ErrProgramAllocationFailed
	}

	b.driver.AttachShader(id, vs.id)
	b.driver.AttachShader(id, fs.id)
	b.driver.LinkProgram(id)

	if !b.driver.ProgramLinkStatus(id) {
		log := b.driver.ProgramInfoLog(id)
		b.driver.DeleteProgram(id)
		return nil, b.diagnose(&DiagnosticError{Op: OpLink, Log: log})
	}

	b.logger.Debug("program linked", "id", id)
	return &Program{id: id, driver: b.driver, onRelease: b.onRelease}, nil
}
