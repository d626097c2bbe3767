package shader

// Compile compiles source as a single stage of the given kind.
// The source is submitted as-is; an empty source fails at the driver's
// discretion.
//
// On failure no shader object survives and the error is a
// *DiagnosticError matching ErrCompileFailed.
func (b *Builder) Compile(source string, kind StageKind) (*Stage, error) {
	return b.compile("", source, kind)
}

func (b *Builder) compile(name, source string, kind StageKind) (*Stage, error) {
	id := b.driver.CreateShader(kind)
	if id == 0 {
		return nil, b.diagnose(&DiagnosticError{
			Op:   OpCompile,
			Kind: kind,
			Name: name,
			Log:  "driver could not allocate a shader object",
		})
	}

	b.driver.CompileShader(id, source)
	if !b.driver.ShaderCompileStatus(id) {
		// The log is gone once the object is deleted.
		log := b.driver.ShaderInfoLog(id)
		b.driver.DeleteShader(id)
		return nil, b.diagnose(&DiagnosticError{Op: OpCompile, Kind: kind, Name: name, Log: log})
	}

	b.logger.Debug("shader compiled", "stage", kind, "id", id, "name", name)
	return &Stage{id: id, kind: kind, driver: b.driver}, nil
}
