package shader

import (
	"errors"
	"fmt"
	"strings"
)

// Pipeline failures. Every error returned by this package matches one of
// these with errors.Is. None of them are retried.
var (
	// ErrSourceUnavailable indicates that a source could not be opened or read.
	ErrSourceUnavailable = errors.New("shader source unavailable")

	// ErrCompileFailed indicates that a stage did not compile.
	ErrCompileFailed = errors.New("shader compilation failed")

	// ErrProgramAllocationFailed indicates that the driver returned no program object.
	ErrProgramAllocationFailed = errors.New("shader program allocation failed")

	// ErrLinkFailed indicates that the program did not link.
	ErrLinkFailed = errors.New("shader program linking failed")
)

// Op identifies the pipeline step that produced a diagnostic.
type Op uint8

const (
	OpTranslate Op = iota // WGSL to GLSL
	OpCompile
	OpLink
)

func (o Op) String() string {
	switch o {
	case OpTranslate:
		return "translate"
	case OpCompile:
		return "compile"
	case OpLink:
		return "link"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// DiagnosticError carries the log produced by a failed translate, compile
// or link step.
type DiagnosticError struct {
	Op Op
	// Kind is the stage being compiled. Unused for OpLink.
	Kind StageKind
	// Name is the source location, if the source came from a file.
	Name string
	// Log is the diagnostic text captured before the native object was freed.
	Log string
}

func (e *DiagnosticError) Error() string {
	var b strings.Builder
	switch e.Op {
	case OpLink:
		b.WriteString("link program")
	default:
		fmt.Fprintf(&b, "%s %s shader", e.Op, e.Kind)
	}
	if e.Name != "" {
		fmt.Fprintf(&b, " %s", e.Name)
	}
	b.WriteString(": ")
	b.WriteString(e.Unwrap().Error())
	if log := strings.TrimSpace(e.Log); log != "" {
		b.WriteString(": ")
		b.WriteString(log)
	}
	return b.String()
}

// Unwrap maps the diagnostic onto its sentinel.
func (e *DiagnosticError) Unwrap() error {
	if e.Op == OpLink {
		return ErrLinkFailed
	}
	return ErrCompileFailed
}
