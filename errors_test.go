package shader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/shader"
)

func TestDiagnosticError(t *testing.T) {
	tests := []struct {
		name     string
		err      *shader.DiagnosticError
		sentinel error
		want     string
	}{
		{
			name:     "compile",
			err:      &shader.DiagnosticError{Op: shader.OpCompile, Kind: shader.StageFragment, Name: "a.frag", Log: "0:3(1): error: syntax error\n"},
			sentinel: shader.ErrCompileFailed,
			want:     "compile fragment shader a.frag: shader compilation failed: 0:3(1): error: syntax error",
		},
		{
			name:     "translate",
			err:      &shader.DiagnosticError{Op: shader.OpTranslate, Kind: shader.StageVertex, Log: "module has no vertex entry point"},
			sentinel: shader.ErrCompileFailed,
			want:     "translate vertex shader: shader compilation failed: module has no vertex entry point",
		},
		{
			name:     "link",
			err:      &shader.DiagnosticError{Op: shader.OpLink, Log: "error: mismatch"},
			sentinel: shader.ErrLinkFailed,
			want:     "link program: shader program linking failed: error: mismatch",
		},
		{
			name:     "empty log",
			err:      &shader.DiagnosticError{Op: shader.OpLink},
			sentinel: shader.ErrLinkFailed,
			want:     "link program: shader program linking failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
