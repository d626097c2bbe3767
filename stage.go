package shader

import "fmt"

// StageKind selects the pipeline stage a source is compiled against.
type StageKind uint8

// The zero StageKind names no stage.
const (
	StageVertex StageKind = iota + 1
	StageFragment
)

// String returns the lowercase stage name.
func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("StageKind(%d)", uint8(k))
	}
}

// Stage is a compiled but unlinked shader stage.
// It is consumed by Builder.Link, which always deletes it.
type Stage struct {
	id     uint32
	kind   StageKind
	driver Driver
}

// ID returns the native shader id, or 0 once the stage has been deleted.
func (s *Stage) ID() uint32 {
	if s == nil {
		return 0
	}
	return s.id
}

// Kind returns the stage the object was compiled for, or the zero
// StageKind for a nil stage.
func (s *Stage) Kind() StageKind {
	if s == nil {
		return 0
	}
	return s.kind
}

// Delete frees the native shader object. Safe to call more than once.
func (s *Stage) Delete() {
	if s == nil || s.id == 0 {
		return
	}
	s.driver.DeleteShader(s.id)
	s.id = 0
}

func describeStage(s *Stage) string {
	if s == nil || s.id == 0 {
		return "no stage"
	}
	return s.kind.String()
}
