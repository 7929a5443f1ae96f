package shader

import (
	"errors"
	"fmt"

	"github.com/irfansharif/shaderpad/internal/diag"
)

// ErrVertex is returned by NewUnit when the harness vertex shader doesn't
// compile. There's no recovering from that.
var ErrVertex = errors.New("vertex shader compilation failed")

// CompileError is returned when the driver rejects the fragment shader.
type CompileError struct {
	Log     string       // raw info log
	Markers diag.Markers // diagnostics keyed by user line
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader compilation failed (%d diagnostic(s))", len(e.Markers))
}

// LinkError is returned when the program fails to link.
type LinkError struct {
	Log string // raw info log
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader link failed: %s", e.Log)
}
