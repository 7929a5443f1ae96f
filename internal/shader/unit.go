// Package shader owns the live shader program. A Unit recompiles user code
// against the harness, keeps the last working program alive when a compile or
// link fails, and resolves the standard uniform locations on success.
//
// All GPU work goes through the Backend interface; internal/gpu provides the
// OpenGL implementation.
package shader

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/irfansharif/shaderpad/internal/diag"
	"github.com/irfansharif/shaderpad/internal/harness"
)

var compileLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("SHADERPAD_DEBUG_COMPILE") == "1" {
		compileLogger = log.New(os.Stdout, "[compile] ", log.Ltime|log.Lmsgprefix)
	}
}

// Stage identifies a shader stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Backend is the native compiler. Failed compiles and links return the info
// log as the error text, and have already released the failed object.
type Backend interface {
	CompileShader(stage Stage, source string) (uint32, error)
	LinkProgram(shaders ...uint32) (uint32, error)
	UniformLocation(program uint32, name string) int32
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
}

// Program is a linked program together with its resolved uniforms. The zero
// Program has handle 0 and draws nothing.
type Program struct {
	Handle    uint32           // program object
	Fragment  uint32           // fragment shader object owned by the program
	Locations map[string]int32 // uniform name to location; -1 if unused
	Source    string           // user source the program was built from
}

// Location returns the location of the named uniform, or -1 if the program
// doesn't use it. Uploads to -1 are ignored by GL.
func (p *Program) Location(name string) int32 {
	if p == nil {
		return -1
	}
	if loc, ok := p.Locations[name]; ok {
		return loc
	}
	return -1
}

// Valid returns whether the program can be drawn with.
func (p *Program) Valid() bool { return p != nil && p.Handle != 0 }

// Stats tracks compile attempts.
type Stats struct {
	Attempts     int
	CompileFails int
	LinkFails    int
}

// Unit recompiles user shaders. It's the only place the live program is
// replaced. Not safe for concurrent use; it's driven from the GL thread.
type Unit struct {
	backend Backend
	harness *harness.Harness
	parser  diag.Parser

	vertex  uint32
	current *Program
	markers diag.Markers
	ok      bool
	stats   Stats
}

// NewUnit compiles the harness vertex shader and returns a unit with an empty
// current program.
func NewUnit(backend Backend, h *harness.Harness, parser diag.Parser) (*Unit, error) {
	if parser == nil {
		parser = diag.GLSLParser{}
	}
	vertex, err := backend.CompileShader(Vertex, h.VertexSource())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVertex, err)
	}
	return &Unit{
		backend: backend,
		harness: h,
		parser:  parser,
		vertex:  vertex,
		current: &Program{},
		markers: make(diag.Markers),
	}, nil
}

// Recompile builds a program from user source. On failure it returns a
// *CompileError or *LinkError and the current program is left untouched. On
// success the new program becomes current and the old one is released.
func (u *Unit) Recompile(user string) (*Program, error) {
	u.stats.Attempts++
	src := u.harness.Assemble(user)
	offset, err := src.Offset(harness.SegmentUser)
	if err != nil {
		u.ok = false
		u.markers = make(diag.Markers)
		return nil, err
	}

	frag, err := u.backend.CompileShader(Fragment, src.Text())
	if err != nil {
		u.stats.CompileFails++
		u.ok = false
		rawLog := err.Error()
		u.markers = diag.Mapper{Parser: u.parser, Offset: offset}.Map(rawLog)
		compileLogger.Printf("fragment compile failed (%d marker(s)): %s", len(u.markers), rawLog)
		return nil, &CompileError{Log: rawLog, Markers: u.markers}
	}

	prog, err := u.backend.LinkProgram(u.vertex, frag)
	if err != nil {
		u.backend.DeleteShader(frag)
		u.stats.LinkFails++
		u.ok = false
		u.markers = make(diag.Markers)
		compileLogger.Printf("link failed: %s", err)
		return nil, &LinkError{Log: err.Error()}
	}

	next := &Program{
		Handle:    prog,
		Fragment:  frag,
		Locations: make(map[string]int32, len(u.harness.UniformNames())),
		Source:    user,
	}
	for _, name := range u.harness.UniformNames() {
		loc := u.backend.UniformLocation(prog, name)
		if loc < 0 {
			// Unused uniforms are optimized out; that's fine.
			compileLogger.Printf("uniform %s unused", name)
		}
		next.Locations[name] = loc
	}

	// Only release the outgoing objects once the new program is in place.
	prev := u.current
	u.current = next
	u.release(prev)

	u.ok = true
	u.markers = make(diag.Markers)
	compileLogger.Printf("compiled program %d (fragment %d)", next.Handle, next.Fragment)
	return next, nil
}

// Current returns the live program. It is never nil.
func (u *Unit) Current() *Program { return u.current }

// Markers returns the diagnostics of the last attempt, keyed by user line.
// Empty after a successful compile or a link failure.
func (u *Unit) Markers() diag.Markers { return u.markers }

// OK returns whether the last attempt succeeded.
func (u *Unit) OK() bool { return u.ok }

// Harness returns the harness user code is compiled against.
func (u *Unit) Harness() *harness.Harness { return u.harness }

// Stats returns compile statistics.
func (u *Unit) Stats() Stats { return u.stats }

// Close releases the current program and the vertex shader.
func (u *Unit) Close() {
	u.release(u.current)
	u.current = &Program{}
	if u.vertex != 0 {
		u.backend.DeleteShader(u.vertex)
		u.vertex = 0
	}
}

func (u *Unit) release(p *Program) {
	if p == nil {
		return
	}
	if p.Handle != 0 {
		u.backend.DeleteProgram(p.Handle)
	}
	if p.Fragment != 0 {
		u.backend.DeleteShader(p.Fragment)
	}
}
