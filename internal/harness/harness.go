// Package harness holds the fixed shader scaffolding that user code is
// compiled against. It mirrors the Shadertoy convention: the user writes a
// mainImage function, and the harness supplies the uniforms and the real main.
//
// Assembled sources are kept as an ordered list of named segments so the line
// offset of the user's text is always derived from the harness itself, never
// from a constant that has to be kept in sync by hand.
package harness

import (
	"fmt"
	"strings"
)

// DefaultVersion is the GLSL version line used by Default. OpenGL 4.1 core is
// the newest context available on every desktop platform we target.
const DefaultVersion = "#version 410 core"

// Segment names used by Assemble.
const (
	SegmentPrologue = "prologue"
	SegmentUser     = "user"
)

// Standard uniform names.
const (
	Resolution = "iResolution"
	Time       = "iTime"
	TimeDelta  = "iTimeDelta"
	Frame      = "iFrame"
	Mouse      = "iMouse"
)

// Uniform is a single standard uniform declared by the harness.
type Uniform struct {
	Name string
	Type string
	Doc  string // rendered as a trailing comment in the prologue
}

// Standard is the uniform set every user shader can rely on.
var Standard = []Uniform{
	{Name: Resolution, Type: "vec3", Doc: "viewport resolution (in pixels)"},
	{Name: Time, Type: "float", Doc: "playback time (in seconds)"},
	{Name: TimeDelta, Type: "float", Doc: "render time (in seconds)"},
	{Name: Frame, Type: "int", Doc: "playback frame"},
	{Name: Mouse, Type: "vec4", Doc: "xy: pointer pixel coords, zw: left/right button down"},
}

// EntryPoint is the prototype of the function users have to define.
const EntryPoint = "void mainImage(out vec4 fragColor, in vec2 fragCoord)"

// Harness is the immutable shader scaffolding for one GLSL version.
type Harness struct {
	version  string
	uniforms []Uniform
	vertex   string
	prologue string
}

// Default returns the harness for DefaultVersion.
func Default() *Harness {
	return New(DefaultVersion)
}

// New returns a harness whose shaders start with the given #version line.
func New(version string) *Harness {
	version = strings.TrimSpace(version)
	uniforms := append([]Uniform(nil), Standard...)
	return &Harness{
		version:  version,
		uniforms: uniforms,
		vertex:   buildVertex(version),
		prologue: buildPrologue(version, uniforms),
	}
}

// Version returns the #version line shared by both shader stages.
func (h *Harness) Version() string { return h.version }

// Uniforms returns the standard uniforms declared by the prologue.
func (h *Harness) Uniforms() []Uniform {
	return append([]Uniform(nil), h.uniforms...)
}

// UniformNames returns the names of the standard uniforms, in declaration
// order.
func (h *Harness) UniformNames() []string {
	names := make([]string, len(h.uniforms))
	for i, u := range h.uniforms {
		names[i] = u.Name
	}
	return names
}

// VertexSource returns the pass-through vertex shader for the full-screen
// quad.
func (h *Harness) VertexSource() string { return h.vertex }

// Prologue returns the fragment shader text that precedes user code.
func (h *Harness) Prologue() string { return h.prologue }

// PrologueLines returns the number of lines in the prologue, i.e. the amount
// to subtract from a compiler line number to get a user line number.
func (h *Harness) PrologueLines() int { return countLines(h.prologue) }

// Assemble wraps user code with the prologue.
func (h *Harness) Assemble(user string) Source {
	return Source{Segments: []Segment{
		{Name: SegmentPrologue, Text: h.prologue},
		{Name: SegmentUser, Text: user},
	}}
}

func buildVertex(version string) string {
	var b strings.Builder
	b.WriteString(version + "\n")
	b.WriteString("layout (location = 0) in vec2 aPos;\n")
	b.WriteString("void main() {\n")
	b.WriteString("    gl_Position = vec4(aPos, 0.0, 1.0);\n")
	b.WriteString("}\n")
	return b.String()
}

func buildPrologue(version string, uniforms []Uniform) string {
	var b strings.Builder
	b.WriteString(version + "\n")
	b.WriteString("out vec4 FinalColor;\n")
	for _, u := range uniforms {
		fmt.Fprintf(&b, "uniform %s %s; // %s\n", u.Type, u.Name, u.Doc)
	}
	b.WriteString(EntryPoint + ";\n")
	b.WriteString("void main() {\n")
	b.WriteString("    mainImage(FinalColor, gl_FragCoord.xy);\n")
	b.WriteString("}\n")
	return b.String()
}

// countLines counts newline-terminated lines. A trailing fragment without a
// newline counts as a line as well.
func countLines(s string) int {
	n := strings.Count(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
