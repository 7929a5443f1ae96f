package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrologue(t *testing.T) {
	h := Default()

	prologue := h.Prologue()
	require.True(t, strings.HasPrefix(prologue, DefaultVersion+"\n"))
	require.True(t, strings.HasSuffix(prologue, "\n"))
	for _, name := range []string{Resolution, Time, TimeDelta, Frame, Mouse} {
		assert.Contains(t, prologue, " "+name+";")
	}
	assert.Contains(t, prologue, EntryPoint+";")
	assert.Contains(t, prologue, "mainImage(FinalColor, gl_FragCoord.xy);")

	// version, output, five uniforms, prototype, three lines of main.
	assert.Equal(t, 11, h.PrologueLines())
}

func TestPrologueLinesTracksHarnessText(t *testing.T) {
	h := Default()
	assert.Equal(t, strings.Count(h.Prologue(), "\n"), h.PrologueLines())

	// A multi-line version directive shifts the offset without anything else
	// having to change.
	h2 := New("#version 330 core\n#define SHADERPAD 1")
	assert.Equal(t, h.PrologueLines()+1, h2.PrologueLines())
}

func TestAssembleOffsets(t *testing.T) {
	h := Default()
	user := "void mainImage(out vec4 c, in vec2 p) {\n    c = vec4(1.0);\n}\n"
	src := h.Assemble(user)

	offset, err := src.Offset(SegmentUser)
	require.NoError(t, err)
	assert.Equal(t, h.PrologueLines(), offset)

	offset, err = src.Offset(SegmentPrologue)
	require.NoError(t, err)
	assert.Zero(t, offset)

	_, err = src.Offset("nope")
	require.Error(t, err)

	assert.Equal(t, h.Prologue()+user, src.Text())

	// User line k lands on assembled line offset+k.
	lines := strings.Split(src.Text(), "\n")
	assert.Equal(t, "    c = vec4(1.0);", lines[h.PrologueLines()+2-1])

}

func TestOffsetRejectsUnterminatedSegment(t *testing.T) {
	src := Source{Segments: []Segment{
		{Name: "a", Text: "no newline"},
		{Name: "b", Text: "x\n"},
	}}
	_, err := src.Offset("b")
	require.Error(t, err)
}

func TestVertexSource(t *testing.T) {
	h := New("#version 330 core")
	v := h.VertexSource()
	assert.True(t, strings.HasPrefix(v, "#version 330 core\n"))
	assert.Contains(t, v, "layout (location = 0) in vec2 aPos;")
	assert.Equal(t, "#version 330 core", h.Version())
	assert.Equal(t, []string{Resolution, Time, TimeDelta, Frame, Mouse}, h.UniformNames())
}
