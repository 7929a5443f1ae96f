package diag

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Logs captured from real drivers, for an assembled shader whose 16th line
// is broken.
const (
	glslangLog = "ERROR: 0:16: 'colr' : undeclared identifier \n" +
		"ERROR: 0:16: '' : compilation terminated \n" +
		"ERROR: 2 compilation errors.  No code generated.\n\x00"
	mesaLog   = "0:16(5): error: syntax error, unexpected IDENTIFIER, expecting ',' or ';'\n"
	nvidiaLog = "0(16) : error C0000: syntax error, unexpected identifier, expecting \",\" or \";\" at token \"fragColor\"\n"

	mesaPreprocessorLog = "0:16(1): preprocessor error: Invalid tokens after #\n"
	parenLog            = "ERROR: (16:5): syntax error\n"
	parenBareLog        = "error (16:5): 'colr' : undeclared identifier\n"
)

func TestGLSLParserFormats(t *testing.T) {
	for _, tc := range []struct {
		name string
		log  string
		want []int
	}{
		{name: "glslang", log: glslangLog, want: []int{16, 16}},
		{name: "mesa", log: mesaLog, want: []int{16}},
		{name: "nvidia", log: nvidiaLog, want: []int{16}},
		{name: "mesa-preprocessor", log: mesaPreprocessorLog, want: []int{16}},
		{name: "paren", log: parenLog, want: []int{16}},
		{name: "paren-bare", log: parenBareLog, want: []int{16}},
		{name: "empty", log: "", want: nil},
		{name: "noise", log: "Fragment info\n-------------\n", want: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got []int
			for _, m := range (GLSLParser{}).Parse(tc.log) {
				got = append(got, m.Line)
				assert.Equal(t, "16", m.Message[m.Ref[0]:m.Ref[1]])
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapperRemapsLines(t *testing.T) {
	// A 13 line prologue and an error on the third line of user code.
	m := Mapper{Parser: GLSLParser{}, Offset: 13}

	for _, log := range []string{glslangLog, mesaLog, nvidiaLog, mesaPreprocessorLog, parenLog, parenBareLog} {
		markers := m.Map(log)
		require.Len(t, markers, 1)
		msg, ok := markers[3]
		require.True(t, ok)
		assert.NotContains(t, msg, "16")
	}

	markers := m.Map(mesaLog)
	assert.Equal(t, "0:3(5): error: syntax error, unexpected IDENTIFIER, expecting ',' or ';'", markers[3])
	assert.Equal(t, "0:3(1): preprocessor error: Invalid tokens after #", m.Map(mesaPreprocessorLog)[3])
	assert.Equal(t, "ERROR: (3:5): syntax error", m.Map(parenLog)[3])
	assert.Equal(t, "error (3:5): 'colr' : undeclared identifier", m.Map(parenBareLog)[3])
}

func TestMapperOffsetArithmetic(t *testing.T) {
	for _, offset := range []int{0, 1, 11, 13, 40} {
		for _, k := range []int{1, 2, 7} {
			log := "ERROR: 0:" + strconv.Itoa(offset+k) + ": 'x' : undeclared identifier\n"
			markers := Mapper{Offset: offset}.Map(log)
			_, ok := markers[k]
			assert.True(t, ok, "offset %d, user line %d", offset, k)
		}
	}
}

func TestMapperLastWins(t *testing.T) {
	log := "ERROR: 0:14: first\nERROR: 0:14: second\nERROR: 0:15: third\n"
	markers := Mapper{Offset: 13}.Map(log)
	require.Len(t, markers, 2)
	assert.Equal(t, "ERROR: 0:1: second", markers[1])
	assert.Equal(t, "ERROR: 0:2: third", markers[2])

	sorted := markers.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, 1, sorted[0].Line)
	assert.Equal(t, 2, sorted[1].Line)
}

func TestMapperHarnessLine(t *testing.T) {
	log := "ERROR: 0:4: 'iTime' : redefinition\n"
	markers := Mapper{Offset: 13}.Map(log)
	require.Len(t, markers, 1)
	assert.Equal(t, "ERROR: 0:4: 'iTime' : redefinition", markers[0])
}

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false /* colorize */)

	user := "void mainImage(out vec4 fragColor, in vec2 fragCoord)\n{\n    fragColor = colr;\n}\n"
	r.CompileFailed(Markers{3: "ERROR: 0:3: 'colr' : undeclared identifier"}, user, "")
	out := buf.String()
	assert.Contains(t, out, "Shader compilation failed!")
	assert.Contains(t, out, "line 3: ERROR: 0:3: 'colr' : undeclared identifier")
	assert.Contains(t, out, "    3 |     fragColor = colr;")

	buf.Reset()
	r.CompileFailed(nil, user, "driver said no\n")
	assert.Contains(t, buf.String(), "driver said no")

	buf.Reset()
	r.LinkFailed("error: undefined reference to mainImage\x00")
	assert.Equal(t, "Shader link failed!\nerror: undefined reference to mainImage\n", buf.String())

	buf.Reset()
	r.Succeeded(2)
	assert.Equal(t, "Compile success! (attempt 2)\n", buf.String())
	assert.False(t, strings.Contains(buf.String(), "\x1b["))
}
