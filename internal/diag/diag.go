// Package diag turns raw GLSL compiler logs into markers keyed by the line of
// the user's own text.
//
// Drivers disagree on how they print diagnostics, so parsing sits behind the
// Parser interface. GLSLParser covers the formats seen in practice (glslang,
// Mesa, NVIDIA); Mapper then shifts the parsed lines by the harness prologue
// so they line up with what the user typed.
package diag

import (
	"io"
	"log"
	"os"
	"sort"
	"strconv"
)

var compileLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("SHADERPAD_DEBUG_COMPILE") == "1" {
		compileLogger = log.New(os.Stdout, "[diag] ", log.Ltime|log.Lmsgprefix)
	}
}

// Marker is a single diagnostic attached to a line.
type Marker struct {
	Line    int    // 1-based; 0 if the diagnostic points inside the harness
	Message string // the compiler's text for this diagnostic

	// Ref is the byte range of the line number within Message, if the parser
	// found one. Mapper uses it to rewrite the number. Ref[0] == Ref[1] means
	// there's nothing to rewrite.
	Ref [2]int
}

// Parser extracts raw (unmapped) markers from a compiler or linker log.
type Parser interface {
	Parse(text string) []Marker
}

// Markers holds at most one message per user-visible line.
type Markers map[int]string

// Sorted returns the markers ordered by line.
func (ms Markers) Sorted() []Marker {
	out := make([]Marker, 0, len(ms))
	for line, msg := range ms {
		out = append(out, Marker{Line: line, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// Mapper maps raw compiler lines to user lines.
type Mapper struct {
	Parser Parser
	Offset int // number of harness lines preceding user code
}

// Map parses the log and re-keys every diagnostic by user line. When two
// diagnostics land on the same line, the later one wins.
func (m Mapper) Map(text string) Markers {
	parser := m.Parser
	if parser == nil {
		parser = GLSLParser{}
	}

	markers := make(Markers)
	for _, raw := range parser.Parse(text) {
		line := raw.Line - m.Offset
		if line < 1 {
			// The error sits inside the harness itself; the prologue and the
			// offset disagree, or the harness is broken.
			log.Printf("WARNING: diagnostic at raw line %d precedes user code (offset %d): %s", raw.Line, m.Offset, raw.Message)
			markers[0] = raw.Message
			continue
		}
		markers[line] = rewriteRef(raw, line)
	}
	compileLogger.Printf("mapped %d diagnostic(s) with offset %d", len(markers), m.Offset)
	return markers
}

// rewriteRef replaces the line number embedded in the message with line.
func rewriteRef(m Marker, line int) string {
	start, end := m.Ref[0], m.Ref[1]
	if start >= end || start < 0 || end > len(m.Message) {
		return m.Message
	}
	return m.Message[:start] + strconv.Itoa(line) + m.Message[end:]
}
