package diag

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Known diagnostic formats. Each pattern has a "line" group holding the line
// number within the (single) source string.
var glslPatterns = []*regexp.Regexp{
	// glslang, Intel, AMD, Apple:
	//   ERROR: 0:16: 'x' : undeclared identifier
	regexp.MustCompile(`^\s*(?:ERROR|WARNING|error|warning)\s*:\s*\d+:(?P<line>\d+)\s*:`),
	// Mesa, including preprocessor errors:
	//   0:16(5): error: syntax error, unexpected IDENTIFIER
	//   0:16(1): preprocessor error: Invalid tokens after #
	regexp.MustCompile(`^\s*\d+:(?P<line>\d+)\(\d+\)\s*:\s*(?:\w+\s+)?(?:error|warning)`),
	// Label then a parenthesised line:column:
	//   ERROR: (16:5): syntax error
	//   error (16:5): 'colr' : undeclared identifier
	regexp.MustCompile(`^\s*(?:ERROR|WARNING|error|warning)\s*:?\s*\((?P<line>\d+):\d+\)`),
	// NVIDIA:
	//   0(16) : error C0000: syntax error, unexpected identifier
	regexp.MustCompile(`^\s*\d+\((?P<line>\d+)\)\s*:\s*(?:error|warning)`),
}

// GLSLParser recognises the diagnostic formats of the common desktop GLSL
// compilers. Lines it doesn't recognise are dropped.
type GLSLParser struct{}

var _ Parser = GLSLParser{}

// Parse implements the Parser interface.
func (GLSLParser) Parse(text string) []Marker {
	var markers []Marker
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r\x00")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m, ok := parseLine(line); ok {
			markers = append(markers, m)
		}
	}
	return markers
}

func parseLine(line string) (Marker, bool) {
	for _, re := range glslPatterns {
		idx := re.FindStringSubmatchIndex(line)
		if idx == nil {
			continue
		}
		g := re.SubexpIndex("line")
		start, end := idx[2*g], idx[2*g+1]
		n, err := strconv.Atoi(line[start:end])
		if err != nil {
			continue
		}
		return Marker{
			Line:    n,
			Message: strings.TrimSpace(line),
			Ref:     trimmedRef(line, start, end),
		}, true
	}
	return Marker{}, false
}

// trimmedRef adjusts a byte range in line for the leading whitespace that
// TrimSpace removes from the message.
func trimmedRef(line string, start, end int) [2]int {
	lead := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
	return [2]int{start - lead, end - lead}
}
