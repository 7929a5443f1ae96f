package diag

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fatih/color"
)

const highlightStyle = "monokai"

// Reporter prints compile outcomes for the user. Compile failures show each
// marker with the offending line of user code; link failures show the raw
// log, since they can't be tied to a single line.
type Reporter struct {
	w        io.Writer
	colorize bool

	errorColor   *color.Color
	successColor *color.Color
	lineColor    *color.Color
}

// NewReporter returns a reporter writing to w. With colorize set, messages are
// coloured and source lines syntax highlighted.
func NewReporter(w io.Writer, colorize bool) *Reporter {
	r := &Reporter{
		w:            w,
		colorize:     colorize,
		errorColor:   color.New(color.FgRed, color.Bold),
		successColor: color.New(color.FgGreen, color.Bold),
		lineColor:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.errorColor, r.successColor, r.lineColor} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Succeeded reports a successful compile.
func (r *Reporter) Succeeded(attempt int) {
	r.successColor.Fprintf(r.w, "Compile success! (attempt %d)\n", attempt)
}

// CompileFailed reports a fragment shader compile failure. user is the
// source the markers refer to.
func (r *Reporter) CompileFailed(markers Markers, user string, rawLog string) {
	r.errorColor.Fprintln(r.w, "Shader compilation failed!")
	if len(markers) == 0 {
		// Nothing we could parse; show the driver's log as-is.
		fmt.Fprintln(r.w, strings.TrimRight(rawLog, "\n\x00"))
		return
	}

	lines := strings.Split(user, "\n")
	for _, m := range markers.Sorted() {
		if m.Line == 0 {
			r.errorColor.Fprint(r.w, "harness: ")
			fmt.Fprintln(r.w, m.Message)
			continue
		}
		r.lineColor.Fprintf(r.w, "line %d: ", m.Line)
		fmt.Fprintln(r.w, m.Message)
		if m.Line <= len(lines) {
			r.lineColor.Fprintf(r.w, "%5d | ", m.Line)
			fmt.Fprintln(r.w, r.highlight(lines[m.Line-1]))
		}
	}
}

// LinkFailed reports a program link failure.
func (r *Reporter) LinkFailed(rawLog string) {
	r.errorColor.Fprintln(r.w, "Shader link failed!")
	fmt.Fprintln(r.w, strings.TrimRight(rawLog, "\n\x00"))
}

func (r *Reporter) highlight(line string) string {
	if !r.colorize {
		return line
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, line, "glsl", "terminal256", highlightStyle); err != nil {
		return line
	}
	return strings.TrimRight(buf.String(), "\n")
}
