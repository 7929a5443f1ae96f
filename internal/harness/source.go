package harness

import (
	"fmt"
	"strings"
)

// Segment is a named, contiguous piece of an assembled shader source.
type Segment struct {
	Name string
	Text string
}

// Source is an ordered list of segments making up one shader stage.
type Source struct {
	Segments []Segment
}

// Text joins all segments. Segments other than the last are expected to end
// in a newline, which Assemble guarantees for the prologue.
func (s Source) Text() string {
	var b strings.Builder
	for _, seg := range s.Segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Offset returns the number of lines preceding the named segment. Compiler
// line L then corresponds to line L-Offset within that segment.
func (s Source) Offset(name string) (int, error) {
	offset := 0
	for _, seg := range s.Segments {
		if seg.Name == name {
			return offset, nil
		}
		if seg.Text != "" && !strings.HasSuffix(seg.Text, "\n") {
			return 0, fmt.Errorf("segment %q does not end in a newline, offset of %q is ambiguous", seg.Name, name)
		}
		offset += countLines(seg.Text)
	}
	return 0, fmt.Errorf("no segment named %q", name)
}
