// Package palette provides the window's status colors. It builds them in HCL
// space so success and failure read at the same brightness.
package palette

import (
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// Background fills the window around the preview.
	Background = colorful.Hcl(260, 0.05, 0.12).Clamped()
	// Success marks a compiled, live program.
	Success = colorful.Hcl(140, 0.45, 0.6).Clamped()
	// Failure marks a failed compile or link.
	Failure = colorful.Hcl(20, 0.6, 0.55).Clamped()
	// Pending is shown before the first compile finishes.
	Pending = colorful.Hcl(80, 0.3, 0.6).Clamped()
	// Warn is blended in while an exit is awaiting confirmation.
	Warn = colorful.Hcl(60, 0.7, 0.75).Clamped()
)

// Status returns the strip color for a compile state. With armed set (exit
// awaiting confirmation) the color is pulled halfway toward Warn.
func Status(compiled, ok, armed bool) colorful.Color {
	c := Pending
	if compiled {
		c = Failure
		if ok {
			c = Success
		}
	}
	if armed {
		c = c.BlendHcl(Warn, 0.5).Clamped()
	}
	return c
}
