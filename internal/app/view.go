package app

import (
	"github.com/irfansharif/shaderpad/internal/geom"
)

// defaultStripHeight is the height of the status strip in framebuffer pixels
// at a content scale of 1.
const defaultStripHeight = 6

// View splits the framebuffer into the display panel and the status strip
// below it. All boxes use a bottom-left origin, like GL.
type View struct {
	Width, Height int
	StripHeight   int
}

// NewView creates a view for a framebuffer of the given size.
func NewView(width, height int, scale float32) *View {
	strip := int(defaultStripHeight*scale + 0.5)
	if strip < 1 {
		strip = 1
	}
	return &View{Width: width, Height: height, StripHeight: strip}
}

// SetViewport updates the framebuffer dimensions.
func (v *View) SetViewport(width, height int) {
	v.Width = width
	v.Height = height
}

// Panel returns the area the shader output is shown in. It's empty when the
// framebuffer is too small to hold anything above the strip.
func (v *View) Panel() geom.Box {
	h := v.Height - v.StripHeight
	if h < 0 || v.Width <= 0 {
		return geom.MakeBox(0, float64(v.StripHeight), 0, 0)
	}
	return geom.MakeBox(0, float64(v.StripHeight), float64(v.Width), float64(h))
}

// Strip returns the status strip.
func (v *View) Strip() geom.Box {
	h := v.StripHeight
	if h > v.Height {
		h = v.Height
	}
	return geom.MakeBox(0, 0, float64(v.Width), float64(h))
}
