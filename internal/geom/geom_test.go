package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowToPanel(t *testing.T) {
	// 800x600 framebuffer at 2x content scale; the panel sits above a 10px
	// status strip.
	panel := MakeBox(0, 10, 800, 590)
	xf := WindowToPanel(panel, 600, 2, 2)

	// Top-left of the window is the top-left of the panel.
	p := xf.MulPoint(MakePoint(0, 0))
	assert.Equal(t, MakePoint(0, 590), p)

	// Cursor at (100, 250) in screen units is pixel (200, 500) from the top,
	// i.e. 100 from the bottom of the framebuffer, 90 above the panel's origin.
	p = xf.MulPoint(MakePoint(100, 250))
	assert.Equal(t, MakePoint(200, 90), p)
}

func TestBoxContains(t *testing.T) {
	b := MakeBox(0, 10, 100, 50)
	assert.True(t, b.Contains(MakePoint(0, 10)))
	assert.True(t, b.Contains(MakePoint(99.5, 59)))
	assert.False(t, b.Contains(MakePoint(100, 20)))
	assert.False(t, b.Contains(MakePoint(50, 5)))

	w, h := b.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
}

func TestAffineMul(t *testing.T) {
	translate := MakeAffine(1, 0, 5, 0, 1, -3)
	scale := MakeAffine(2, 0, 0, 0, 2, 0)
	p := translate.Mul(scale).MulPoint(MakePoint(1, 1))
	assert.Equal(t, MakePoint(7, -1), p)
}
