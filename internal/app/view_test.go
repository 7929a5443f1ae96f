package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irfansharif/shaderpad/internal/geom"
)

func TestViewLayout(t *testing.T) {
	v := NewView(800, 606, 1)
	assert.Equal(t, defaultStripHeight, v.StripHeight)
	assert.Equal(t, geom.MakeBox(0, 6, 800, 600), v.Panel())
	assert.Equal(t, geom.MakeBox(0, 0, 800, 6), v.Strip())

	v.SetViewport(1024, 774)
	assert.Equal(t, geom.MakeBox(0, 6, 1024, 768), v.Panel())

	// Content scale grows the strip.
	assert.Equal(t, 12, NewView(800, 600, 2).StripHeight)
}

func TestViewTooSmall(t *testing.T) {
	v := NewView(800, 4, 1)
	w, h := v.Panel().Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.Equal(t, geom.MakeBox(0, 0, 800, 4), v.Strip())
}
