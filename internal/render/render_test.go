package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/shaderpad/internal/shader"
)

type fakeTarget struct {
	w, h int
	tex  uint32
}

func (t *fakeTarget) Size() (int, int) { return t.w, t.h }
func (t *fakeTarget) Texture() uint32  { return t.tex }

type draw struct {
	w, h    int
	program uint32
	frame   Frame
}

// fakeDevice records allocations and draws in order.
type fakeDevice struct {
	nextTex uint32
	live    map[uint32]bool
	events  []string
	draws   []draw
	fail    bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{live: make(map[uint32]bool)}
}

func (d *fakeDevice) NewTarget(w, h int) (Target, error) {
	if d.fail {
		return nil, errors.New("out of memory")
	}
	d.nextTex++
	d.live[d.nextTex] = true
	d.events = append(d.events, "alloc")
	return &fakeTarget{w: w, h: h, tex: d.nextTex}, nil
}

func (d *fakeDevice) DeleteTarget(t Target) {
	delete(d.live, t.Texture())
	d.events = append(d.events, "delete")
}

func (d *fakeDevice) Draw(t Target, p *shader.Program, f Frame) {
	w, h := t.Size()
	d.draws = append(d.draws, draw{w: w, h: h, program: p.Handle, frame: f})
	d.events = append(d.events, "draw")
}

func TestRenderReallocatesOnResize(t *testing.T) {
	dev := newFakeDevice()
	r := NewRenderer(dev)
	p := &shader.Program{Handle: 7}

	require.NoError(t, r.Render(p, Frame{Index: 1}, 800, 600))
	require.NoError(t, r.Render(p, Frame{Index: 2}, 800, 600))
	require.NoError(t, r.Render(p, Frame{Index: 3}, 1024, 768))

	assert.Equal(t, []string{"alloc", "draw", "draw", "alloc", "delete", "draw"}, dev.events)
	require.Len(t, dev.draws, 3)
	last := dev.draws[2]
	assert.Equal(t, 1024, last.w)
	assert.Equal(t, 768, last.h)
	assert.Equal(t, int32(3), last.frame.Index)

	w, h := r.Target().Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Len(t, dev.live, 1)
	assert.Equal(t, 2, r.Stats().Reallocations)
	assert.Equal(t, 3, r.Stats().Frames)

	r.Close()
	assert.Empty(t, dev.live)
	assert.Nil(t, r.Target())
}

func TestRenderSkipsEmptyPanel(t *testing.T) {
	dev := newFakeDevice()
	r := NewRenderer(dev)

	require.NoError(t, r.Render(&shader.Program{}, Frame{}, 0, 600))
	require.NoError(t, r.Render(&shader.Program{}, Frame{}, 800, -1))
	assert.Empty(t, dev.events)
	assert.Nil(t, r.Target())
}

func TestRenderEmptyProgram(t *testing.T) {
	dev := newFakeDevice()
	r := NewRenderer(dev)

	// The zero program goes through the same path; the device draws nothing
	// with it.
	require.NoError(t, r.Render(&shader.Program{}, Frame{}, 640, 480))
	require.Len(t, dev.draws, 1)
	assert.Zero(t, dev.draws[0].program)
}

func TestRenderAllocationFailureKeepsTarget(t *testing.T) {
	dev := newFakeDevice()
	r := NewRenderer(dev)
	p := &shader.Program{Handle: 1}

	require.NoError(t, r.Render(p, Frame{}, 800, 600))
	dev.fail = true
	require.Error(t, r.Render(p, Frame{}, 1024, 768))

	w, h := r.Target().Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Len(t, dev.live, 1)
}
