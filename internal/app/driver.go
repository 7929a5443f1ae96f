package app

import (
	"time"

	"github.com/irfansharif/shaderpad/internal/geom"
	"github.com/irfansharif/shaderpad/internal/render"
)

// exitConfirmWindow is how long a first Escape stays armed, waiting for the
// second one.
const exitConfirmWindow = 3 * time.Second

// Input is everything the window layer observed since the previous frame.
// A fresh value is handed to Update every frame; there's no shared input
// state outside of it.
type Input struct {
	Save  bool // save gesture: Ctrl+S, or the file changed on disk
	Exit  bool // Escape pressed
	Close bool // window close requested, no confirmation needed

	CursorX, CursorY float64 // window coordinates (screen units, top-left origin)
	Left, Right      bool    // pointer buttons held down

	Panel          geom.Box // display panel in framebuffer pixels (bottom-left origin)
	FramebufferH   int      // framebuffer height, for flipping the cursor
	ScaleX, ScaleY float32  // window content scale
}

// Actions are what the driver decided for this frame.
type Actions struct {
	Recompile bool // snapshot the buffer and recompile
	Quit      bool // leave the main loop
	ExitArmed bool // an Escape is waiting for confirmation
}

// Driver owns the per-frame state: the frame counter, the clock and the
// exit confirmation. It doesn't touch the GPU.
type Driver struct {
	clock func() time.Duration // time since start

	frames  int32
	last    time.Duration
	started bool

	armed   bool
	armedAt time.Duration
}

// NewDriver returns a driver reading time from clock. A nil clock uses the
// wall clock, starting now.
func NewDriver(clock func() time.Duration) *Driver {
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}
	return &Driver{clock: clock}
}

// Update advances one frame. It returns the uniform values for the frame and
// the actions to take. The very first frame always recompiles, so the buffer
// is live without a save.
func (d *Driver) Update(in Input) (render.Frame, Actions) {
	now := d.clock()
	var act Actions

	if !d.started {
		d.started = true
		d.last = now
		act.Recompile = true
	}

	delta := now - d.last
	d.last = now
	frame := render.Frame{
		Time:       float32(now.Seconds()),
		TimeDelta:  float32(delta.Seconds()),
		Index:      d.frames,
		Resolution: [3]float32{float32(in.Panel.W), float32(in.Panel.H), 1},
		Mouse:      d.mouse(in),
	}
	d.frames++

	if d.armed && now-d.armedAt > exitConfirmWindow {
		d.armed = false
	}
	switch {
	case in.Close:
		act.Quit = true
	case in.Exit && d.armed:
		act.Quit = true
	case in.Exit:
		d.armed = true
		d.armedAt = now
	case in.Save:
		d.armed = false
	}
	if in.Save {
		act.Recompile = true
	}
	act.ExitArmed = d.armed && !act.Quit
	return frame, act
}

// Frames returns the number of frames driven so far.
func (d *Driver) Frames() int32 { return d.frames }

// mouse packs the pointer as (x, y, left, right), with x/y in panel pixels.
// Buttons only count while the pointer is over the panel.
func (d *Driver) mouse(in Input) [4]float32 {
	sx, sy := float64(in.ScaleX), float64(in.ScaleY)
	if sx == 0 || sy == 0 {
		sx, sy = 1, 1
	}
	xf := geom.WindowToPanel(in.Panel, float64(in.FramebufferH), sx, sy)
	p := xf.MulPoint(geom.MakePoint(in.CursorX, in.CursorY))
	if !geom.MakeBox(0, 0, in.Panel.W, in.Panel.H).Contains(p) {
		return [4]float32{float32(p.X), float32(p.Y), 0, 0}
	}
	return [4]float32{float32(p.X), float32(p.Y), button(in.Left), button(in.Right)}
}

func button(down bool) float32 {
	if down {
		return 1
	}
	return 0
}
