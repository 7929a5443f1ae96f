// Package render draws the live shader program into an offscreen target sized
// to the display panel. The target is reallocated whenever the panel is
// resized, before the next draw.
package render

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/irfansharif/shaderpad/internal/shader"
)

var renderLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("SHADERPAD_DEBUG_RENDER") == "1" {
		renderLogger = log.New(os.Stdout, "[render] ", log.Ltime|log.Lmsgprefix)
	}
}

// Frame holds the per-frame uniform values. Recomputed every frame, never
// kept around.
type Frame struct {
	Time       float32    // seconds since start
	TimeDelta  float32    // seconds since the previous frame
	Index      int32      // frame counter
	Resolution [3]float32 // panel size in pixels, z unused
	Mouse      [4]float32 // pointer x, y; left, right button (0 or 1)
}

// Target is an offscreen color target.
type Target interface {
	Size() (w, h int)
	Texture() uint32
}

// Device is the graphics API the renderer drives.
type Device interface {
	NewTarget(w, h int) (Target, error)
	DeleteTarget(t Target)
	Draw(t Target, p *shader.Program, f Frame)
}

// Stats tracks rendering metrics.
type Stats struct {
	Reallocations  int
	Frames         int
	LastDrawTimeUs float64
}

// Renderer owns the offscreen target.
type Renderer struct {
	device Device
	target Target
	stats  Stats
}

func NewRenderer(device Device) *Renderer {
	return &Renderer{device: device}
}

// Render draws p into a target of size w×h, reallocating the target first if
// the size changed. Empty panels are skipped.
func (r *Renderer) Render(p *shader.Program, f Frame, w, h int) error {
	if w <= 0 || h <= 0 {
		return nil // nothing to draw into (minimized, collapsed panel)
	}
	if err := r.ensureTarget(w, h); err != nil {
		return err
	}

	start := time.Now()
	r.device.Draw(r.target, p, f)
	r.stats.Frames++
	r.stats.LastDrawTimeUs = float64(time.Since(start).Microseconds())
	return nil
}

func (r *Renderer) ensureTarget(w, h int) error {
	if r.target != nil {
		if tw, th := r.target.Size(); tw == w && th == h {
			return nil
		}
	}

	next, err := r.device.NewTarget(w, h)
	if err != nil {
		return fmt.Errorf("allocating %dx%d target: %w", w, h, err)
	}
	if r.target != nil {
		r.device.DeleteTarget(r.target)
	}
	r.target = next
	r.stats.Reallocations++
	renderLogger.Printf("reallocated target to %dx%d (texture %d)", w, h, next.Texture())
	return nil
}

// Target returns the most recently drawn target, or nil before the first
// frame.
func (r *Renderer) Target() Target { return r.target }

// Stats returns rendering statistics.
func (r *Renderer) Stats() Stats { return r.stats }

// Close releases the target.
func (r *Renderer) Close() {
	if r.target != nil {
		r.device.DeleteTarget(r.target)
		r.target = nil
	}
}
