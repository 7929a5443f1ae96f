package gpu

import (
	"fmt"
	"log"

	"fortio.org/safecast"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/shaderpad/internal/geom"
	"github.com/irfansharif/shaderpad/internal/harness"
	"github.com/irfansharif/shaderpad/internal/render"
	"github.com/irfansharif/shaderpad/internal/shader"
)

// Full-screen quad, drawn as a triangle strip.
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// target is a texture-backed framebuffer.
type target struct {
	w, h    int
	fbo     uint32
	texture uint32
}

func (t *target) Size() (int, int) { return t.w, t.h }
func (t *target) Texture() uint32  { return t.texture }

// Device draws shader programs into offscreen targets and presents them.
type Device struct {
	vao, vbo uint32
}

var _ render.Device = (*Device)(nil)

// NewDevice uploads the full-screen quad.
func NewDevice() *Device {
	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4 /* sizeof(float32) */, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0 /* aPos */, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return d
}

// NewTarget allocates a w×h RGBA8 color target.
func (d *Device) NewTarget(w, h int) (render.Target, error) {
	t := &target{w: w, h: h}

	gl.GenTextures(1, &t.texture)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, i32(w), i32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.texture, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		d.DeleteTarget(t)
		return nil, fmt.Errorf("framebuffer incomplete (status 0x%x)", status)
	}
	return t, nil
}

// DeleteTarget releases the target's framebuffer and texture.
func (d *Device) DeleteTarget(rt render.Target) {
	t := rt.(*target)
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.texture)
}

// Draw renders one frame of p into the target. Uniforms the program doesn't
// use have location -1, which GL ignores.
func (d *Device) Draw(rt render.Target, p *shader.Program, f render.Frame) {
	t := rt.(*target)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, i32(t.w), i32(t.h))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if p.Valid() {
		gl.UseProgram(p.Handle)
		gl.Uniform3f(p.Location(harness.Resolution), f.Resolution[0], f.Resolution[1], f.Resolution[2])
		gl.Uniform1f(p.Location(harness.Time), f.Time)
		gl.Uniform1f(p.Location(harness.TimeDelta), f.TimeDelta)
		gl.Uniform1i(p.Location(harness.Frame), f.Index)
		gl.Uniform4f(p.Location(harness.Mouse), f.Mouse[0], f.Mouse[1], f.Mouse[2], f.Mouse[3])

		gl.BindVertexArray(d.vao)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
		gl.BindVertexArray(0)
		gl.UseProgram(0)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Present copies the target into dst on the default framebuffer. dst is in
// framebuffer pixels with a bottom-left origin.
func (d *Device) Present(rt render.Target, dst geom.Box) {
	t := rt.(*target)
	x0, y0 := int(dst.X), int(dst.Y)
	x1, y1 := x0+int(dst.W), y0+int(dst.H)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(
		0, 0, i32(t.w), i32(t.h),
		i32(x0), i32(y0), i32(x1), i32(y1),
		gl.COLOR_BUFFER_BIT, gl.NEAREST,
	)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// Clear fills the whole default framebuffer.
func (d *Device) Clear(w, h int, c colorful.Color) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, i32(w), i32(h))
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// FillRect fills r on the default framebuffer (bottom-left origin).
func (d *Device) FillRect(r geom.Box, c colorful.Color) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(i32(int(r.X)), i32(int(r.Y)), i32(int(r.W)), i32(int(r.H)))
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
}

// Close releases the quad.
func (d *Device) Close() {
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
}

func i32(v int) int32 {
	out, err := safecast.Convert[int32](v)
	if err != nil {
		log.Fatalf("size %d out of range for GL: %v", v, err)
	}
	return out
}
