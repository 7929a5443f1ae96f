// Package gpu implements the shader and render backends with OpenGL 4.1 core.
// Everything here must run on the thread that owns the GL context.
package gpu

import (
	"errors"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/shaderpad/internal/shader"
)

// ShaderBackend compiles and links shaders with the driver's GLSL compiler.
type ShaderBackend struct{}

var _ shader.Backend = ShaderBackend{}

// CompileShader compiles a single shader from source. On failure the shader
// object is deleted and the info log returned as the error.
func (ShaderBackend) CompileShader(stage shader.Stage, source string) (uint32, error) {
	shaderType := uint32(gl.FRAGMENT_SHADER)
	if stage == shader.Vertex {
		shaderType = gl.VERTEX_SHADER
	}

	s := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csource, nil)
	free()
	gl.CompileShader(s)

	// Check compilation status.
	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(s, logLength, nil, gl.Str(logText))
		gl.DeleteShader(s)
		return 0, errors.New(trimLog(logText))
	}
	return s, nil
}

// LinkProgram links the given shaders into a new program. On failure the
// program object is deleted and the info log returned as the error.
func (ShaderBackend) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	// Check linking status.
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		for _, s := range shaders {
			gl.DetachShader(program, s)
		}
		gl.DeleteProgram(program)
		return 0, errors.New(trimLog(logText))
	}
	return program, nil
}

// UniformLocation returns the location of the named uniform, -1 if the
// program doesn't use it.
func (ShaderBackend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (ShaderBackend) DeleteShader(s uint32) { gl.DeleteShader(s) }

func (ShaderBackend) DeleteProgram(p uint32) { gl.DeleteProgram(p) }

func trimLog(s string) string {
	s = strings.TrimRight(s, "\x00\n ")
	if s == "" {
		return "(driver returned an empty info log)"
	}
	return s
}
