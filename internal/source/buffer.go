// Package source holds the shader text the user is editing. The buffer
// belongs to the UI side; the compile path only ever takes snapshots of it.
package source

import (
	"fmt"
	"os"
)

// Starter is the buffer's contents when no file is given.
const Starter = `void mainImage( out vec4 fragColor, in vec2 fragCoord )
{
	// Normalized pixel coordinates (from 0 to 1)
	vec2 uv = fragCoord / iResolution.xy;

	// Time varying pixel color
	vec3 col = 0.5 + 0.5 * cos(iTime + uv.xyx + vec3(0, 2, 4));

	// Output to screen
	fragColor = vec4(col, 1.0);
}
`

// Buffer is the user's shader text, optionally backed by a file that's read
// (never written) on reload.
type Buffer struct {
	path string
	text string
}

// NewBuffer returns a buffer holding text, not backed by a file.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// Open returns a buffer backed by the file at path.
func Open(path string) (*Buffer, error) {
	b := &Buffer{path: path}
	if err := b.Reload(); err != nil {
		return nil, err
	}
	return b, nil
}

// Path returns the backing file, or "" for in-memory buffers.
func (b *Buffer) Path() string { return b.path }

// Reload rereads the backing file. It's a no-op for in-memory buffers. On
// error the previous text is kept.
func (b *Buffer) Reload() error {
	if b.path == "" {
		return nil
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		return fmt.Errorf("reading shader source: %w", err)
	}
	b.text = string(data)
	return nil
}

// Set replaces the buffer text.
func (b *Buffer) Set(text string) { b.text = text }

// Snapshot returns the current text.
func (b *Buffer) Snapshot() string { return b.text }
