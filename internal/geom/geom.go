// Package geom provides the 2D primitives used to lay out the window:
// - Points and axis-aligned boxes in framebuffer pixels
// - Affine transforms between window (cursor) space and panel space
package geom

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned rectangle.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

// Contains returns whether p lies within the box (edges inclusive on the
// low side, exclusive on the high side).
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
}

// Size returns the box dimensions as whole pixels.
func (b Box) Size() (int, int) { return int(b.W), int(b.H) }

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// WindowToPanel returns the transform from window coordinates (screen units,
// top-left origin, as reported for the cursor) to pixel coordinates within
// panel (bottom-left origin, matching gl_FragCoord). fbHeight is the height
// of the framebuffer the panel lives in; scaleX/scaleY is the content scale.
func WindowToPanel(panel Box, fbHeight, scaleX, scaleY float64) Affine {
	toPixels := MakeAffine(scaleX, 0, 0, 0, scaleY, 0)
	flipY := MakeAffine(1, 0, 0, 0, -1, fbHeight)
	toPanel := MakeAffine(1, 0, -panel.X, 0, 1, -panel.Y)
	return toPanel.Mul(flipY.Mul(toPixels))
}
