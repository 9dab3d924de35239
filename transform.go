package flicker

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrix is a 2D affine transform.
//
//	Layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// The builder methods post-multiply, so m.Translate(x, y).Rotate(r) applies
// the rotation first and the translation last when mapping a point.
type Matrix [6]float64

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Multiply returns m * c.
func (m Matrix) Multiply(c Matrix) Matrix {
	return Matrix{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// Translate returns m * translate(x, y).
func (m Matrix) Translate(x, y float64) Matrix {
	return Matrix{m[0], m[1], m[2], m[3], m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]}
}

// Rotate returns m * rotate(deg), counter-clockwise in a y-up frame.
func (m Matrix) Rotate(deg float64) Matrix {
	if deg == 0 {
		return m
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return m.Multiply(Matrix{cos, sin, -sin, cos, 0, 0})
}

// Scale returns m * scale(sx, sy).
func (m Matrix) Scale(sx, sy float64) Matrix {
	return Matrix{m[0] * sx, m[1] * sx, m[2] * sy, m[3] * sy, m[4], m[5]}
}

// Apply maps the point (x, y) through m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Mat4 expands m into a column-major 4x4 matrix for uniform upload.
func (m Matrix) Mat4() mgl32.Mat4 {
	return mgl32.Mat4{
		float32(m[0]), float32(m[1]), 0, 0,
		float32(m[2]), float32(m[3]), 0, 0,
		0, 0, 1, 0,
		float32(m[4]), float32(m[5]), 0, 1,
	}
}

// Transform composes d's local transform onto parent:
//
//	parent * Translate(X, Y) * Rotate(Rotation) * Scale(ScaleX, ScaleY) * Translate(-PivotX*w/2, -PivotY*h/2)
//
// where (w, h) is d.Size(). The pivot offset is applied in the node's own
// rotated and scaled frame.
func Transform(d Drawable, parent Matrix) Matrix {
	n := d.Base()
	w, h := d.Size()
	return parent.
		Translate(n.X, n.Y).
		Rotate(n.Rotation).
		Scale(n.ScaleX, n.ScaleY).
		Translate(-n.PivotX*w/2, -n.PivotY*h/2)
}

// LocalTransform is Transform with an identity parent.
func LocalTransform(d Drawable) Matrix {
	return Transform(d, Identity())
}
