package flicker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func assertMatrix(t *testing.T, want, got Matrix) {
	t.Helper()
	for i := range got {
		assert.InDelta(t, want[i], got[i], epsilon, "index %d (full: %v vs %v)", i, got, want)
	}
}

func TestMatrixIdentity(t *testing.T) {
	x, y := Identity().Apply(3, -4)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, -4.0, y)
}

func TestMatrixTranslateThenScale(t *testing.T) {
	m := Identity().Translate(10, 20).Scale(2, 3)
	x, y := m.Apply(1, 1)
	assert.InDelta(t, 12, x, epsilon)
	assert.InDelta(t, 23, y, epsilon)
}

func TestMatrixRotate90(t *testing.T) {
	m := Identity().Rotate(90)
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, Matrix{0, 1, -1, 0, 0, 0}, m)
	x, y := m.Apply(1, 0)
	assert.InDelta(t, 0, x, epsilon)
	assert.InDelta(t, 1, y, epsilon)
}

func TestMatrixMultiplyMatchesChaining(t *testing.T) {
	a := Identity().Translate(5, -2).Rotate(30)
	b := Identity().Scale(2, 0.5).Translate(1, 1)
	chained := a.Scale(2, 0.5).Translate(1, 1)
	assertMatrix(t, chained, a.Multiply(b))
}

func TestMatrixMat4Layout(t *testing.T) {
	m := Matrix{1, 2, 3, 4, 5, 6}.Mat4()
	// column-major: column 0 = (a, b), column 1 = (c, d), column 3 = (tx, ty)
	assert.Equal(t, float32(1), m.At(0, 0))
	assert.Equal(t, float32(2), m.At(1, 0))
	assert.Equal(t, float32(3), m.At(0, 1))
	assert.Equal(t, float32(4), m.At(1, 1))
	assert.Equal(t, float32(5), m.At(0, 3))
	assert.Equal(t, float32(6), m.At(1, 3))
	assert.Equal(t, float32(1), m.At(2, 2))
	assert.Equal(t, float32(1), m.At(3, 3))
}

func TestTransformIdentityParentMatchesLocal(t *testing.T) {
	r := NewRectangle(40, 20, ColorWhite)
	r.SetPosition(7, -3)
	r.Rotation = 33
	r.SetScale(1.5, -2)
	r.SetPivot(PivotLeft, PivotTop)
	assertMatrix(t, LocalTransform(r), Transform(r, Identity()))
}

func TestTransformComposesOntoParent(t *testing.T) {
	r := NewRectangle(10, 10, ColorWhite)
	r.SetPosition(5, 5)
	parent := Identity().Translate(100, 0).Scale(2, 2)
	assertMatrix(t, parent.Multiply(LocalTransform(r)), Transform(r, parent))
}

func TestTransformPivotOffsetsByHalfSize(t *testing.T) {
	r := NewRectangle(40, 20, ColorWhite)
	r.SetPivot(PivotLeft, PivotBottom)
	// Pivot (-1, -1) moves the quad center to (+w/2, +h/2): the bottom-left
	// corner lands on the node's position.
	x, y := LocalTransform(r).Apply(-20, -10)
	assert.InDelta(t, 0, x, epsilon)
	assert.InDelta(t, 0, y, epsilon)
}

func TestTransformPivotAppliedInScaledRotatedFrame(t *testing.T) {
	r := NewRectangle(10, 10, ColorWhite)
	r.SetPosition(50, 0)
	r.Rotation = 90
	r.SetScale(2, 2)
	r.SetPivot(PivotRight, PivotCenter)
	// Local pivot translate (-5, 0), scaled to (-10, 0), rotated to (0, -10).
	x, y := LocalTransform(r).Apply(0, 0)
	assert.InDelta(t, 50, x, epsilon)
	assert.InDelta(t, -10, y, epsilon)
}

func TestTransformBareNodeIgnoresPivot(t *testing.T) {
	n := NewNode("group")
	n.SetPivot(PivotRight, PivotTop)
	n.SetPosition(3, 4)
	assertMatrix(t, Matrix{1, 0, 0, 1, 3, 4}, LocalTransform(n))
}

func TestTransformNegativeScaleMirrors(t *testing.T) {
	n := NewNode("mirror")
	n.SetScale(-1, 1)
	x, _ := LocalTransform(n).Apply(5, 0)
	assert.InDelta(t, -5, x, epsilon)
	assert.False(t, math.IsNaN(x))
}
