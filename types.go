package flicker

// Color is an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Rect is an axis-aligned rectangle. For texture frames it is expressed in
// normalized UV units with the origin at the image's top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Pivot values for Node.PivotX and Node.PivotY, as fractions of half size.
// Y grows upward in clip space, so PivotBottom is negative.
const (
	PivotLeft   = -1.0
	PivotCenter = 0.0
	PivotRight  = 1.0
	PivotBottom = -1.0
	PivotTop    = 1.0
)
