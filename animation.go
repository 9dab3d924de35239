package flicker

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a drawable simultaneously.
// Create one via the convenience constructors and call Update(dt) each frame
// with the same dt passed to Renderer.Update; durations use that unit too.
// Nothing drives tweens automatically.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt and writes values to the target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start and clears Done.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
		val, _ := g.tweens[i].Set(0)
		*g.fields[i] = float64(val)
	}
	g.Done = false
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates X and Y to (toX, toY).
func TweenPosition(d Drawable, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := d.Base()
	g := &TweenGroup{}
	g.add(&n.X, toX, duration, fn)
	g.add(&n.Y, toY, duration, fn)
	return g
}

// TweenScale animates ScaleX and ScaleY to (toSX, toSY).
func TweenScale(d Drawable, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := d.Base()
	g := &TweenGroup{}
	g.add(&n.ScaleX, toSX, duration, fn)
	g.add(&n.ScaleY, toSY, duration, fn)
	return g
}

// TweenRotation animates Rotation, in degrees, to the target value.
func TweenRotation(d Drawable, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&d.Base().Rotation, to, duration, fn)
	return g
}

// TweenOpacity animates Opacity to the target value.
func TweenOpacity(d Drawable, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&d.Base().Opacity, to, duration, fn)
	return g
}

// TweenColor animates all four components of a rectangle's Color.
func TweenColor(r *Rectangle, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&r.Color.R, to.R, duration, fn)
	g.add(&r.Color.G, to.G, duration, fn)
	g.add(&r.Color.B, to.B, duration, fn)
	g.add(&r.Color.A, to.A, duration, fn)
	return g
}
