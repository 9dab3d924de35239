// Package demo builds the scene shown by the example programs: a layered
// backdrop, a spinning group of rectangles and an animated sprite strip.
package demo

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io/fs"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/flicker"
	"github.com/phanxgames/flicker/internal/config"
)

// BuiltinSheet names the generated sprite strip used when no sheet path is
// configured.
const BuiltinSheet = "builtin:strip"

const (
	stripFrameSize = 32
	spinDegPerMs   = 0.09
)

var stripColors = []color.NRGBA{
	{R: 255, G: 79, B: 40, A: 255},
	{R: 220, G: 220, B: 79, A: 255},
	{R: 99, G: 181, B: 61, A: 255},
	{R: 40, G: 120, B: 255, A: 255},
	{R: 199, G: 160, B: 255, A: 255},
	{R: 255, G: 255, B: 199, A: 255},
}

// NewLoader serves BuiltinSheet from memory and everything else from fsys.
func NewLoader(fsys fs.FS, frames int) flicker.ImageLoader {
	files := flicker.FSLoader{FS: fsys}
	return flicker.ImageLoaderFunc(func(ctx context.Context, src string) (image.Image, error) {
		if src == BuiltinSheet {
			return Strip(frames), nil
		}
		return files.LoadImage(ctx, src)
	})
}

// Strip draws a horizontal strip of frames, each a differently colored
// square with a marker whose position advances frame by frame.
func Strip(frames int) *image.NRGBA {
	if frames < 1 {
		frames = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, frames*stripFrameSize, stripFrameSize))
	for f := 0; f < frames; f++ {
		c := stripColors[f%len(stripColors)]
		x0 := f * stripFrameSize
		marker := x0 + 4 + (f*(stripFrameSize-12))/frames
		for y := 0; y < stripFrameSize; y++ {
			for x := x0; x < x0+stripFrameSize; x++ {
				switch {
				case x == x0 || y == 0 || x == x0+stripFrameSize-1 || y == stripFrameSize-1:
					img.SetNRGBA(x, y, color.NRGBA{A: 255})
				case x >= marker && x < marker+4 && y >= 12 && y < 20:
					img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
				default:
					img.SetNRGBA(x, y, c)
				}
			}
		}
	}
	return img
}

// Scene is the demo scene graph plus the animations driving it.
type Scene struct {
	Root    *flicker.Node
	Spinner *flicker.Node
	Walker  *flicker.Sprite
	Pulse   *flicker.Rectangle

	fade *flicker.TweenGroup
	grow *flicker.TweenGroup
}

// Build loads the configured sheet through cache and assembles the scene.
func Build(ctx context.Context, cfg config.Config, cache *flicker.TextureCache) (*Scene, error) {
	src := cfg.Sheet.Path
	if src == "" {
		src = BuiltinSheet
	}
	tex, err := cache.Load(ctx, src,
		flicker.WithFrames(cfg.Sheet.Frames),
		flicker.WithAntialias(cfg.Sheet.Antialias))
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}

	s := &Scene{Root: flicker.NewNode("root")}
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)

	backdrop := flicker.NewRectangle(w*0.9, h*0.9, flicker.Color{R: 0.12, G: 0.12, B: 0.16, A: 1})
	backdrop.Name = "backdrop"
	backdrop.SetLayer(-1)
	s.Root.AddChild(backdrop)

	s.Spinner = flicker.NewNode("spinner")
	s.Spinner.SetPosition(-w/4, 0)
	s.Root.AddChild(s.Spinner)
	for i := 0; i < 4; i++ {
		arm := flicker.NewRectangle(80, 16, flicker.Color{R: 1, G: 0.3 + 0.15*float64(i), B: 0.2, A: 1})
		arm.Name = fmt.Sprintf("arm%d", i)
		arm.SetPivot(flicker.PivotLeft, flicker.PivotCenter)
		arm.Rotation = float64(i) * 90
		arm.Opacity = 0.9
		s.Spinner.AddChild(arm)
	}

	s.Walker = flicker.NewSprite(tex, flicker.WithFrameDuration(cfg.Sheet.FrameDuration))
	s.Walker.Name = "walker"
	s.Walker.SetPosition(w/4, 0)
	s.Walker.SetScale(3, 3)
	s.Walker.SetLayer(1)
	s.Root.AddChild(s.Walker)

	s.Pulse = flicker.NewRectangle(60, 60, flicker.Color{R: 0.3, G: 0.8, B: 1, A: 1})
	s.Pulse.Name = "pulse"
	s.Pulse.SetPosition(0, -h/4)
	s.Root.AddChild(s.Pulse)

	s.fade = flicker.TweenOpacity(s.Pulse, 0.2, 1200, ease.InOutSine)
	s.grow = flicker.TweenScale(s.Pulse, 1.5, 1.5, 1200, ease.OutBack)
	return s, nil
}

// Update advances the scene by dt milliseconds.
func (s *Scene) Update(dt float64) {
	s.Spinner.Rotation += spinDegPerMs * dt
	if s.Spinner.Rotation >= 360 {
		s.Spinner.Rotation -= 360
	}
	s.fade.Update(float32(dt))
	s.grow.Update(float32(dt))
	if s.fade.Done && s.grow.Done {
		s.fade.Reset()
		s.grow.Reset()
	}
	flicker.Update(s.Root, dt)
}
