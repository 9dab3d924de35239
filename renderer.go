package flicker

import (
	"errors"
	"time"
)

// Surface is the drawing area a Renderer targets, such as a window or canvas.
type Surface interface {
	// Size returns the drawable size in device pixels.
	Size() (width, height int)
}

// ResizeNotifier is implemented by surfaces that report size changes.
// Renderer subscribes on construction to keep the viewport in sync.
type ResizeNotifier interface {
	OnResize(fn func(width, height int))
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	antialias bool
	debug     bool
}

// WithRendererAntialias toggles edge antialiasing on contexts that support it.
// Default true.
func WithRendererAntialias(enabled bool) RendererOption {
	return func(o *rendererOptions) {
		o.antialias = enabled
	}
}

// WithDebug enables per-frame stats logging and warnings about very deep or
// very wide trees. Messages go to Logger at debug and warn level.
func WithDebug(enabled bool) RendererOption {
	return func(o *rendererOptions) {
		o.debug = enabled
	}
}

// Renderer binds one Context to one Surface and drives a scene root through
// it once per frame. A scene tree may be shared by several Renderers; GPU
// resources are kept per Context.
type Renderer struct {
	ctx       Context
	surface   Surface
	antialias bool
	debug     bool

	stats  FrameStats
	warned map[*Node]struct{}
}

// NewRenderer configures ctx for drawing to surface: source-over alpha
// blending and a viewport covering the whole surface.
func NewRenderer(ctx Context, surface Surface, opts ...RendererOption) *Renderer {
	o := rendererOptions{antialias: true}
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{ctx: ctx, surface: surface, antialias: o.antialias, debug: o.debug}
	if r.debug {
		r.warned = make(map[*Node]struct{})
	}

	ctx.EnableBlend(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	if aa, ok := ctx.(Antialiaser); ok {
		aa.SetAntialias(o.antialias)
	}
	r.Resize(surface.Size())
	if rn, ok := surface.(ResizeNotifier); ok {
		rn.OnResize(r.Resize)
	}
	return r
}

// Context returns the bound graphics context.
func (r *Renderer) Context() Context { return r.ctx }

// Antialias reports the configured antialias setting.
func (r *Renderer) Antialias() bool { return r.antialias }

// Resize sets the viewport to width by height pixels.
func (r *Renderer) Resize(width, height int) {
	r.ctx.Viewport(0, 0, width, height)
}

// Update advances root and its descendants by dt.
func (r *Renderer) Update(root Drawable, dt float64) {
	Update(root, dt)
}

// Render draws root and its descendants. Drawable coordinates are in device
// pixels with (0, 0) at the surface center and Y growing upward. Nodes whose
// GPU resources fail to build are skipped and reported in the returned error.
func (r *Renderer) Render(root Drawable) error {
	m, ok := r.RootTransform()
	if !ok {
		r.stats = FrameStats{}
		return nil
	}
	start := time.Now()
	var f frame
	if r.debug {
		f.visit = r.debugCheck
	}
	f.render(r.ctx, root, m, 1, 1)
	f.stats.Elapsed = time.Since(start)
	r.stats = f.stats
	if r.debug {
		r.debugLog(f.stats)
	}
	return errors.Join(f.errs...)
}

// Stats returns the results of the last Render call.
func (r *Renderer) Stats() FrameStats { return r.stats }

// RootTransform returns the pixel-to-clip-space transform for the current
// surface size. ok is false when the surface has no area.
func (r *Renderer) RootTransform() (m Matrix, ok bool) {
	w, h := r.surface.Size()
	if w <= 0 || h <= 0 {
		return Matrix{}, false
	}
	return Identity().Scale(2/float64(w), 2/float64(h)), true
}

// Close releases the Rectangle and Sprite programs created on the context.
// Textures belong to their TextureCache or owner and are not released.
func (r *Renderer) Close() {
	ReleaseContext(r.ctx)
}
