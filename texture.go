package flicker

import (
	"fmt"
	"image"
	"sync"
)

// TextureOption configures a Texture at construction or load time.
type TextureOption func(*textureOptions)

type textureOptions struct {
	antialias bool
	frames    int
}

// WithFrames sets the number of equal-width horizontal frames in the image.
// Values below 1 are treated as 1.
func WithFrames(n int) TextureOption {
	return func(o *textureOptions) {
		o.frames = n
	}
}

// WithAntialias selects linear (true) or nearest (false) sampling.
func WithAntialias(enabled bool) TextureOption {
	return func(o *textureOptions) {
		o.antialias = enabled
	}
}

func applyTextureOptions(o textureOptions, opts []TextureOption) textureOptions {
	for _, opt := range opts {
		opt(&o)
	}
	if o.frames < 1 {
		o.frames = 1
	}
	return o
}

// Texture is an image divided into a horizontal strip of equally sized
// animation frames, uploaded lazily to each Context that draws it.
// The image is owned by the caller and must not change after the first upload.
type Texture struct {
	image     image.Image
	antialias bool
	frames    int

	mu      sync.Mutex
	handles map[Context]TextureID
}

// NewTexture wraps img. Defaults: one frame, nearest sampling.
func NewTexture(img image.Image, opts ...TextureOption) *Texture {
	o := applyTextureOptions(textureOptions{frames: 1}, opts)
	return &Texture{
		image:     img,
		antialias: o.antialias,
		frames:    o.frames,
		handles:   make(map[Context]TextureID),
	}
}

// Image returns the wrapped image.
func (t *Texture) Image() image.Image { return t.image }

// Frames returns the number of frames in the strip.
func (t *Texture) Frames() int { return t.frames }

// Antialias reports whether uploads use linear sampling.
func (t *Texture) Antialias() bool { return t.antialias }

// Size returns the size of one frame in pixels.
func (t *Texture) Size() (float64, float64) {
	b := t.image.Bounds()
	return float64(b.Dx()) / float64(t.frames), float64(b.Dy())
}

// normalizeFrame maps any frame index into [0, frames).
func (t *Texture) normalizeFrame(frame int) int {
	frame %= t.frames
	if frame < 0 {
		frame += t.frames
	}
	return frame
}

// Rect returns the UV rectangle of the given frame. Frames are addressed left
// to right and the index wraps modulo Frames.
func (t *Texture) Rect(frame int) Rect {
	frame = t.normalizeFrame(frame)
	n := float64(t.frames)
	return Rect{X: float64(frame) / n, Y: 0, Width: 1 / n, Height: 1}
}

// GLTexture returns the handle for this texture on ctx, uploading the image on
// first use with clamp-to-edge wrapping. The sampling filter is fixed by the
// antialias option at that first upload.
func (t *Texture) GLTexture(ctx Context) (TextureID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.handles[ctx]; ok {
		return id, nil
	}
	params := TextureParams{Filter: FilterNearest, Wrap: WrapClampToEdge}
	if t.antialias {
		params.Filter = FilterLinear
	}
	id, err := ctx.CreateTexture(t.image, params)
	if err != nil {
		Logger().Error("texture upload failed", "err", err)
		return 0, &GraphicsResourceError{Kind: "texture", Op: "upload", Err: fmt.Errorf("%w: %w", ErrTextureUpload, err)}
	}
	t.handles[ctx] = id
	Logger().Debug("texture uploaded", "id", id, "frames", t.frames)
	return id, nil
}

// Unload deletes the texture uploaded to ctx. No-op if none exists.
func (t *Texture) Unload(ctx Context) {
	t.mu.Lock()
	id, ok := t.handles[ctx]
	delete(t.handles, ctx)
	t.mu.Unlock()
	if !ok {
		return
	}
	ctx.DeleteTexture(id)
}

// Contexts returns the number of contexts this texture is uploaded to.
func (t *Texture) Contexts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handles)
}
