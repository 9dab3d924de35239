package flicker

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io/fs"
	"sync"

	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
	"golang.org/x/sync/singleflight"
)

// ImageLoader fetches and decodes the image behind a source identifier.
// The context passed in carries the caller's values but not its
// cancellation, since one load serves every concurrent caller. Timeouts are
// the loader's concern.
type ImageLoader interface {
	LoadImage(ctx context.Context, src string) (image.Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, src string) (image.Image, error)

// LoadImage implements ImageLoader.
func (f ImageLoaderFunc) LoadImage(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// FSLoader loads images from a file system. PNG, JPEG, GIF, BMP, TIFF and
// WebP are recognized.
type FSLoader struct {
	FS fs.FS
}

// LoadImage implements ImageLoader.
func (l FSLoader) LoadImage(ctx context.Context, src string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := l.FS.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}

// TextureCache deduplicates image loads and Texture instances by source
// identifier. Create one per application (or per test) and pass it wherever
// textures are loaded; it is safe for concurrent use.
type TextureCache struct {
	loader ImageLoader
	group  singleflight.Group

	mu       sync.Mutex
	images   map[string]image.Image
	textures map[string]*Texture
}

// NewTextureCache creates an empty cache backed by loader.
func NewTextureCache(loader ImageLoader) *TextureCache {
	return &TextureCache{
		loader:   loader,
		images:   make(map[string]image.Image),
		textures: make(map[string]*Texture),
	}
}

// Load returns the Texture for src, loading and decoding the image on first
// use. Concurrent loads of the same src share one decode and all receive the
// same *Texture. Options only apply when the Texture is first created.
// Defaults: one frame, linear sampling.
func (c *TextureCache) Load(ctx context.Context, src string, opts ...TextureOption) (*Texture, error) {
	img, err := c.image(ctx, src)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.textures[src]; ok {
		return t, nil
	}
	o := applyTextureOptions(textureOptions{antialias: true, frames: 1}, opts)
	t := NewTexture(img, WithFrames(o.frames), WithAntialias(o.antialias))
	c.textures[src] = t
	return t, nil
}

// image resolves the decoded image for src, collapsing concurrent loads.
// The shared load runs detached from any one caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (c *TextureCache) image(ctx context.Context, src string) (image.Image, error) {
	c.mu.Lock()
	img, ok := c.images[src]
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(src, func() (any, error) {
		img, err := c.loader.LoadImage(shared, src)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.images[src] = img
		c.mu.Unlock()
		return img, nil
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("flicker: load texture %q: %w", src, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("flicker: load texture %q: %w", src, res.Err)
		}
		return res.Val.(image.Image), nil
	}
}

// Get returns the cached Texture for src, if it has been loaded.
func (c *TextureCache) Get(src string) (*Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.textures[src]
	return t, ok
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}

// ReleaseContext unloads every cached texture from gctx.
func (c *TextureCache) ReleaseContext(gctx Context) {
	c.mu.Lock()
	textures := make([]*Texture, 0, len(c.textures))
	for _, t := range c.textures {
		textures = append(textures, t)
	}
	c.mu.Unlock()
	for _, t := range textures {
		t.Unload(gctx)
	}
}
