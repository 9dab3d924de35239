package flicker

import "sync"

// bundle is a per-context set of GPU handles for one drawable kind. release
// must delete exactly the handles the bundle owns.
type bundle interface {
	release(ctx Context)
}

// bundleResult is either a ready bundle or the error that prevented building
// it. Failures are remembered so a broken shader is reported once per context
// rather than rebuilt and logged on every frame.
type bundleResult[B bundle] struct {
	bundle B
	err    error
}

// programCache is an explicit registry from Context to a lazily built bundle.
// Entries live until unload is called for their context.
type programCache[B bundle] struct {
	kind  string
	build func(ctx Context) (B, error)

	mu      sync.Mutex
	entries map[Context]bundleResult[B]
}

func newProgramCache[B bundle](kind string, build func(Context) (B, error)) *programCache[B] {
	return &programCache[B]{
		kind:    kind,
		build:   build,
		entries: make(map[Context]bundleResult[B]),
	}
}

// get returns the bundle for ctx, building it on first use. A failed build
// is returned as a *GraphicsResourceError on this and every later call until
// the context's entry is unloaded.
func (c *programCache[B]) get(ctx Context) (B, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.entries[ctx]; ok {
		return r.bundle, r.err
	}
	b, err := c.build(ctx)
	if err != nil {
		err = &GraphicsResourceError{Kind: c.kind, Op: "program", Err: err}
	} else {
		Logger().Debug("program created", "kind", c.kind)
	}
	c.entries[ctx] = bundleResult[B]{bundle: b, err: err}
	return b, err
}

// unload releases the bundle cached for ctx and evicts the entry. No-op if
// nothing is cached. A remembered failure is simply forgotten.
func (c *programCache[B]) unload(ctx Context) {
	c.mu.Lock()
	r, ok := c.entries[ctx]
	delete(c.entries, ctx)
	c.mu.Unlock()
	if !ok || r.err != nil {
		return
	}
	r.bundle.release(ctx)
	Logger().Debug("program released", "kind", c.kind)
}

// ReleaseContext unloads every drawable kind's program bundle for ctx. Call it
// before tearing down a graphics context; textures are released separately
// through Texture.Unload or TextureCache.ReleaseContext.
func ReleaseContext(ctx Context) {
	UnloadRectangles(ctx)
	UnloadSprites(ctx)
}
