// Package flicker is a retained-mode 2D scene graph drawn through a small
// GL-style [Context]. Backends live under flicker/backend: OpenGL 2.1 via
// go-gl and [Ebitengine] via Kage shaders.
//
// # Quick start
//
// Build a tree of drawables, then drive it once per frame through a
// [Renderer]:
//
//	ctx := ebitengine.New()
//	ctx.SetTarget(screen)
//	r := flicker.NewRenderer(ctx, ctx)
//
//	root := flicker.NewNode("root")
//	box := flicker.NewRectangle(80, 40, flicker.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	root.AddChild(box)
//
//	r.Update(root, dt)
//	if err := r.Render(root); err != nil {
//		// some nodes could not get their GPU resources
//	}
//
// # Scene graph
//
// Every drawable embeds a [Node] holding position, rotation in degrees,
// scale, pivot, layer and opacity. Children inherit their parent's transform
// and multiply its opacity. Siblings draw in ascending [Node.Layer] order,
// ties broken by insertion order, and a parent always draws before its
// children.
//
// Coordinates are device pixels with the origin at the surface center and
// Y growing upward. A node's pivot is expressed in half-sizes: (0, 0) is the
// center and [PivotLeft], [PivotBottom] place the bottom-left corner on the
// node's position.
//
// # Drawables
//
// [Rectangle] fills a solid color. [Sprite] shows one frame of a [Texture],
// an image split into a horizontal strip of equal frames, and advances
// through the frames every [Sprite.FrameDuration]. Custom drawables embed
// [Node] and implement [Drawable].
//
// # GPU resources
//
// Programs and buffers are created lazily the first time a kind of drawable
// is drawn on a Context and are shared by every instance on that Context.
// Textures are uploaded once per Context. Release them with
// [ReleaseContext], [Texture.Unload] and [TextureCache.ReleaseContext]
// before tearing a context down.
//
// [TextureCache] loads images by name through an [ImageLoader] and returns
// the same [*Texture] for concurrent loads of one source.
//
// # Tweens
//
// [TweenPosition], [TweenScale], [TweenRotation], [TweenOpacity] and
// [TweenColor] animate node fields through [gween].
//
// # Logging
//
// Nothing is logged by default. [SetLogger] installs a [log/slog] logger for
// shader failures and resource lifecycle messages.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package flicker
