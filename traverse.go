package flicker

import "errors"

// Update advances d and then its children, in Layer order, by dt.
// The unit of dt is whatever the caller uses for Sprite.FrameDuration.
func Update(d Drawable, dt float64) {
	d.Advance(dt)
	for _, child := range d.Base().orderedChildren() {
		Update(child, dt)
	}
}

// Render draws d and then its children, in Layer order, composing each node's
// transform onto parent and multiplying opacity down the tree. Effective
// opacity is recomputed on every call; nothing is cached between frames.
//
// A node whose GPU resources cannot be created is skipped, but its children
// are still rendered. All such failures are joined into the returned error.
func Render(ctx Context, d Drawable, parent Matrix, opacity float64) error {
	var f frame
	f.render(ctx, d, parent, opacity, 1)
	return errors.Join(f.errs...)
}

// frame accumulates the results of one traversal.
type frame struct {
	errs  []error
	stats FrameStats
	// visit, when set, is called for every node with its depth (root is 1).
	visit func(n *Node, depth int)
}

func (f *frame) render(ctx Context, d Drawable, parent Matrix, opacity float64, depth int) {
	n := d.Base()
	f.stats.Nodes++
	if depth > f.stats.MaxDepth {
		f.stats.MaxDepth = depth
	}
	if f.visit != nil {
		f.visit(n, depth)
	}
	m := Transform(d, parent)
	alpha := opacity * n.Opacity
	if err := d.DrawSelf(ctx, m, alpha); err != nil {
		f.stats.Failed++
		f.errs = append(f.errs, err)
	}
	for _, child := range n.orderedChildren() {
		f.render(ctx, child, m, alpha, depth+1)
	}
}
