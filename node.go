package flicker

// Drawable is a scene graph element. Concrete drawables embed a Node, which
// provides the tree and transform state, and override Size, Advance and
// DrawSelf as needed. Traversal is done by the package-level Update and
// Render functions, which always draw a node before its children.
type Drawable interface {
	// Base returns the embedded node state.
	Base() *Node
	// Size returns the visual extent in local units, used for pivoting.
	Size() (width, height float64)
	// Advance runs per-node timing logic before children are updated.
	Advance(dt float64)
	// DrawSelf draws only this node using the composed transform and the
	// effective opacity. It must not recurse into children.
	DrawSelf(ctx Context, m Matrix, opacity float64) error
}

// Node is the base drawable: transform state plus an ordered set of children.
// A bare Node draws nothing and is useful as a group container.
//
// Nodes are not safe for concurrent use. Structural edits (AddChild,
// RemoveChild) must not overlap an Update or Render of the same subtree.
type Node struct {
	Name string

	X, Y     float64
	Rotation float64 // degrees
	ScaleX   float64
	ScaleY   float64
	// PivotX and PivotY anchor the node within its extent as a fraction of
	// half its size: -1 is the left/bottom edge, 0 the center, 1 the right/top.
	PivotX float64
	PivotY float64

	// Layer orders siblings for update and paint, lowest first.
	Layer int
	// Opacity multiplies down the tree. It is not clamped.
	Opacity float64

	parent   *Node
	children []Drawable
	// ordered is the layer-sorted traversal snapshot, reused across frames.
	ordered []Drawable
}

// NewNode creates a container node with default transform state.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ScaleX = 1
	n.ScaleY = 1
	n.Opacity = 1
	n.PivotX = PivotCenter
	n.PivotY = PivotCenter
}

// Base implements Drawable.
func (n *Node) Base() *Node { return n }

// Size implements Drawable. A bare node has no extent.
func (n *Node) Size() (float64, float64) { return 0, 0 }

// Advance implements Drawable. A bare node has no timing logic.
func (n *Node) Advance(float64) {}

// DrawSelf implements Drawable. A bare node draws nothing.
func (n *Node) DrawSelf(Context, Matrix, float64) error { return nil }

// SetPosition sets X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetPivot sets PivotX and PivotY.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
}

// SetLayer sets the node's Layer. Ordering takes effect on the next traversal.
func (n *Node) SetLayer(layer int) {
	n.Layer = layer
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child Drawable) {
	if child == nil || child.Base() == nil {
		panic("flicker: cannot add nil child")
	}
	c := child.Base()
	if isAncestor(c, n) {
		panic("flicker: adding child would create a cycle")
	}
	if c.parent != nil {
		c.parent.removeChildByPtr(c)
	}
	c.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node. Removing a node that is not a
// child of n is a no-op.
func (n *Node) RemoveChild(child Drawable) {
	if child == nil || child.Base() == nil {
		return
	}
	if n.removeChildByPtr(child.Base()) {
		child.Base().parent = nil
	}
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.removeChildByPtr(n)
	n.parent = nil
}

// RemoveChildren detaches all children from this node.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Base().parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:0]
	clear(n.ordered)
	n.ordered = n.ordered[:0]
}

// Parent returns the node this node is attached to, or nil. For concrete
// drawables this is the parent's embedded Node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children in insertion order. The returned slice MUST
// NOT be mutated by the caller.
func (n *Node) Children() []Drawable {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing its parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) bool {
	for i, c := range n.children {
		if c.Base() == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return true
		}
	}
	return false
}

// orderedChildren rebuilds the Layer-sorted traversal snapshot.
// Uses insertion sort from insertion order: stable, so equal layers keep the
// order they were added in, and O(n) when already sorted.
func (n *Node) orderedChildren() []Drawable {
	nc := len(n.children)
	if cap(n.ordered) < nc {
		n.ordered = make([]Drawable, nc)
	}
	n.ordered = n.ordered[:nc]
	copy(n.ordered, n.children)
	for i := 1; i < nc; i++ {
		key := n.ordered[i]
		layer := key.Base().Layer
		j := i - 1
		for j >= 0 && n.ordered[j].Base().Layer > layer {
			n.ordered[j+1] = n.ordered[j]
			j--
		}
		n.ordered[j+1] = key
	}
	return n.ordered
}
