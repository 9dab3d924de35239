package flicker

import "time"

// FrameStats summarizes the last Renderer.Render call.
type FrameStats struct {
	Nodes    int // drawables visited
	Failed   int // drawables whose own draw failed
	MaxDepth int // deepest level reached; the root is 1
	Elapsed  time.Duration
}

// Thresholds past which debug mode warns about a tree's shape.
const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugCheck warns once per node when the tree grows past the debug
// thresholds.
func (r *Renderer) debugCheck(n *Node, depth int) {
	if _, seen := r.warned[n]; seen {
		return
	}
	switch {
	case depth > debugMaxTreeDepth:
		Logger().Warn("tree depth exceeds threshold", "node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	case len(n.children) > debugMaxChildCount:
		Logger().Warn("node has too many children", "node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	default:
		return
	}
	r.warned[n] = struct{}{}
}

// debugLog reports frame stats at debug level.
func (r *Renderer) debugLog(s FrameStats) {
	Logger().Debug("frame",
		"nodes", s.Nodes,
		"failed", s.Failed,
		"depth", s.MaxDepth,
		"elapsed", s.Elapsed)
}
