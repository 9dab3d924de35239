package flicker

import "testing"

// setupBenchTree creates a root with n rectangles laid out on a grid.
func setupBenchTree(n int) *Node {
	root := NewNode("root")
	for i := 0; i < n; i++ {
		r := NewRectangle(32, 32, ColorWhite)
		r.X = float64(i%100) * 40
		r.Y = float64(i/100) * 40
		r.Layer = i % 3
		root.AddChild(r)
	}
	return root
}

func BenchmarkRender_10000Rectangles(b *testing.B) {
	root := setupBenchTree(10000)
	ctx := newFakeContext()
	r := NewRenderer(ctx, &fakeSurface{w: 1280, h: 720})

	_ = r.Render(root) // warmup: builds the program
	ctx.draws = ctx.draws[:0]

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = r.Render(root)
		ctx.draws = ctx.draws[:0]
	}
}

func BenchmarkUpdate_10000Sprites(b *testing.B) {
	tex := NewTexture(testImage(128, 32), WithFrames(4))
	root := NewNode("root")
	for i := 0; i < 10000; i++ {
		root.AddChild(NewSprite(tex))
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Update(root, 16)
	}
}

func BenchmarkTransform(b *testing.B) {
	r := NewRectangle(32, 32, ColorWhite)
	r.X, r.Y = 100, 50
	r.Rotation = 30
	r.SetScale(2, 2)
	parent := Identity().Scale(2.0/1280, 2.0/720)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Transform(r, parent)
	}
}
