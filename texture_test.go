package flicker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureDefaults(t *testing.T) {
	tex := NewTexture(testImage(30, 10))
	assert.Equal(t, 1, tex.Frames())
	assert.False(t, tex.Antialias())
	w, h := tex.Size()
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 10.0, h)
}

func TestTextureFramesBelowOneClamped(t *testing.T) {
	tex := NewTexture(testImage(8, 8), WithFrames(0))
	assert.Equal(t, 1, tex.Frames())
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 1, Height: 1}, tex.Rect(3))
}

func TestTextureSizeIsOneFrame(t *testing.T) {
	tex := NewTexture(testImage(120, 40), WithFrames(4))
	w, h := tex.Size()
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 40.0, h)
}

func TestTextureRect(t *testing.T) {
	tex := NewTexture(testImage(64, 16), WithFrames(4))
	tests := []struct {
		frame int
		want  Rect
	}{
		{0, Rect{X: 0, Y: 0, Width: 0.25, Height: 1}},
		{1, Rect{X: 0.25, Y: 0, Width: 0.25, Height: 1}},
		{3, Rect{X: 0.75, Y: 0, Width: 0.25, Height: 1}},
		{5, Rect{X: 0.25, Y: 0, Width: 0.25, Height: 1}},
		{-1, Rect{X: 0.75, Y: 0, Width: 0.25, Height: 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tex.Rect(tt.frame), "frame %d", tt.frame)
	}
}

func TestGLTextureUploadedOncePerContext(t *testing.T) {
	tex := NewTexture(testImage(4, 4))
	ctxA := newFakeContext()
	ctxB := newFakeContext()

	idA, err := tex.GLTexture(ctxA)
	require.NoError(t, err)
	again, err := tex.GLTexture(ctxA)
	require.NoError(t, err)
	assert.Equal(t, idA, again)

	_, err = tex.GLTexture(ctxB)
	require.NoError(t, err)

	assert.Equal(t, 1, ctxA.counts.texturesCreated)
	assert.Equal(t, 1, ctxB.counts.texturesCreated)
	assert.Equal(t, 2, tex.Contexts())
}

func TestGLTextureFilterFollowsAntialias(t *testing.T) {
	ctx := newFakeContext()

	nearest, err := NewTexture(testImage(2, 2)).GLTexture(ctx)
	require.NoError(t, err)
	linear, err := NewTexture(testImage(2, 2), WithAntialias(true)).GLTexture(ctx)
	require.NoError(t, err)

	assert.Equal(t, TextureParams{Filter: FilterNearest, Wrap: WrapClampToEdge}, ctx.textures[nearest])
	assert.Equal(t, TextureParams{Filter: FilterLinear, Wrap: WrapClampToEdge}, ctx.textures[linear])
}

func TestTextureUnload(t *testing.T) {
	tex := NewTexture(testImage(4, 4))
	ctxA := newFakeContext()
	ctxB := newFakeContext()
	_, err := tex.GLTexture(ctxA)
	require.NoError(t, err)
	_, err = tex.GLTexture(ctxB)
	require.NoError(t, err)

	tex.Unload(ctxA)
	assert.Equal(t, 1, ctxA.counts.texturesDeleted)
	assert.Equal(t, 1, tex.Contexts())
	assert.Zero(t, ctxB.counts.texturesDeleted)

	tex.Unload(ctxA)
	assert.Equal(t, 1, ctxA.counts.texturesDeleted)
	assert.Zero(t, ctxA.counts.invalidDeletes)

	// Re-upload after unload creates a fresh handle.
	_, err = tex.GLTexture(ctxA)
	require.NoError(t, err)
	assert.Equal(t, 2, ctxA.counts.texturesCreated)
}
