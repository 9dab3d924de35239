//go:build !js

package opengl

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/stretchr/testify/assert"

	"github.com/phanxgames/flicker"
)

func TestToNRGBAUnpremultipliesAndRebases(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.SetRGBA(5, 5, color.RGBA{R: 64, G: 0, B: 0, A: 128})
	src.SetRGBA(6, 5, color.RGBA{R: 0, G: 255, B: 0, A: 255})

	got := toNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Rect)
	assert.Equal(t, color.NRGBA{R: 127, G: 0, B: 0, A: 128}, got.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 0, A: 255}, got.NRGBAAt(1, 0))
}

func TestToNRGBAReusesPackedImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	assert.Same(t, src, toNRGBA(src))

	sub := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	assert.NotSame(t, sub, toNRGBA(sub))
}

func TestTrimLog(t *testing.T) {
	assert.Equal(t, "0:1: error", trimLog("0:1: error\n\x00\x00"))
	assert.Equal(t, "", trimLog("\x00"))
}

func TestEnumMapping(t *testing.T) {
	assert.Equal(t, uint32(gl.VERTEX_SHADER), shaderType(flicker.VertexShader))
	assert.Equal(t, uint32(gl.FRAGMENT_SHADER), shaderType(flicker.FragmentShader))

	assert.Equal(t, uint32(gl.STATIC_DRAW), bufferUsage(flicker.StaticDraw))
	assert.Equal(t, uint32(gl.DYNAMIC_DRAW), bufferUsage(flicker.DynamicDraw))

	assert.Equal(t, int32(gl.NEAREST), textureFilter(flicker.FilterNearest))
	assert.Equal(t, int32(gl.LINEAR), textureFilter(flicker.FilterLinear))
	assert.Equal(t, int32(gl.CLAMP_TO_EDGE), textureWrap(flicker.WrapClampToEdge))

	assert.Equal(t, uint32(gl.ZERO), blendFactor(flicker.BlendZero))
	assert.Equal(t, uint32(gl.ONE), blendFactor(flicker.BlendOne))
	assert.Equal(t, uint32(gl.SRC_ALPHA), blendFactor(flicker.BlendSrcAlpha))
	assert.Equal(t, uint32(gl.ONE_MINUS_SRC_ALPHA), blendFactor(flicker.BlendOneMinusSrcAlpha))
}

func TestDrainErrorsStopsAtNoError(t *testing.T) {
	pending := []uint32{gl.INVALID_ENUM, gl.INVALID_OPERATION}
	n := drainErrorsFrom(func() uint32 {
		if len(pending) == 0 {
			return gl.NO_ERROR
		}
		code := pending[0]
		pending = pending[1:]
		return code
	})
	assert.Equal(t, 2, n)
	assert.Empty(t, pending)
}

func TestDrainErrorsIsBounded(t *testing.T) {
	calls := 0
	n := drainErrorsFrom(func() uint32 {
		calls++
		return gl.OUT_OF_MEMORY
	})
	assert.Equal(t, maxPendingErrors, n)
	assert.Equal(t, maxPendingErrors, calls)
}
