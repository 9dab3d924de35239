//go:build !js

package opengl

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/phanxgames/flicker"
)

func shaderType(stage flicker.ShaderStage) uint32 {
	if stage == flicker.FragmentShader {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func bufferUsage(u flicker.BufferUsage) uint32 {
	if u == flicker.DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func textureFilter(f flicker.TextureFilter) int32 {
	if f == flicker.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func textureWrap(flicker.TextureWrap) int32 {
	return gl.CLAMP_TO_EDGE
}

func blendFactor(f flicker.BlendFactor) uint32 {
	switch f {
	case flicker.BlendZero:
		return gl.ZERO
	case flicker.BlendOne:
		return gl.ONE
	case flicker.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case flicker.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ONE
	}
}
