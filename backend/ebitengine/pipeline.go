package ebitengine

import (
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/flicker"
)

// kageUniformName maps a GLSL-style uniform name to its Kage variable:
// u_opacity becomes Opacity. u_matrix and samplers are consumed by the
// backend itself and are not forwarded.
func kageUniformName(name string) (string, bool) {
	switch name {
	case "u_matrix", "u_texture":
		return "", false
	}
	name = strings.TrimPrefix(name, "u_")
	if name == "" {
		return "", false
	}
	return strings.ToUpper(name[:1]) + name[1:], true
}

// kageUniforms rebuilds p's uniform map for the next draw. Linear tells the
// fragment shader whether the bound texture samples bilinearly.
func kageUniforms(p *programEntry, linear bool) map[string]any {
	clear(p.uniforms)
	for loc, v := range p.values {
		if int(loc) >= len(p.names) {
			continue
		}
		name, ok := kageUniformName(p.names[loc])
		if !ok {
			continue
		}
		switch v.(type) {
		case float32, []float32:
			p.uniforms[name] = v
		}
	}
	if linear {
		p.uniforms["Linear"] = float32(1)
	} else {
		p.uniforms["Linear"] = float32(0)
	}
	return p.uniforms
}

func matrixUniform(p *programEntry) mgl32.Mat4 {
	if loc, ok := p.locs["u_matrix"]; ok {
		if m, ok := p.values[loc].(mgl32.Mat4); ok {
			return m
		}
	}
	return mgl32.Ident4()
}

// appendVertices runs the fixed vertex stage: each position is mapped through
// m into clip space, then through the viewport into target pixels with y
// pointing down. UVs are scaled to source pixels.
func appendVertices(dst []ebiten.Vertex, pos, uv []float32, first, count int, m mgl32.Mat4, vp, src image.Rectangle) []ebiten.Vertex {
	for i := first; i < first+count; i++ {
		if 2*i+1 >= len(pos) {
			break
		}
		clip := m.Mul4x1(mgl32.Vec4{pos[2*i], pos[2*i+1], 0, 1})
		v := ebiten.Vertex{
			DstX:   float32(vp.Min.X) + (clip.X()+1)/2*float32(vp.Dx()),
			DstY:   float32(vp.Min.Y) + (1-clip.Y())/2*float32(vp.Dy()),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
		if 2*i+1 < len(uv) {
			v.SrcX = float32(src.Min.X) + uv[2*i]*float32(src.Dx())
			v.SrcY = float32(src.Min.Y) + uv[2*i+1]*float32(src.Dy())
		}
		dst = append(dst, v)
	}
	return dst
}

func appendIndices(dst []uint16, n int) []uint16 {
	for i := 0; i < n; i++ {
		dst = append(dst, uint16(i))
	}
	return dst
}

// blendFor maps straight-alpha blend factors onto Ebitengine's premultiplied
// pipeline. Kage fragments already multiply color by alpha, so a SrcAlpha
// source factor becomes One.
func blendFor(src, dst flicker.BlendFactor) ebiten.Blend {
	s := blendFactor(src)
	if src == flicker.BlendSrcAlpha {
		s = ebiten.BlendFactorOne
	}
	d := blendFactor(dst)
	return ebiten.Blend{
		BlendFactorSourceRGB:        s,
		BlendFactorSourceAlpha:      s,
		BlendFactorDestinationRGB:   d,
		BlendFactorDestinationAlpha: d,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
}

func blendFactor(f flicker.BlendFactor) ebiten.BlendFactor {
	switch f {
	case flicker.BlendZero:
		return ebiten.BlendFactorZero
	case flicker.BlendSrcAlpha:
		return ebiten.BlendFactorSourceAlpha
	case flicker.BlendOneMinusSrcAlpha:
		return ebiten.BlendFactorOneMinusSourceAlpha
	default:
		return ebiten.BlendFactorOne
	}
}
