package flicker

import "math"

const spriteKind = "sprite"

// DefaultFrameDuration is the time each frame is shown, in the caller's dt unit.
const DefaultFrameDuration = 100

var spriteSources = map[ShaderLanguage]programSource{
	GLSL100: {
		vertex: `
attribute vec2 a_position;
attribute vec2 a_texCoord;

uniform mat4 u_matrix;

varying vec2 v_texCoord;

void main() {
	gl_Position = u_matrix * vec4(a_position, 0.0, 1.0);
	v_texCoord = a_texCoord;
}
`,
		fragment: `
#ifdef GL_ES
precision mediump float;
#endif

varying vec2 v_texCoord;
uniform sampler2D u_texture;
uniform float u_opacity;

void main() {
	vec4 texColor = texture2D(u_texture, v_texCoord);
	gl_FragColor = vec4(texColor.rgb, texColor.a * u_opacity);
}
`,
	},
	// Ebitengine images are premultiplied, so the whole sample scales by
	// opacity. Linear is set by the backend from the bound texture's filter.
	Kage: {
		fragment: `//kage:unit pixels
package main

var Opacity float
var Linear float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	if Linear == 0 {
		return imageSrc0At(src) * Opacity
	}
	lo := imageSrc0Origin() + 0.5
	hi := imageSrc0Origin() + imageSrc0Size() - 0.5
	p := src - 0.5
	f := fract(p)
	base := floor(p) + 0.5
	c00 := imageSrc0At(clamp(base, lo, hi))
	c10 := imageSrc0At(clamp(base+vec2(1, 0), lo, hi))
	c01 := imageSrc0At(clamp(base+vec2(0, 1), lo, hi))
	c11 := imageSrc0At(clamp(base+vec2(1, 1), lo, hi))
	return mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y) * Opacity
}
`,
	},
}

// spriteProgram is the per-context bundle shared by every Sprite.
type spriteProgram struct {
	program  Program
	position int
	texCoord int
	matrix   UniformLocation
	texture  UniformLocation
	opacity  UniformLocation

	positions Buffer
	texCoords Buffer
}

func (p *spriteProgram) release(ctx Context) {
	deleteProgram(ctx, p.program)
	ctx.DeleteBuffer(p.positions)
	ctx.DeleteBuffer(p.texCoords)
}

func buildSpriteProgram(ctx Context) (*spriteProgram, error) {
	src, err := sourceFor(ctx, spriteKind, spriteSources)
	if err != nil {
		return nil, err
	}
	program, err := compileProgram(ctx, spriteKind, src)
	if err != nil {
		return nil, err
	}
	positions := ctx.CreateBuffer()
	ctx.BufferData(positions, quadPositions, StaticDraw)
	return &spriteProgram{
		program:   program,
		position:  ctx.AttribLocation(program, "a_position"),
		texCoord:  ctx.AttribLocation(program, "a_texCoord"),
		matrix:    ctx.UniformLocation(program, "u_matrix"),
		texture:   ctx.UniformLocation(program, "u_texture"),
		opacity:   ctx.UniformLocation(program, "u_opacity"),
		positions: positions,
		texCoords: ctx.CreateBuffer(),
	}, nil
}

var sprites = newProgramCache(spriteKind, buildSpriteProgram)

// UnloadSprites deletes the Sprite program and buffers created for ctx.
// Textures are not affected. No-op if none exist.
func UnloadSprites(ctx Context) {
	sprites.unload(ctx)
}

// Sprite draws one frame of a shared Texture and steps through its frames
// over time. The Texture is not owned by the Sprite.
type Sprite struct {
	Node
	Texture *Texture
	// FrameDuration is how long each frame is shown. Zero or negative stops
	// the animation.
	FrameDuration float64

	frame      int
	frameTimer float64
	texCoords  [12]float32
}

// SpriteOption configures a Sprite at construction.
type SpriteOption func(*Sprite)

// WithFrame sets the initial frame, wrapped into [0, Texture.Frames()).
func WithFrame(frame int) SpriteOption {
	return func(s *Sprite) {
		s.frame = frame
	}
}

// WithFrameDuration sets FrameDuration. Default DefaultFrameDuration.
func WithFrameDuration(d float64) SpriteOption {
	return func(s *Sprite) {
		s.FrameDuration = d
	}
}

// NewSprite creates a sprite showing frame 0 of texture unless WithFrame
// says otherwise.
func NewSprite(texture *Texture, opts ...SpriteOption) *Sprite {
	s := &Sprite{Texture: texture, FrameDuration: DefaultFrameDuration}
	nodeDefaults(&s.Node)
	for _, opt := range opts {
		opt(s)
	}
	s.frame = texture.normalizeFrame(s.frame)
	return s
}

// Frame returns the current frame index.
func (s *Sprite) Frame() int { return s.frame }

// SetFrame jumps to frame, wrapped into [0, Texture.Frames()). The frame
// timer is not reset.
func (s *Sprite) SetFrame(frame int) {
	s.frame = s.Texture.normalizeFrame(frame)
}

// FrameTimer returns the time accumulated toward the next frame.
func (s *Sprite) FrameTimer() float64 { return s.frameTimer }

// Size implements Drawable: the size of one texture frame.
func (s *Sprite) Size() (float64, float64) {
	return s.Texture.Size()
}

// Advance implements Drawable. Every whole FrameDuration in the accumulated
// time moves one frame forward, so a large dt may advance several frames.
// A timer that stops being finite is reset to zero.
func (s *Sprite) Advance(dt float64) {
	if s.FrameDuration <= 0 {
		return
	}
	s.frameTimer += dt
	if math.IsNaN(s.frameTimer) || math.IsInf(s.frameTimer, 0) {
		s.frameTimer = 0
		return
	}
	if s.frameTimer < s.FrameDuration {
		return
	}
	k := math.Floor(s.frameTimer / s.FrameDuration)
	s.frameTimer = math.Mod(s.frameTimer, s.FrameDuration)
	n := s.Texture.frames
	s.frame = (s.frame + int(math.Mod(k, float64(n)))) % n
}

// DrawSelf implements Drawable.
func (s *Sprite) DrawSelf(ctx Context, m Matrix, opacity float64) error {
	p, err := sprites.get(ctx)
	if err != nil {
		return err
	}
	tex, err := s.Texture.GLTexture(ctx)
	if err != nil {
		return err
	}

	ctx.UseProgram(p.program)
	ctx.BindTexture(0, tex)
	ctx.Uniform1i(p.texture, 0)
	ctx.VertexAttribPointer(p.position, p.positions, 2)

	ctx.BufferData(p.texCoords, s.frameTexCoords(), DynamicDraw)
	ctx.VertexAttribPointer(p.texCoord, p.texCoords, 2)

	w, h := s.Size()
	ctx.UniformMatrix4(p.matrix, m.Scale(w/2, h/2).Mat4())
	ctx.Uniform1f(p.opacity, float32(opacity))
	ctx.DrawArrays(0, quadVertexCount)
	return nil
}

// frameTexCoords fills the reused texCoord scratch buffer with the current
// frame's UVs, matching quadPositions vertex for vertex. V grows downward in
// the image while quad Y grows upward, so the bottom vertices take the
// rectangle's bottom edge.
func (s *Sprite) frameTexCoords() []float32 {
	r := s.Texture.Rect(s.frame)
	x0, x1 := float32(r.X), float32(r.X+r.Width)
	top, bottom := float32(r.Y), float32(r.Y+r.Height)
	s.texCoords = [12]float32{
		x0, bottom,
		x1, bottom,
		x0, top,
		x0, top,
		x1, bottom,
		x1, top,
	}
	return s.texCoords[:]
}
