// Package ebitengine implements flicker.Context on top of Ebitengine. Fragment
// programs are Kage shaders; the vertex stage is fixed and runs on the CPU,
// mapping each vertex through the program's u_matrix uniform into the target
// image.
//
// A Context is also the flicker.Surface for its target, so a typical game
// calls SetTarget(screen) at the top of Draw and renders with
// flicker.NewRenderer(ctx, ctx).
package ebitengine

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/flicker"
)

// Attribute slots understood by the fixed vertex stage.
const (
	attribPosition = 0
	attribTexCoord = 1
)

// maxTextureUnits matches the number of source images a Kage shader can read.
const maxTextureUnits = 4

// ErrVertexSource is returned for a non-empty vertex shader source.
var ErrVertexSource = errors.New("ebitengine: vertex stage is fixed; source must be empty")

type shaderEntry struct {
	stage  flicker.ShaderStage
	shader *ebiten.Shader
}

type programEntry struct {
	shader   *ebiten.Shader
	locs     map[string]flicker.UniformLocation
	names    []string
	values   map[flicker.UniformLocation]any
	uniforms map[string]any
}

type textureEntry struct {
	image  *ebiten.Image
	filter flicker.TextureFilter
}

// Context records GL-style state and turns each DrawArrays into one
// DrawTrianglesShader call on the current target.
type Context struct {
	target   *ebiten.Image
	onResize func(w, h int)
	width    int
	height   int

	next     uint32
	current  flicker.Program
	shaders  map[flicker.Shader]shaderEntry
	programs map[flicker.Program]*programEntry
	buffers  map[flicker.Buffer][]float32
	textures map[flicker.TextureID]textureEntry
	attribs  [2]flicker.Buffer
	bound    [maxTextureUnits]flicker.TextureID

	blend     ebiten.Blend
	antialias bool
	viewport  image.Rectangle

	vertices []ebiten.Vertex
	indices  []uint16
}

// New returns a Context with no target. Call SetTarget before rendering.
func New() *Context {
	return &Context{
		shaders:  make(map[flicker.Shader]shaderEntry),
		programs: make(map[flicker.Program]*programEntry),
		buffers:  make(map[flicker.Buffer][]float32),
		textures: make(map[flicker.TextureID]textureEntry),
		blend:    ebiten.BlendSourceOver,
	}
}

var (
	_ flicker.Context        = (*Context)(nil)
	_ flicker.Antialiaser    = (*Context)(nil)
	_ flicker.Surface        = (*Context)(nil)
	_ flicker.ResizeNotifier = (*Context)(nil)
)

// SetTarget selects the image subsequent draws land on. A change in size is
// reported to the OnResize subscriber.
func (c *Context) SetTarget(img *ebiten.Image) {
	c.target = img
	w, h := 0, 0
	if img != nil {
		b := img.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	if c.onResize != nil {
		c.onResize(w, h)
	}
}

// Target returns the current target image.
func (c *Context) Target() *ebiten.Image { return c.target }

// Size implements flicker.Surface.
func (c *Context) Size() (int, int) { return c.width, c.height }

// OnResize implements flicker.ResizeNotifier.
func (c *Context) OnResize(fn func(w, h int)) { c.onResize = fn }

func (c *Context) id() uint32 {
	c.next++
	return c.next
}

// ShaderLanguage implements flicker.Context.
func (c *Context) ShaderLanguage() flicker.ShaderLanguage { return flicker.Kage }

// CreateShader implements flicker.Context. Vertex shaders must be empty;
// fragment shaders are compiled as Kage.
func (c *Context) CreateShader(stage flicker.ShaderStage, source string) (flicker.Shader, error) {
	e := shaderEntry{stage: stage}
	switch stage {
	case flicker.VertexShader:
		if source != "" {
			return 0, ErrVertexSource
		}
	case flicker.FragmentShader:
		s, err := ebiten.NewShader([]byte(source))
		if err != nil {
			return 0, err
		}
		e.shader = s
	default:
		return 0, fmt.Errorf("ebitengine: unknown shader stage %s", stage)
	}
	h := flicker.Shader(c.id())
	c.shaders[h] = e
	return h, nil
}

// DeleteShader implements flicker.Context. The compiled Kage shader stays
// alive while a program links it.
func (c *Context) DeleteShader(s flicker.Shader) {
	delete(c.shaders, s)
}

// CreateProgram implements flicker.Context.
func (c *Context) CreateProgram(vertex, fragment flicker.Shader) (flicker.Program, error) {
	vs, ok := c.shaders[vertex]
	if !ok || vs.stage != flicker.VertexShader {
		return 0, fmt.Errorf("ebitengine: %d is not a vertex shader", vertex)
	}
	fs, ok := c.shaders[fragment]
	if !ok || fs.stage != flicker.FragmentShader {
		return 0, fmt.Errorf("ebitengine: %d is not a fragment shader", fragment)
	}
	p := flicker.Program(c.id())
	c.programs[p] = &programEntry{
		shader:   fs.shader,
		locs:     make(map[string]flicker.UniformLocation),
		values:   make(map[flicker.UniformLocation]any),
		uniforms: make(map[string]any),
	}
	return p, nil
}

// DeleteProgram implements flicker.Context.
func (c *Context) DeleteProgram(p flicker.Program) {
	e, ok := c.programs[p]
	if !ok {
		return
	}
	delete(c.programs, p)
	if c.current == p {
		c.current = 0
	}
	e.shader.Deallocate()
}

// UseProgram implements flicker.Context.
func (c *Context) UseProgram(p flicker.Program) { c.current = p }

// CurrentProgram implements flicker.Context.
func (c *Context) CurrentProgram() flicker.Program { return c.current }

// AttribLocation implements flicker.Context.
func (c *Context) AttribLocation(_ flicker.Program, name string) int {
	switch name {
	case "a_position":
		return attribPosition
	case "a_texCoord":
		return attribTexCoord
	default:
		return -1
	}
}

// UniformLocation implements flicker.Context.
func (c *Context) UniformLocation(p flicker.Program, name string) flicker.UniformLocation {
	e, ok := c.programs[p]
	if !ok {
		return -1
	}
	if loc, ok := e.locs[name]; ok {
		return loc
	}
	loc := flicker.UniformLocation(len(e.names))
	e.locs[name] = loc
	e.names = append(e.names, name)
	return loc
}

// CreateBuffer implements flicker.Context.
func (c *Context) CreateBuffer() flicker.Buffer {
	b := flicker.Buffer(c.id())
	c.buffers[b] = nil
	return b
}

// DeleteBuffer implements flicker.Context.
func (c *Context) DeleteBuffer(b flicker.Buffer) {
	delete(c.buffers, b)
	for i := range c.attribs {
		if c.attribs[i] == b {
			c.attribs[i] = 0
		}
	}
}

// BufferData implements flicker.Context.
func (c *Context) BufferData(b flicker.Buffer, data []float32, _ flicker.BufferUsage) {
	if _, ok := c.buffers[b]; !ok {
		return
	}
	c.buffers[b] = append(c.buffers[b][:0], data...)
}

// VertexAttribPointer implements flicker.Context. Only two-component
// position and texCoord attributes are supported.
func (c *Context) VertexAttribPointer(loc int, b flicker.Buffer, size int) {
	if loc < 0 || loc >= len(c.attribs) || size != 2 {
		return
	}
	c.attribs[loc] = b
}

func (c *Context) setUniform(loc flicker.UniformLocation, v any) {
	if e, ok := c.programs[c.current]; ok && loc >= 0 {
		e.values[loc] = v
	}
}

// UniformMatrix4 implements flicker.Context.
func (c *Context) UniformMatrix4(loc flicker.UniformLocation, m mgl32.Mat4) { c.setUniform(loc, m) }

// Uniform4f implements flicker.Context.
func (c *Context) Uniform4f(loc flicker.UniformLocation, x, y, z, w float32) {
	c.setUniform(loc, []float32{x, y, z, w})
}

// Uniform1f implements flicker.Context.
func (c *Context) Uniform1f(loc flicker.UniformLocation, v float32) { c.setUniform(loc, v) }

// Uniform1i implements flicker.Context. Sampler units are implied by the
// bound textures, so integer uniforms only reach the shader by name.
func (c *Context) Uniform1i(loc flicker.UniformLocation, v int32) { c.setUniform(loc, v) }

// CreateTexture implements flicker.Context.
func (c *Context) CreateTexture(img image.Image, params flicker.TextureParams) (flicker.TextureID, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, fmt.Errorf("ebitengine: empty image %dx%d", b.Dx(), b.Dy())
	}
	t := flicker.TextureID(c.id())
	c.textures[t] = textureEntry{image: ebiten.NewImageFromImage(img), filter: params.Filter}
	return t, nil
}

// DeleteTexture implements flicker.Context.
func (c *Context) DeleteTexture(t flicker.TextureID) {
	e, ok := c.textures[t]
	if !ok {
		return
	}
	delete(c.textures, t)
	for i := range c.bound {
		if c.bound[i] == t {
			c.bound[i] = 0
		}
	}
	e.image.Deallocate()
}

// BindTexture implements flicker.Context.
func (c *Context) BindTexture(unit int, t flicker.TextureID) {
	if unit < 0 || unit >= maxTextureUnits {
		return
	}
	c.bound[unit] = t
}

// DrawArrays implements flicker.Context.
func (c *Context) DrawArrays(first, count int) {
	p, ok := c.programs[c.current]
	if !ok || c.target == nil || count <= 0 {
		return
	}

	var op ebiten.DrawTrianglesShaderOptions
	op.Blend = c.blend
	op.AntiAlias = c.antialias
	var srcBounds image.Rectangle
	linear := false
	for i, t := range c.bound {
		e, ok := c.textures[t]
		if !ok {
			continue
		}
		op.Images[i] = e.image
		if i == 0 {
			srcBounds = e.image.Bounds()
			linear = e.filter == flicker.FilterLinear
		}
	}
	op.Uniforms = kageUniforms(p, linear)

	c.vertices = appendVertices(c.vertices[:0],
		c.buffers[c.attribs[attribPosition]], c.buffers[c.attribs[attribTexCoord]],
		first, count, matrixUniform(p), c.effectiveViewport(), srcBounds)
	if len(c.vertices) == 0 {
		return
	}
	c.indices = appendIndices(c.indices[:0], len(c.vertices))
	c.target.DrawTrianglesShader(c.vertices, c.indices, p.shader, &op)
}

// EnableBlend implements flicker.Context.
func (c *Context) EnableBlend(src, dst flicker.BlendFactor) {
	c.blend = blendFor(src, dst)
}

// Viewport implements flicker.Context. The rectangle is in GL convention,
// with y measured up from the bottom of the target.
func (c *Context) Viewport(x, y, width, height int) {
	c.viewport = image.Rect(x, y, x+width, y+height)
}

// SetAntialias implements flicker.Antialiaser.
func (c *Context) SetAntialias(enabled bool) { c.antialias = enabled }

// effectiveViewport converts the GL viewport to target image coordinates.
func (c *Context) effectiveViewport() image.Rectangle {
	vp := c.viewport
	if vp.Empty() {
		return image.Rect(0, 0, c.width, c.height)
	}
	top := c.height - vp.Max.Y
	return image.Rect(vp.Min.X, top, vp.Max.X, top+vp.Dy())
}
