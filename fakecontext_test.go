package flicker

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeContext is a recording Context that stands in for a GPU backend. It
// counts every resource it creates and deletes and snapshots uniform and
// attribute state at each draw call.
type fakeContext struct {
	language ShaderLanguage

	// failure injection
	failStage   map[ShaderStage]string
	failLink    string
	failTexture error

	counts    fakeCounts
	draws     []fakeDraw
	viewport  [4]int
	blend     [2]BlendFactor
	blending  bool
	antialias bool

	next     uint32
	current  Program
	bound    TextureID
	shaders  map[Shader]ShaderStage
	programs map[Program]*fakeProgram
	buffers  map[Buffer][]float32
	textures map[TextureID]TextureParams
	attribs  map[int]Buffer
}

type fakeCounts struct {
	shadersCreated, shadersDeleted   int
	programsCreated, programsDeleted int
	buffersCreated, buffersDeleted   int
	texturesCreated, texturesDeleted int
	invalidDeletes                   int
	useProgramZero                   int
}

type fakeProgram struct {
	attribs  map[string]int
	uniforms map[string]UniformLocation
	values   map[UniformLocation]any
}

type fakeDraw struct {
	program  Program
	texture  TextureID
	first    int
	count    int
	uniforms map[string]any
	attribs  map[string][]float32
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		language:  GLSL100,
		failStage: make(map[ShaderStage]string),
		shaders:   make(map[Shader]ShaderStage),
		programs:  make(map[Program]*fakeProgram),
		buffers:   make(map[Buffer][]float32),
		textures:  make(map[TextureID]TextureParams),
		attribs:   make(map[int]Buffer),
	}
}

func (c *fakeContext) id() uint32 {
	c.next++
	return c.next
}

func (c *fakeContext) ShaderLanguage() ShaderLanguage { return c.language }

func (c *fakeContext) CreateShader(stage ShaderStage, source string) (Shader, error) {
	if msg, ok := c.failStage[stage]; ok {
		return 0, errors.New(msg)
	}
	s := Shader(c.id())
	c.shaders[s] = stage
	c.counts.shadersCreated++
	return s, nil
}

func (c *fakeContext) DeleteShader(s Shader) {
	if _, ok := c.shaders[s]; !ok {
		c.counts.invalidDeletes++
		return
	}
	delete(c.shaders, s)
	c.counts.shadersDeleted++
}

func (c *fakeContext) CreateProgram(vertex, fragment Shader) (Program, error) {
	if c.failLink != "" {
		return 0, errors.New(c.failLink)
	}
	p := Program(c.id())
	c.programs[p] = &fakeProgram{
		attribs:  make(map[string]int),
		uniforms: make(map[string]UniformLocation),
		values:   make(map[UniformLocation]any),
	}
	c.counts.programsCreated++
	return p, nil
}

func (c *fakeContext) DeleteProgram(p Program) {
	if _, ok := c.programs[p]; !ok {
		c.counts.invalidDeletes++
		return
	}
	delete(c.programs, p)
	c.counts.programsDeleted++
}

func (c *fakeContext) UseProgram(p Program) {
	if p == 0 {
		c.counts.useProgramZero++
	}
	c.current = p
}

func (c *fakeContext) CurrentProgram() Program { return c.current }

func (c *fakeContext) AttribLocation(p Program, name string) int {
	fp := c.programs[p]
	if loc, ok := fp.attribs[name]; ok {
		return loc
	}
	loc := len(fp.attribs)
	fp.attribs[name] = loc
	return loc
}

func (c *fakeContext) UniformLocation(p Program, name string) UniformLocation {
	fp := c.programs[p]
	if loc, ok := fp.uniforms[name]; ok {
		return loc
	}
	loc := UniformLocation(len(fp.uniforms))
	fp.uniforms[name] = loc
	return loc
}

func (c *fakeContext) CreateBuffer() Buffer {
	b := Buffer(c.id())
	c.buffers[b] = nil
	c.counts.buffersCreated++
	return b
}

func (c *fakeContext) DeleteBuffer(b Buffer) {
	if _, ok := c.buffers[b]; !ok {
		c.counts.invalidDeletes++
		return
	}
	delete(c.buffers, b)
	c.counts.buffersDeleted++
}

func (c *fakeContext) BufferData(b Buffer, data []float32, _ BufferUsage) {
	c.buffers[b] = append([]float32(nil), data...)
}

func (c *fakeContext) VertexAttribPointer(loc int, b Buffer, _ int) {
	c.attribs[loc] = b
}

func (c *fakeContext) setUniform(loc UniformLocation, v any) {
	if fp, ok := c.programs[c.current]; ok {
		fp.values[loc] = v
	}
}

func (c *fakeContext) UniformMatrix4(loc UniformLocation, m mgl32.Mat4) { c.setUniform(loc, m) }

func (c *fakeContext) Uniform4f(loc UniformLocation, x, y, z, w float32) {
	c.setUniform(loc, [4]float32{x, y, z, w})
}

func (c *fakeContext) Uniform1f(loc UniformLocation, v float32) { c.setUniform(loc, v) }

func (c *fakeContext) Uniform1i(loc UniformLocation, v int32) { c.setUniform(loc, v) }

func (c *fakeContext) CreateTexture(_ image.Image, params TextureParams) (TextureID, error) {
	if c.failTexture != nil {
		return 0, c.failTexture
	}
	t := TextureID(c.id())
	c.textures[t] = params
	c.counts.texturesCreated++
	return t, nil
}

func (c *fakeContext) DeleteTexture(t TextureID) {
	if _, ok := c.textures[t]; !ok {
		c.counts.invalidDeletes++
		return
	}
	delete(c.textures, t)
	c.counts.texturesDeleted++
}

func (c *fakeContext) BindTexture(_ int, t TextureID) { c.bound = t }

func (c *fakeContext) DrawArrays(first, count int) {
	d := fakeDraw{
		program:  c.current,
		texture:  c.bound,
		first:    first,
		count:    count,
		uniforms: make(map[string]any),
		attribs:  make(map[string][]float32),
	}
	if fp, ok := c.programs[c.current]; ok {
		for name, loc := range fp.uniforms {
			if v, ok := fp.values[loc]; ok {
				d.uniforms[name] = v
			}
		}
		for name, loc := range fp.attribs {
			if b, ok := c.attribs[loc]; ok {
				d.attribs[name] = append([]float32(nil), c.buffers[b]...)
			}
		}
	}
	c.draws = append(c.draws, d)
}

func (c *fakeContext) EnableBlend(src, dst BlendFactor) {
	c.blending = true
	c.blend = [2]BlendFactor{src, dst}
}

func (c *fakeContext) Viewport(x, y, width, height int) {
	c.viewport = [4]int{x, y, width, height}
}

func (c *fakeContext) SetAntialias(enabled bool) { c.antialias = enabled }

// opacity returns the u_opacity uniform recorded for draw i.
func (c *fakeContext) opacity(i int) float32 {
	v, _ := c.draws[i].uniforms["u_opacity"].(float32)
	return v
}

// matrix returns the u_matrix uniform recorded for draw i.
func (c *fakeContext) matrix(i int) mgl32.Mat4 {
	m, _ := c.draws[i].uniforms["u_matrix"].(mgl32.Mat4)
	return m
}

// fakeSurface is a fixed-size Surface that can report resizes.
type fakeSurface struct {
	w, h     int
	onResize func(w, h int)
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) OnResize(fn func(w, h int)) { s.onResize = fn }

func (s *fakeSurface) resize(w, h int) {
	s.w, s.h = w, h
	if s.onResize != nil {
		s.onResize(w, h)
	}
}

// testImage returns a blank RGBA image of the given size.
func testImage(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
