//go:build !js

// Package opengl implements flicker.Context on desktop OpenGL 2.1 through
// go-gl. The GL context must be current on the calling OS thread for every
// method, so callers lock the main goroutine with runtime.LockOSThread.
package opengl

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"

	"github.com/phanxgames/flicker"
)

// Context drives the OpenGL context current on the calling thread. It holds
// no state of its own; every query goes to the driver.
type Context struct{}

// New loads the GL function pointers for the current context. It must be
// called after the window's context has been made current.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: init: %w", err)
	}
	flicker.Logger().Debug("opengl context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Context{}, nil
}

var _ flicker.Context = (*Context)(nil)
var _ flicker.Antialiaser = (*Context)(nil)

// ShaderLanguage implements flicker.Context.
func (c *Context) ShaderLanguage() flicker.ShaderLanguage { return flicker.GLSL100 }

// CreateShader implements flicker.Context. The returned error holds the
// driver's info log.
func (c *Context) CreateShader(stage flicker.ShaderStage, source string) (flicker.Shader, error) {
	shader := gl.CreateShader(shaderType(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile error: %s", trimLog(log))
	}
	return flicker.Shader(shader), nil
}

// DeleteShader implements flicker.Context.
func (c *Context) DeleteShader(s flicker.Shader) { gl.DeleteShader(uint32(s)) }

// CreateProgram implements flicker.Context.
func (c *Context) CreateProgram(vertex, fragment flicker.Shader) (flicker.Program, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)
	gl.DetachShader(program, uint32(vertex))
	gl.DetachShader(program, uint32(fragment))

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link error: %s", trimLog(log))
	}
	return flicker.Program(program), nil
}

// DeleteProgram implements flicker.Context.
func (c *Context) DeleteProgram(p flicker.Program) {
	gl.DeleteProgram(uint32(p))
}

// UseProgram implements flicker.Context.
func (c *Context) UseProgram(p flicker.Program) {
	gl.UseProgram(uint32(p))
}

// CurrentProgram implements flicker.Context. It asks the driver, so programs
// bound by other code on the same context are seen too.
func (c *Context) CurrentProgram() flicker.Program {
	var p int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &p)
	return flicker.Program(p)
}

// AttribLocation implements flicker.Context.
func (c *Context) AttribLocation(p flicker.Program, name string) int {
	return int(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

// UniformLocation implements flicker.Context.
func (c *Context) UniformLocation(p flicker.Program, name string) flicker.UniformLocation {
	return flicker.UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

// CreateBuffer implements flicker.Context.
func (c *Context) CreateBuffer() flicker.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return flicker.Buffer(b)
}

// DeleteBuffer implements flicker.Context.
func (c *Context) DeleteBuffer(b flicker.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

// BufferData implements flicker.Context.
func (c *Context) BufferData(b flicker.Buffer, data []float32, usage flicker.BufferUsage) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), bufferUsage(usage))
}

// VertexAttribPointer implements flicker.Context. Attributes the linker
// optimized away (loc < 0) are ignored.
func (c *Context) VertexAttribPointer(loc int, b flicker.Buffer, size int) {
	if loc < 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), int32(size), gl.FLOAT, false, 0, gl.PtrOffset(0))
}

// UniformMatrix4 implements flicker.Context.
func (c *Context) UniformMatrix4(loc flicker.UniformLocation, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

// Uniform4f implements flicker.Context.
func (c *Context) Uniform4f(loc flicker.UniformLocation, x, y, z, w float32) {
	gl.Uniform4f(int32(loc), x, y, z, w)
}

// Uniform1f implements flicker.Context.
func (c *Context) Uniform1f(loc flicker.UniformLocation, v float32) {
	gl.Uniform1f(int32(loc), v)
}

// Uniform1i implements flicker.Context.
func (c *Context) Uniform1i(loc flicker.UniformLocation, v int32) {
	gl.Uniform1i(int32(loc), v)
}

// CreateTexture implements flicker.Context. img is converted to
// non-premultiplied RGBA before upload.
func (c *Context) CreateTexture(img image.Image, params flicker.TextureParams) (flicker.TextureID, error) {
	rgba := toNRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("empty image %dx%d", w, h)
	}

	drainErrors()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	filter := textureFilter(params.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, textureWrap(params.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, textureWrap(params.Wrap))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("glTexImage2D: error 0x%04x", code)
	}
	return flicker.TextureID(tex), nil
}

// DeleteTexture implements flicker.Context.
func (c *Context) DeleteTexture(t flicker.TextureID) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

// BindTexture implements flicker.Context.
func (c *Context) BindTexture(unit int, t flicker.TextureID) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

// DrawArrays implements flicker.Context.
func (c *Context) DrawArrays(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

// EnableBlend implements flicker.Context.
func (c *Context) EnableBlend(src, dst flicker.BlendFactor) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

// Viewport implements flicker.Context.
func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// SetAntialias implements flicker.Antialiaser. It only has an effect when the
// window was created with multisample buffers.
func (c *Context) SetAntialias(enabled bool) {
	if enabled {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}

// Clear fills the color buffer with col.
func (c *Context) Clear(col flicker.Color) {
	gl.ClearColor(float32(col.R), float32(col.G), float32(col.B), float32(col.A))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// toNRGBA returns img as tightly packed non-premultiplied RGBA with its
// origin at (0, 0).
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// maxPendingErrors bounds drainErrors in case the context is lost, where
// some drivers keep reporting an error forever.
const maxPendingErrors = 32

// drainErrors clears errors left by earlier calls so the next GetError
// reflects only what follows. It returns the number discarded.
func drainErrors() int {
	return drainErrorsFrom(gl.GetError)
}

func drainErrorsFrom(getError func() uint32) int {
	n := 0
	for n < maxPendingErrors && getError() != gl.NO_ERROR {
		n++
	}
	if n > 0 {
		flicker.Logger().Debug("discarded stale gl errors", "count", n)
	}
	return n
}

func trimLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}
