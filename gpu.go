package flicker

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Context is the immediate-mode graphics backend a Renderer draws through.
// One Context value identifies one bound graphics session (for example one
// window or one canvas); resource caches are keyed by it, so implementations
// must be comparable, typically pointers.
//
// All calls for a given Context must come from the goroutine that owns the
// underlying graphics session.
type Context interface {
	// ShaderLanguage reports which source dialect CreateShader accepts.
	ShaderLanguage() ShaderLanguage

	// CreateShader compiles one shader stage. The returned error carries the
	// backend's info log on failure.
	CreateShader(stage ShaderStage, source string) (Shader, error)
	DeleteShader(s Shader)

	// CreateProgram links a vertex and fragment shader into a program.
	CreateProgram(vertex, fragment Shader) (Program, error)
	DeleteProgram(p Program)
	UseProgram(p Program)
	// CurrentProgram returns the program last bound with UseProgram, or 0.
	CurrentProgram() Program

	// AttribLocation returns -1 when the program has no such attribute.
	AttribLocation(p Program, name string) int
	// UniformLocation returns -1 when the program has no such uniform.
	UniformLocation(p Program, name string) UniformLocation

	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	// BufferData binds b as the vertex array buffer and replaces its contents.
	BufferData(b Buffer, data []float32, usage BufferUsage)
	// VertexAttribPointer binds b, enables the attribute at loc and points it
	// at tightly packed float vectors of the given size.
	VertexAttribPointer(loc int, b Buffer, size int)

	// Uniform setters apply to the program currently in use.
	UniformMatrix4(loc UniformLocation, m mgl32.Mat4)
	Uniform4f(loc UniformLocation, x, y, z, w float32)
	Uniform1f(loc UniformLocation, v float32)
	Uniform1i(loc UniformLocation, v int32)

	// CreateTexture uploads img as a new 2D texture.
	CreateTexture(img image.Image, params TextureParams) (TextureID, error)
	DeleteTexture(t TextureID)
	BindTexture(unit int, t TextureID)

	// DrawArrays draws count vertices starting at first as a triangle list.
	DrawArrays(first, count int)

	EnableBlend(src, dst BlendFactor)
	Viewport(x, y, width, height int)
}

// Antialiaser is implemented by contexts that can toggle edge antialiasing
// after acquisition. Renderer applies its antialias option through it.
type Antialiaser interface {
	SetAntialias(enabled bool)
}

// Handles returned by a Context. The zero value of each means "none".
type (
	Shader          uint32
	Program         uint32
	Buffer          uint32
	TextureID       uint32
	UniformLocation int32
)

// ShaderStage selects the pipeline stage a shader source is compiled for.
type ShaderStage uint8

const (
	VertexShader   ShaderStage = iota // per-vertex stage
	FragmentShader                    // per-pixel stage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// ShaderLanguage identifies a shader source dialect.
type ShaderLanguage uint8

const (
	GLSL100 ShaderLanguage = iota // GLSL ES 1.00 / desktop GLSL 1.10
	Kage                          // Ebitengine's Kage; vertex stage is fixed-function
)

func (l ShaderLanguage) String() string {
	switch l {
	case GLSL100:
		return "glsl100"
	case Kage:
		return "kage"
	default:
		return "unknown"
	}
}

// BufferUsage hints how often a buffer's contents change.
type BufferUsage uint8

const (
	StaticDraw  BufferUsage = iota // uploaded once, drawn many times
	DynamicDraw                    // re-uploaded frequently
)

// TextureFilter selects minification and magnification sampling.
type TextureFilter uint8

const (
	FilterNearest TextureFilter = iota // hard pixel edges
	FilterLinear                       // bilinear smoothing
)

// TextureWrap selects the addressing mode outside [0,1].
type TextureWrap uint8

const (
	WrapClampToEdge TextureWrap = iota
)

// TextureParams configures a texture at upload time.
type TextureParams struct {
	Filter TextureFilter
	Wrap   TextureWrap
}

// BlendFactor is a source or destination blend factor.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)
