package flicker

const rectangleKind = "rectangle"

var rectangleSources = map[ShaderLanguage]programSource{
	GLSL100: {
		vertex: `
attribute vec2 a_position;

uniform mat4 u_matrix;
uniform vec4 u_color;

varying vec4 v_color;

void main() {
	gl_Position = u_matrix * vec4(a_position, 0.0, 1.0);
	v_color = u_color;
}
`,
		fragment: `
#ifdef GL_ES
precision mediump float;
#endif

varying vec4 v_color;
uniform float u_opacity;

void main() {
	gl_FragColor = vec4(v_color.rgb, v_color.a * u_opacity);
}
`,
	},
	Kage: {
		fragment: `//kage:unit pixels
package main

var Color vec4
var Opacity float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	a := Color.a * Opacity
	return vec4(Color.rgb*a, a)
}
`,
	},
}

// rectangleProgram is the per-context bundle shared by every Rectangle.
type rectangleProgram struct {
	program  Program
	position int
	matrix   UniformLocation
	color    UniformLocation
	opacity  UniformLocation

	positions Buffer
}

func (p *rectangleProgram) release(ctx Context) {
	deleteProgram(ctx, p.program)
	ctx.DeleteBuffer(p.positions)
}

func buildRectangleProgram(ctx Context) (*rectangleProgram, error) {
	src, err := sourceFor(ctx, rectangleKind, rectangleSources)
	if err != nil {
		return nil, err
	}
	program, err := compileProgram(ctx, rectangleKind, src)
	if err != nil {
		return nil, err
	}
	positions := ctx.CreateBuffer()
	ctx.BufferData(positions, quadPositions, StaticDraw)
	return &rectangleProgram{
		program:   program,
		position:  ctx.AttribLocation(program, "a_position"),
		matrix:    ctx.UniformLocation(program, "u_matrix"),
		color:     ctx.UniformLocation(program, "u_color"),
		opacity:   ctx.UniformLocation(program, "u_opacity"),
		positions: positions,
	}, nil
}

var rectangles = newProgramCache(rectangleKind, buildRectangleProgram)

// UnloadRectangles deletes the Rectangle program and buffers created for ctx.
// The next Rectangle rendered on ctx rebuilds them. No-op if none exist.
func UnloadRectangles(ctx Context) {
	rectangles.unload(ctx)
}

// Rectangle is a solid-color quad of Width by Height local units.
type Rectangle struct {
	Node
	Width, Height float64
	Color         Color
}

// NewRectangle creates a rectangle with default node state.
func NewRectangle(width, height float64, color Color) *Rectangle {
	r := &Rectangle{Width: width, Height: height, Color: color}
	nodeDefaults(&r.Node)
	return r
}

// Size implements Drawable.
func (r *Rectangle) Size() (float64, float64) {
	return r.Width, r.Height
}

// DrawSelf implements Drawable.
func (r *Rectangle) DrawSelf(ctx Context, m Matrix, opacity float64) error {
	p, err := rectangles.get(ctx)
	if err != nil {
		return err
	}
	ctx.UseProgram(p.program)
	ctx.VertexAttribPointer(p.position, p.positions, 2)
	ctx.UniformMatrix4(p.matrix, m.Scale(r.Width/2, r.Height/2).Mat4())
	ctx.Uniform4f(p.color, float32(r.Color.R), float32(r.Color.G), float32(r.Color.B), float32(r.Color.A))
	ctx.Uniform1f(p.opacity, float32(opacity))
	ctx.DrawArrays(0, quadVertexCount)
	return nil
}
