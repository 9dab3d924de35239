package flicker

import "fmt"

// programSource is the shader pair for one drawable kind in one dialect.
type programSource struct {
	vertex   string
	fragment string
}

// compileProgram compiles both stages and links them. Intermediate shader
// objects are deleted on every path once linking has been attempted or a
// stage has failed. Failures are logged and returned wrapped in one of
// ErrShaderCompile or ErrProgramLink.
func compileProgram(ctx Context, kind string, src programSource) (Program, error) {
	vs, err := compileShader(ctx, kind, VertexShader, src.vertex)
	if err != nil {
		return 0, err
	}
	defer ctx.DeleteShader(vs)

	fs, err := compileShader(ctx, kind, FragmentShader, src.fragment)
	if err != nil {
		return 0, err
	}
	defer ctx.DeleteShader(fs)

	p, err := ctx.CreateProgram(vs, fs)
	if err != nil {
		Logger().Error("program link failed", "kind", kind, "log", err.Error())
		return 0, fmt.Errorf("%w: %w", ErrProgramLink, err)
	}
	return p, nil
}

func compileShader(ctx Context, kind string, stage ShaderStage, source string) (Shader, error) {
	s, err := ctx.CreateShader(stage, source)
	if err != nil {
		Logger().Error("shader compile failed", "kind", kind, "stage", stage.String(), "log", err.Error())
		return 0, fmt.Errorf("%w: %s: %w", ErrShaderCompile, stage, err)
	}
	return s, nil
}

// deleteProgram unbinds p if it is current on ctx, then deletes it.
func deleteProgram(ctx Context, p Program) {
	if p == 0 {
		return
	}
	if ctx.CurrentProgram() == p {
		ctx.UseProgram(0)
	}
	ctx.DeleteProgram(p)
}

// sourceFor picks the program source matching ctx's shader language.
func sourceFor(ctx Context, kind string, sources map[ShaderLanguage]programSource) (programSource, error) {
	src, ok := sources[ctx.ShaderLanguage()]
	if !ok {
		return programSource{}, fmt.Errorf("%w: no %s shaders for %s", ErrShaderCompile, kind, ctx.ShaderLanguage())
	}
	return src, nil
}

// quadPositions is a unit quad in [-1, 1] as two triangles.
var quadPositions = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	-1, 1,
	1, -1,
	1, 1,
}

const quadVertexCount = 6
