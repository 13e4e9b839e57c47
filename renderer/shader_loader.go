package renderer

import (
	"log"

	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
)

// LoadProgram compiles a vertex and a fragment shader from source and links
// them into a program. The stage objects are only needed until the link, so
// they are deleted before returning. On failure everything created so far is
// released and a *ShaderError carrying the driver log is returned.
func LoadProgram(ctx gpu.Context, vertexSource string, fragmentSource string) (gpu.Program, error) {
	vert, err := compileShader(ctx, gpu.VertexShader, vertexSource)
	if err != nil {
		return 0, err
	}
	frag, err := compileShader(ctx, gpu.FragmentShader, fragmentSource)
	if err != nil {
		ctx.DeleteShader(vert)
		return 0, err
	}

	program := ctx.CreateProgram()
	ctx.AttachShader(program, vert)
	ctx.AttachShader(program, frag)
	ctx.LinkProgram(program)

	if !ctx.ProgramLinked(program) {
		infoLog := ctx.ProgramInfoLog(program)
		ctx.DeleteProgram(program)
		ctx.DeleteShader(vert)
		ctx.DeleteShader(frag)
		return 0, &ShaderError{Stage: "link", Log: infoLog, Err: ErrProgramLink}
	}

	ctx.DeleteShader(vert)
	ctx.DeleteShader(frag)
	log.Printf("Created program: %v", program)
	return program, nil
}

func compileShader(ctx gpu.Context, stage gpu.ShaderStage, source string) (gpu.Shader, error) {
	shader := ctx.CreateShader(stage)
	ctx.ShaderSource(shader, source)
	ctx.CompileShader(shader)

	if !ctx.ShaderCompiled(shader) {
		infoLog := ctx.ShaderInfoLog(shader)
		ctx.DeleteShader(shader)
		return 0, &ShaderError{Stage: stage.String(), Log: infoLog, Err: ErrShaderCompile}
	}
	log.Printf("Created %s shader: %v", stage, shader)
	return shader, nil
}
