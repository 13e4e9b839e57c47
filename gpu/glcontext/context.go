// Package glcontext implements gpu.Context on top of an OpenGL 3.3 core
// profile context. The GL context itself must already be current on the
// calling thread, which is the window's job.
package glcontext

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
)

// Surface reports the drawable size of whatever the context renders into.
type Surface interface {
	DrawableSize() (width, height int32)
}

type Context struct {
	surface Surface
	vao     uint32
}

var _ gpu.Context = (*Context)(nil)

// New loads the GL entry points and binds the single vertex array object the
// core profile requires before any attribute call.
func New(surface Surface) (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	log.Printf("OpenGL %s, GLSL %s, %s",
		gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		gl.GoStr(gl.GetString(gl.RENDERER)))

	c := &Context{surface: surface}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c, nil
}

func (c *Context) Destroy() {
	if c.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

func (c *Context) DrawableSize() (int32, int32) {
	return c.surface.DrawableSize()
}

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) ClearDepth(depth float64) {
	gl.ClearDepth(depth)
}

func (c *Context) Enable(capability gpu.Capability) {
	gl.Enable(capabilities[capability])
}

func (c *Context) DepthFunc(f gpu.DepthFunc) {
	gl.DepthFunc(depthFuncs[f])
}

func (c *Context) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ColorBufferBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.DepthBufferBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (c *Context) CreateShader(stage gpu.ShaderStage) gpu.Shader {
	return gpu.Shader(gl.CreateShader(shaderStages[stage]))
}

func (c *Context) ShaderSource(s gpu.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (c *Context) CompileShader(s gpu.Shader) {
	gl.CompileShader(uint32(s))
}

func (c *Context) ShaderCompiled(s gpu.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ShaderInfoLog(s gpu.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	infoLog := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(infoLog))
	return strings.TrimRight(infoLog, "\x00")
}

func (c *Context) DeleteShader(s gpu.Shader) {
	gl.DeleteShader(uint32(s))
}

func (c *Context) CreateProgram() gpu.Program {
	return gpu.Program(gl.CreateProgram())
}

func (c *Context) AttachShader(p gpu.Program, s gpu.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *Context) LinkProgram(p gpu.Program) {
	gl.LinkProgram(uint32(p))
}

func (c *Context) ProgramLinked(p gpu.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ProgramInfoLog(p gpu.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	infoLog := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(infoLog))
	return strings.TrimRight(infoLog, "\x00")
}

func (c *Context) DeleteProgram(p gpu.Program) {
	gl.DeleteProgram(uint32(p))
}

func (c *Context) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

func (c *Context) AttribLocation(p gpu.Program, name string) gpu.AttribLocation {
	return gpu.AttribLocation(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) UniformLocation(p gpu.Program, name string) gpu.UniformLocation {
	return gpu.UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) CreateBuffer() gpu.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gpu.Buffer(b)
}

func (c *Context) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	gl.BindBuffer(bufferTargets[target], uint32(b))
}

func (c *Context) BufferFloat32(target gpu.BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(bufferTargets[target], 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(bufferTargets[target], len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *Context) BufferUint16(target gpu.BufferTarget, data []uint16) {
	if len(data) == 0 {
		gl.BufferData(bufferTargets[target], 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(bufferTargets[target], len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *Context) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (c *Context) VertexAttribPointer(loc gpu.AttribLocation, components int32, kind gpu.DataType, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(loc), components, dataTypes[kind], normalized, stride, uintptr(offset))
}

func (c *Context) EnableVertexAttribArray(loc gpu.AttribLocation) {
	gl.EnableVertexAttribArray(uint32(loc))
}

func (c *Context) DisableVertexAttribArray(loc gpu.AttribLocation) {
	gl.DisableVertexAttribArray(uint32(loc))
}

func (c *Context) Uniform1f(loc gpu.UniformLocation, v0 float32) {
	gl.Uniform1f(int32(loc), v0)
}

func (c *Context) Uniform2f(loc gpu.UniformLocation, v0, v1 float32) {
	gl.Uniform2f(int32(loc), v0, v1)
}

func (c *Context) Uniform3f(loc gpu.UniformLocation, v0, v1, v2 float32) {
	gl.Uniform3f(int32(loc), v0, v1, v2)
}

func (c *Context) UniformMatrix4fv(loc gpu.UniformLocation, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (c *Context) DrawElements(mode gpu.DrawMode, count int32, kind gpu.DataType, offset int) {
	gl.DrawElementsWithOffset(drawModes[mode], count, dataTypes[kind], uintptr(offset))
}

var (
	capabilities  = map[gpu.Capability]uint32{gpu.DepthTest: gl.DEPTH_TEST}
	depthFuncs    = map[gpu.DepthFunc]uint32{gpu.Less: gl.LESS, gpu.LessEqual: gl.LEQUAL}
	shaderStages  = map[gpu.ShaderStage]uint32{gpu.VertexShader: gl.VERTEX_SHADER, gpu.FragmentShader: gl.FRAGMENT_SHADER}
	bufferTargets = map[gpu.BufferTarget]uint32{gpu.ArrayBuffer: gl.ARRAY_BUFFER, gpu.ElementArrayBuffer: gl.ELEMENT_ARRAY_BUFFER}
	dataTypes     = map[gpu.DataType]uint32{gpu.Float: gl.FLOAT, gpu.UnsignedShort: gl.UNSIGNED_SHORT}
	drawModes     = map[gpu.DrawMode]uint32{gpu.Triangles: gl.TRIANGLES}
)
