// Package gpu describes the rendering surface the drawing core talks to. It is
// a narrow slice of an OpenGL (ES 2 / WebGL 1 style) context: enough to compile
// programs, upload vertex and index buffers, push uniforms and issue indexed
// triangle draws. Handles are opaque; zero means "no object" and negative
// locations mean "not found".
package gpu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Program uint32
type Shader uint32
type Buffer uint32

type AttribLocation int32
type UniformLocation int32

func (l AttribLocation) Valid() bool  { return l >= 0 }
func (l UniformLocation) Valid() bool { return l >= 0 }

type ShaderStage uint8

const (
	VertexShader ShaderStage = iota
	FragmentShader
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", uint8(s))
	}
}

type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	default:
		return fmt.Sprintf("BufferTarget(%d)", uint8(t))
	}
}

type DataType uint8

const (
	Float DataType = iota
	UnsignedShort
)

func (d DataType) String() string {
	switch d {
	case Float:
		return "FLOAT"
	case UnsignedShort:
		return "UNSIGNED_SHORT"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(d))
	}
}

type Capability uint8

const (
	DepthTest Capability = iota
)

func (c Capability) String() string {
	if c == DepthTest {
		return "DEPTH_TEST"
	}
	return fmt.Sprintf("Capability(%d)", uint8(c))
}

type DepthFunc uint8

const (
	Less DepthFunc = iota
	LessEqual
)

func (f DepthFunc) String() string {
	switch f {
	case Less:
		return "LESS"
	case LessEqual:
		return "LEQUAL"
	default:
		return fmt.Sprintf("DepthFunc(%d)", uint8(f))
	}
}

type ClearMask uint8

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

func (m ClearMask) String() string {
	switch m {
	case ColorBufferBit:
		return "COLOR"
	case DepthBufferBit:
		return "DEPTH"
	case ColorBufferBit | DepthBufferBit:
		return "COLOR|DEPTH"
	default:
		return fmt.Sprintf("ClearMask(%d)", uint8(m))
	}
}

type DrawMode uint8

const (
	Triangles DrawMode = iota
)

func (m DrawMode) String() string {
	if m == Triangles {
		return "TRIANGLES"
	}
	return fmt.Sprintf("DrawMode(%d)", uint8(m))
}

// Context is the rendering surface handed to the renderer by its host. It is
// created once and used from a single goroutine for its entire lifetime.
type Context interface {
	// DrawableSize reports the current drawing buffer size in pixels.
	DrawableSize() (width, height int32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	Enable(c Capability)
	DepthFunc(f DepthFunc)
	Clear(mask ClearMask)

	CreateShader(stage ShaderStage) Shader
	ShaderSource(s Shader, source string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	AttribLocation(p Program, name string) AttribLocation
	UniformLocation(p Program, name string) UniformLocation

	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, b Buffer)
	BufferFloat32(target BufferTarget, data []float32)
	BufferUint16(target BufferTarget, data []uint16)
	DeleteBuffer(b Buffer)

	VertexAttribPointer(loc AttribLocation, components int32, kind DataType, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(loc AttribLocation)
	DisableVertexAttribArray(loc AttribLocation)

	Uniform1f(loc UniformLocation, v0 float32)
	Uniform2f(loc UniformLocation, v0, v1 float32)
	Uniform3f(loc UniformLocation, v0, v1, v2 float32)
	UniformMatrix4fv(loc UniformLocation, m mgl32.Mat4)

	DrawElements(mode DrawMode, count int32, kind DataType, offset int)
}
