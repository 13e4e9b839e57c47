package gpu

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func linkedProgram(t *testing.T, r *Recorder) Program {
	t.Helper()
	p := r.CreateProgram()
	for _, stage := range []ShaderStage{VertexShader, FragmentShader} {
		s := r.CreateShader(stage)
		r.ShaderSource(s, "void main() {}")
		r.CompileShader(s)
		require.True(t, r.ShaderCompiled(s))
		r.AttachShader(p, s)
	}
	r.LinkProgram(p)
	require.True(t, r.ProgramLinked(p))
	return p
}

func TestRecorderCompileFailure(t *testing.T) {
	r := NewRecorder(10, 10)
	r.CompileErrors[FragmentShader] = "0:1: syntax error"

	vs := r.CreateShader(VertexShader)
	r.ShaderSource(vs, "void main() {}")
	r.CompileShader(vs)
	assert.True(t, r.ShaderCompiled(vs))

	fs := r.CreateShader(FragmentShader)
	r.ShaderSource(fs, "void main() {}")
	r.CompileShader(fs)
	assert.False(t, r.ShaderCompiled(fs))
	assert.Equal(t, "0:1: syntax error", r.ShaderInfoLog(fs))
}

func TestRecorderLinkFailure(t *testing.T) {
	r := NewRecorder(10, 10)
	r.LinkError = "varying mismatch"
	p := r.CreateProgram()
	r.LinkProgram(p)
	assert.False(t, r.ProgramLinked(p))
	assert.Equal(t, "varying mismatch", r.ProgramInfoLog(p))
}

func TestRecorderLocations(t *testing.T) {
	r := NewRecorder(10, 10)
	r.MissingSymbols["uGone"] = true
	p := linkedProgram(t, r)

	a := r.AttribLocation(p, "aPos")
	b := r.AttribLocation(p, "aColor")
	assert.Equal(t, AttribLocation(0), a)
	assert.Equal(t, AttribLocation(1), b)
	assert.Equal(t, a, r.AttribLocation(p, "aPos"))

	assert.True(t, r.UniformLocation(p, "uM").Valid())
	assert.False(t, r.UniformLocation(p, "uGone").Valid())
}

func TestRecorderDrawSnapshot(t *testing.T) {
	r := NewRecorder(640, 480)
	p := linkedProgram(t, r)
	r.UseProgram(p)

	vb := r.CreateBuffer()
	r.BindBuffer(ArrayBuffer, vb)
	r.BufferFloat32(ArrayBuffer, []float32{0, 0, 0, 1, 1, 1})
	loc := r.AttribLocation(p, "aPos")
	r.VertexAttribPointer(loc, 3, Float, false, 0, 0)
	r.EnableVertexAttribArray(loc)

	r.Uniform2f(r.UniformLocation(p, "uNormal"), 0, 1)
	r.UniformMatrix4fv(r.UniformLocation(p, "uM"), mgl32.Ident4())

	ib := r.CreateBuffer()
	r.BindBuffer(ElementArrayBuffer, ib)
	r.BufferUint16(ElementArrayBuffer, []uint16{0, 1, 0})
	r.DrawElements(Triangles, 3, UnsignedShort, 0)

	require.Empty(t, r.Errors)
	require.Len(t, r.Draws, 1)
	d := r.Draws[0]
	assert.Equal(t, p, d.Program)
	assert.Equal(t, int32(3), d.Count)
	assert.Equal(t, map[string]int32{"aPos": 3}, d.Attribs)
	assert.Equal(t, []float32{0, 1}, d.Uniforms["uNormal"])
	assert.Len(t, d.Uniforms["uM"], 16)
}

func TestRecorderMisuse(t *testing.T) {
	r := NewRecorder(10, 10)
	p := linkedProgram(t, r)
	r.UseProgram(p)

	r.DrawElements(Triangles, 3, UnsignedShort, 0)
	assert.Len(t, r.Errors, 1)
	assert.Empty(t, r.Draws)

	b := r.CreateBuffer()
	r.DeleteBuffer(b)
	r.DeleteBuffer(b)
	assert.Len(t, r.Errors, 2)
	assert.Empty(t, r.LiveBuffers())

	ib := r.CreateBuffer()
	r.BindBuffer(ElementArrayBuffer, ib)
	r.BufferUint16(ElementArrayBuffer, []uint16{0, 1, 2})
	r.DrawElements(Triangles, 6, UnsignedShort, 0)
	assert.Len(t, r.Errors, 3)
}

func TestRecorderFrameState(t *testing.T) {
	r := NewRecorder(800, 600)
	r.Viewport(0, 0, 800, 600)
	r.ClearColor(0.9, 0.9, 0.9, 1)
	r.Enable(DepthTest)
	r.DepthFunc(LessEqual)
	r.Clear(ColorBufferBit | DepthBufferBit)

	viewport, clear, depth, fn := r.State()
	assert.Equal(t, [4]int32{0, 0, 800, 600}, viewport)
	assert.Equal(t, [4]float32{0.9, 0.9, 0.9, 1}, clear)
	assert.True(t, depth)
	assert.Equal(t, LessEqual, fn)
	assert.Equal(t, []string{"Viewport", "ClearColor", "Enable", "DepthFunc", "Clear"}, r.Names())
	assert.Equal(t, 1, r.Count("Clear"))

	r.ResetLog()
	assert.Empty(t, r.Calls)
}

func TestRecorderWriteYAML(t *testing.T) {
	r := NewRecorder(4, 3)
	r.Viewport(0, 0, 4, 3)
	r.Clear(ColorBufferBit | DepthBufferBit)

	var buf bytes.Buffer
	require.NoError(t, r.WriteYAML(&buf))

	var out struct {
		Width  int32 `yaml:"width"`
		Height int32 `yaml:"height"`
		Calls  []struct {
			Call string `yaml:"call"`
			Args []any  `yaml:"args"`
		} `yaml:"calls"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, int32(4), out.Width)
	require.Len(t, out.Calls, 2)
	assert.Equal(t, "Viewport", out.Calls[0].Call)
	assert.Equal(t, []any{0, 0, 4, 3}, out.Calls[0].Args)
	assert.Equal(t, "COLOR|DEPTH", out.Calls[1].Args[0])
}
