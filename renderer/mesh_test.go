package renderer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
)

func newTestMesh(t *testing.T, rec *gpu.Recorder) *Mesh {
	t.Helper()
	program, err := LoadProgram(rec, cubeVertexShader, colorFragmentShader)
	require.NoError(t, err)
	return NewMesh(rec, program)
}

func quad() (positions []float32, colors []float32, indices []uint16) {
	positions = []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	colors = []float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1, 1, 1, 1, 1}
	indices = []uint16{0, 1, 2, 0, 2, 3}
	return
}

func TestMeshDraw(t *testing.T) {
	rec := gpu.NewRecorder(800, 600)
	m := newTestMesh(t, rec)
	positions, colors, indices := quad()

	require.NoError(t, m.AddBuffer("aVertexPosition", positions, 3))
	require.NoError(t, m.AddBuffer("aVertexColor", colors, 4))
	require.NoError(t, m.SetIndexBuffer(indices))
	mv, err := m.CreateUniformMatrix4("uModelViewMatrix", mgl32.Translate3D(1, 2, 3))
	require.NoError(t, err)

	require.NoError(t, m.Draw())
	require.Empty(t, rec.Errors)
	require.Len(t, rec.Draws, 1)

	d := rec.Draws[0]
	assert.Equal(t, m.Program(), d.Program)
	assert.Equal(t, int32(6), d.Count)
	assert.Equal(t, map[string]int32{"aVertexPosition": 3, "aVertexColor": 4}, d.Attribs)
	assert.Equal(t, []float32(mv.Value[:]), d.Uniforms["uModelViewMatrix"])
	assert.Empty(t, rec.EnabledAttribs(), "attributes must be disabled after drawing")

	buffers := m.Buffers()
	require.Len(t, buffers, 2)
	data, _ := rec.BufferContents(buffers[1].Buffer)
	assert.Equal(t, colors, data)
}

func TestMeshUniformValueIsLive(t *testing.T) {
	rec := gpu.NewRecorder(800, 600)
	m := newTestMesh(t, rec)
	positions, _, indices := quad()
	require.NoError(t, m.AddBuffer("aVertexPosition", positions, 3))
	require.NoError(t, m.SetIndexBuffer(indices))

	proj, err := m.CreateUniformMatrix4("uProjectionMatrix", mgl32.Ident4())
	require.NoError(t, err)
	require.NoError(t, m.Draw())

	proj.Value = mgl32.Scale3D(2, 2, 2)
	require.NoError(t, m.Draw())

	require.Len(t, rec.Draws, 2)
	assert.Equal(t, float32(1), rec.Draws[0].Uniforms["uProjectionMatrix"][0])
	assert.Equal(t, float32(2), rec.Draws[1].Uniforms["uProjectionMatrix"][0])
}

func TestMeshDrawWithoutIndexBuffer(t *testing.T) {
	rec := gpu.NewRecorder(800, 600)
	m := newTestMesh(t, rec)
	positions, _, _ := quad()
	require.NoError(t, m.AddBuffer("aVertexPosition", positions, 3))
	rec.ResetLog()

	assert.ErrorIs(t, m.Draw(), ErrNoIndexBuffer)
	assert.Empty(t, rec.Calls, "no GPU state may be touched")
}

func TestMeshUnknownSymbols(t *testing.T) {
	rec := gpu.NewRecorder(800, 600)
	rec.MissingSymbols["aNormal"] = true
	rec.MissingSymbols["uTime"] = true
	m := newTestMesh(t, rec)

	err := m.AddBuffer("aNormal", []float32{0, 0, 1}, 3)
	require.ErrorIs(t, err, ErrUnknownAttribute)
	var symErr *SymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, "aNormal", symErr.Name)
	assert.Empty(t, rec.LiveBuffers(), "buffer of an unresolved attribute must be released")
	assert.Empty(t, m.Buffers())

	_, err = m.CreateUniform1f("uTime", 0)
	assert.ErrorIs(t, err, ErrUnknownUniform)
	assert.Contains(t, err.Error(), "uTime")
}

func TestMeshBufferValidation(t *testing.T) {
	rec := gpu.NewRecorder(800, 600)
	m := newTestMesh(t, rec)

	assert.ErrorIs(t, m.AddBuffer("aVertexPosition", []float32{0, 0}, 3), ErrBufferLayout)
	assert.ErrorIs(t, m.AddBuffer("aVertexPosition", []float32{0}, 0), ErrBufferLayout)
	assert.ErrorIs(t, m.SetIndexBuffer(nil), ErrEmptyIndexBuffer)
	assert.Zero(t, rec.Count("CreateBuffer"))
}

func TestMeshSetIndexBufferReplaces(t *testing.T) {
	rec := gpu.NewRecorder(800, 600)
	m := newTestMesh(t, rec)

	require.NoError(t, m.SetIndexBuffer([]uint16{0, 1, 2}))
	require.NoError(t, m.SetIndexBuffer([]uint16{0, 1, 2, 0, 2, 3}))

	assert.Len(t, rec.LiveBuffers(), 1)
	assert.Equal(t, int32(6), m.IndexCount())
	assert.Empty(t, rec.Errors)
}

func TestMeshDispose(t *testing.T) {
	rec := gpu.NewRecorder(800, 600)
	m := newTestMesh(t, rec)
	positions, colors, indices := quad()
	require.NoError(t, m.AddBuffer("aVertexPosition", positions, 3))
	require.NoError(t, m.AddBuffer("aVertexColor", colors, 4))
	require.NoError(t, m.SetIndexBuffer(indices))

	m.Dispose()
	m.Dispose()

	assert.Equal(t, 3, rec.Count("DeleteBuffer"))
	assert.Empty(t, rec.LiveBuffers())
	assert.Empty(t, rec.Errors, "each buffer must be released exactly once")
	assert.True(t, rec.LiveProgram(m.Program()), "program is shared and stays alive")
	assert.ErrorIs(t, m.Draw(), ErrNoIndexBuffer)
}
