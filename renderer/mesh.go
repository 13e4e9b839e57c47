package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
)

// BufferInfo ties a vertex buffer to the attribute slot it feeds.
type BufferInfo struct {
	Location   gpu.AttribLocation
	Buffer     gpu.Buffer
	Components int32
}

// Mesh owns a set of vertex buffers, an index buffer and the uniforms pushed
// when it is drawn. The program is shared and never deleted by the mesh.
type Mesh struct {
	ctx     gpu.Context
	program gpu.Program

	buffers     []BufferInfo
	indexBuffer gpu.Buffer
	indexCount  int32
	uniforms    []Uniform
}

// NewMesh creates an empty mesh drawing with program.
func NewMesh(ctx gpu.Context, program gpu.Program) *Mesh {
	return &Mesh{
		ctx:     ctx,
		program: program,
	}
}

// Program is the shader program the mesh draws with.
func (m *Mesh) Program() gpu.Program {
	return m.program
}

// Buffers returns a copy of the vertex buffer table in insertion order.
func (m *Mesh) Buffers() []BufferInfo {
	return append([]BufferInfo(nil), m.buffers...)
}

// IndexCount is the number of indices in the current index buffer.
func (m *Mesh) IndexCount() int32 {
	return m.indexCount
}

// AddBuffer uploads tightly packed float vertex data for the named attribute.
func (m *Mesh) AddBuffer(attribute string, data []float32, components int32) error {
	if components < 1 || components > 4 || len(data)%int(components) != 0 {
		return fmt.Errorf("attribute %q with %d floats and %d components: %w",
			attribute, len(data), components, ErrBufferLayout)
	}

	buffer := m.ctx.CreateBuffer()
	m.ctx.BindBuffer(gpu.ArrayBuffer, buffer)
	m.ctx.BufferFloat32(gpu.ArrayBuffer, data)

	location := m.ctx.AttribLocation(m.program, attribute)
	if !location.Valid() {
		m.ctx.DeleteBuffer(buffer)
		return &SymbolError{Name: attribute, Err: ErrUnknownAttribute}
	}

	m.buffers = append(m.buffers, BufferInfo{
		Location:   location,
		Buffer:     buffer,
		Components: components,
	})
	return nil
}

// SetIndexBuffer replaces the triangle list indices. Any previous index
// buffer is released first.
func (m *Mesh) SetIndexBuffer(indices []uint16) error {
	if len(indices) == 0 {
		return ErrEmptyIndexBuffer
	}
	m.releaseIndexBuffer()

	m.indexBuffer = m.ctx.CreateBuffer()
	m.ctx.BindBuffer(gpu.ElementArrayBuffer, m.indexBuffer)
	m.ctx.BufferUint16(gpu.ElementArrayBuffer, indices)
	m.indexCount = int32(len(indices))
	return nil
}

func (m *Mesh) releaseIndexBuffer() {
	if m.indexBuffer == 0 {
		return
	}
	m.ctx.DeleteBuffer(m.indexBuffer)
	m.indexBuffer = 0
	m.indexCount = 0
}

func (m *Mesh) resolveUniform(name string) (uniformSlot, error) {
	location := m.ctx.UniformLocation(m.program, name)
	if !location.Valid() {
		return uniformSlot{}, &SymbolError{Name: name, Err: ErrUnknownUniform}
	}
	return uniformSlot{name: name, location: location}, nil
}

func (m *Mesh) CreateUniform1f(name string, value float32) (*Uniform1f, error) {
	slot, err := m.resolveUniform(name)
	if err != nil {
		return nil, err
	}
	u := &Uniform1f{uniformSlot: slot, Value: value}
	m.uniforms = append(m.uniforms, u)
	return u, nil
}

func (m *Mesh) CreateUniform2f(name string, value mgl32.Vec2) (*Uniform2f, error) {
	slot, err := m.resolveUniform(name)
	if err != nil {
		return nil, err
	}
	u := &Uniform2f{uniformSlot: slot, Value: value}
	m.uniforms = append(m.uniforms, u)
	return u, nil
}

func (m *Mesh) CreateUniform3f(name string, value mgl32.Vec3) (*Uniform3f, error) {
	slot, err := m.resolveUniform(name)
	if err != nil {
		return nil, err
	}
	u := &Uniform3f{uniformSlot: slot, Value: value}
	m.uniforms = append(m.uniforms, u)
	return u, nil
}

func (m *Mesh) CreateUniformMatrix4(name string, value mgl32.Mat4) (*UniformMatrix4, error) {
	slot, err := m.resolveUniform(name)
	if err != nil {
		return nil, err
	}
	u := &UniformMatrix4{uniformSlot: slot, Value: value}
	m.uniforms = append(m.uniforms, u)
	return u, nil
}

// Draw issues one indexed triangle draw with the mesh's program, buffers and
// uniforms. Attribute slots enabled here are disabled again afterwards.
func (m *Mesh) Draw() error {
	if m.indexBuffer == 0 {
		return ErrNoIndexBuffer
	}

	m.ctx.UseProgram(m.program)
	for _, b := range m.buffers {
		m.ctx.BindBuffer(gpu.ArrayBuffer, b.Buffer)
		m.ctx.VertexAttribPointer(b.Location, b.Components, gpu.Float, false, 0, 0)
		m.ctx.EnableVertexAttribArray(b.Location)
	}
	for _, u := range m.uniforms {
		u.push(m.ctx)
	}

	m.ctx.BindBuffer(gpu.ElementArrayBuffer, m.indexBuffer)
	m.ctx.DrawElements(gpu.Triangles, m.indexCount, gpu.UnsignedShort, 0)

	for _, b := range m.buffers {
		m.ctx.DisableVertexAttribArray(b.Location)
	}
	return nil
}

// Dispose releases the vertex and index buffers. The program and uniform
// locations are left untouched. Calling it again is a no-op.
func (m *Mesh) Dispose() {
	if len(m.buffers) == 0 && m.indexBuffer == 0 {
		return
	}
	for _, b := range m.buffers {
		m.ctx.DeleteBuffer(b.Buffer)
	}
	m.buffers = nil
	m.releaseIndexBuffer()
	log.Printf("Disposed mesh of program %v", m.program)
}
