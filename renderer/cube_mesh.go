package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
	vm "github.com/kkerchmar/LinearPerspectiveTool/vector_math"
)

const (
	cubeFovDeg   = 45
	cubeNear     = 0.1
	cubeFar      = 100
	cubeDistance = -6
	// Rotation speed in radians per millisecond, and the Y axis share of it.
	cubeSpin  = 0.001
	cubeYSpin = 0.7
)

// Each face has its own four vertices so the color can stay constant per face.
var cubePositions = []float32{
	-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, 1, // front
	-1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1, -1, // back
	-1, 1, -1, -1, 1, 1, 1, 1, 1, 1, 1, -1, // top
	-1, -1, -1, 1, -1, -1, 1, -1, 1, -1, -1, 1, // bottom
	1, -1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, // right
	-1, -1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1, // left
}

var cubeFaceColors = [6]mgl32.Vec4{
	{1, 1, 1, 1}, // white
	{1, 0, 0, 1}, // red
	{0, 1, 0, 1}, // green
	{0, 0, 1, 1}, // blue
	{1, 1, 0, 1}, // yellow
	{1, 0, 1, 1}, // purple
}

func cubeColors() []float32 {
	colors := make([]float32, 0, len(cubeFaceColors)*4*4)
	for _, c := range cubeFaceColors {
		for i := 0; i < 4; i++ {
			colors = append(colors, c[:]...)
		}
	}
	return colors
}

// Two triangles per face, (0,1,2) and (0,2,3) of the face's quad.
func cubeIndices() []uint16 {
	indices := make([]uint16, 0, 36)
	for face := uint16(0); face < 6; face++ {
		base := face * 4
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return indices
}

// CubeMesh is the rotating reference cube drawn behind the user's geometry.
type CubeMesh struct {
	*Mesh

	modelView  *UniformMatrix4
	projection *UniformMatrix4
	rotation   float64
}

// NewCubeMesh compiles the cube program and uploads the cube geometry.
func NewCubeMesh(ctx gpu.Context) (*CubeMesh, error) {
	program, err := LoadProgram(ctx, cubeVertexShader, colorFragmentShader)
	if err != nil {
		return nil, err
	}

	c := &CubeMesh{Mesh: NewMesh(ctx, program)}
	if err := c.build(); err != nil {
		c.Dispose()
		return nil, err
	}
	return c, nil
}

func (c *CubeMesh) build() error {
	if err := c.AddBuffer("aVertexPosition", cubePositions, 3); err != nil {
		return err
	}
	if err := c.AddBuffer("aVertexColor", cubeColors(), 4); err != nil {
		return err
	}
	if err := c.SetIndexBuffer(cubeIndices()); err != nil {
		return err
	}

	var err error
	if c.modelView, err = c.CreateUniformMatrix4("uModelViewMatrix", mgl32.Ident4()); err != nil {
		return err
	}
	if c.projection, err = c.CreateUniformMatrix4("uProjectionMatrix", mgl32.Ident4()); err != nil {
		return err
	}
	return nil
}

// Rotation is the accumulated angle in radians.
func (c *CubeMesh) Rotation() float64 {
	return c.rotation
}

// Update advances the rotation by the elapsed milliseconds and recomputes both
// matrices for the current surface size.
func (c *CubeMesh) Update(deltaMs float64) {
	c.rotation += deltaMs * cubeSpin

	w, h := c.ctx.DrawableSize()
	if h > 0 {
		aspect := float32(w) / float32(h)
		c.projection.Value = mgl32.Perspective(float32(vm.ToRad(cubeFovDeg)), aspect, cubeNear, cubeFar)
	}
	c.modelView.Value = cubeModelView(c.rotation)
}

func cubeModelView(rotation float64) mgl32.Mat4 {
	rot := float32(rotation)
	return mgl32.Translate3D(0, 0, cubeDistance).
		Mul4(mgl32.HomogRotate3DZ(rot)).
		Mul4(mgl32.HomogRotate3DY(rot * cubeYSpin))
}

// Dispose releases the buffers and, unlike a plain Mesh, the program the cube
// created for itself.
func (c *CubeMesh) Dispose() {
	c.Mesh.Dispose()
	if c.program != 0 {
		c.ctx.DeleteProgram(c.program)
		c.program = 0
	}
}
