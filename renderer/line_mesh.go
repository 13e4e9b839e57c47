package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
	"github.com/kkerchmar/LinearPerspectiveTool/model"
	vm "github.com/kkerchmar/LinearPerspectiveTool/vector_math"
)

const (
	lineDepth = -0.5
	lineNear  = 0.1
	lineFar   = 100
)

// The quad is built from two endpoint uniforms, so the vertex data never
// changes: a side multiplier, a color and the endpoint index per vertex.
var (
	lineSides       = []float32{1, -1, -1, 1}
	lineColors      = []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	linePointIndex  = []float32{0, 0, 1, 1}
	lineQuadIndices = []uint16{0, 1, 2, 0, 2, 3}
)

// LineMesh draws a thick line between two points given in top-left origin
// surface coordinates.
type LineMesh struct {
	*Mesh

	width      float32
	start, end model.Point
	degenerate bool

	lineWidth  *Uniform1f
	normal     *Uniform2f
	pointA     *Uniform3f
	pointB     *Uniform3f
	projection *UniformMatrix4
}

// NewLineMesh compiles the line program and uploads the static quad.
func NewLineMesh(ctx gpu.Context, width float32, start model.Point, end model.Point) (*LineMesh, error) {
	program, err := LoadProgram(ctx, lineVertexShader, colorFragmentShader)
	if err != nil {
		return nil, err
	}

	l := &LineMesh{
		Mesh:  NewMesh(ctx, program),
		width: width,
		start: start,
		end:   end,
	}
	if err := l.build(); err != nil {
		l.Dispose()
		return nil, err
	}
	return l, nil
}

func (l *LineMesh) build() error {
	if err := l.AddBuffer("aPosition", lineSides, 1); err != nil {
		return err
	}
	if err := l.AddBuffer("aColor", lineColors, 4); err != nil {
		return err
	}
	if err := l.AddBuffer("aPointIndex", linePointIndex, 1); err != nil {
		return err
	}
	if err := l.SetIndexBuffer(lineQuadIndices); err != nil {
		return err
	}

	var err error
	if l.lineWidth, err = l.CreateUniform1f("uLineWidth", l.width); err != nil {
		return err
	}
	if l.normal, err = l.CreateUniform2f("uNormal", mgl32.Vec2{}); err != nil {
		return err
	}
	if l.pointA, err = l.CreateUniform3f("uPoints[0]", mgl32.Vec3{}); err != nil {
		return err
	}
	if l.pointB, err = l.CreateUniform3f("uPoints[1]", mgl32.Vec3{}); err != nil {
		return err
	}
	if _, err = l.CreateUniformMatrix4("uModelViewMatrix", mgl32.Ident4()); err != nil {
		return err
	}
	if l.projection, err = l.CreateUniformMatrix4("uProjectionMatrix", mgl32.Ident4()); err != nil {
		return err
	}
	return nil
}

func (l *LineMesh) Width() float32 {
	return l.width
}

// SetWidth sets the total thickness of the line in pixels.
func (l *LineMesh) SetWidth(width float32) {
	l.width = width
	l.lineWidth.Value = width
}

func (l *LineMesh) Start() model.Point {
	return l.start
}

func (l *LineMesh) End() model.Point {
	return l.end
}

func (l *LineMesh) SetStart(p model.Point) {
	l.start = p
}

func (l *LineMesh) SetEnd(p model.Point) {
	l.end = p
}

// Degenerate reports whether the last Update found no direction between the
// endpoints, either because they coincide or because the edge is not finite.
func (l *LineMesh) Degenerate() bool {
	return l.degenerate
}

// Update moves the endpoints into the bottom-left origin space of the surface
// and recomputes the normal and the pixel space projection.
func (l *LineMesh) Update() {
	w, h := l.ctx.DrawableSize()
	width, height := float32(w), float32(h)

	a, b := l.start.Vec(), l.end.Vec()
	a.Y = vm.FlipY(a.Y, height)
	b.Y = vm.FlipY(b.Y, height)

	var n vm.Vec2
	if !(model.Line{P1: l.start, P2: l.end}).Degenerate() {
		n = b.Sub(a).Perp().Norm()
	}
	l.degenerate = !n.Finite() || n == vm.Vec2{}
	if l.degenerate {
		// Zero-width quad, nothing gets rasterized.
		n = vm.Vec2{}
	}
	l.normal.Value = mgl32.Vec2{n.X, n.Y}

	l.lineWidth.Value = l.width
	l.pointA.Value = mgl32.Vec3{a.X, a.Y, lineDepth}
	l.pointB.Value = mgl32.Vec3{b.X, b.Y, lineDepth}
	l.projection.Value = mgl32.Ortho(0, width, 0, height, lineNear, lineFar)
}

// Dispose releases the buffers and the line program.
func (l *LineMesh) Dispose() {
	l.Mesh.Dispose()
	if l.program != 0 {
		l.ctx.DeleteProgram(l.program)
		l.program = 0
	}
}
