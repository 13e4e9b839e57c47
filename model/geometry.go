package model

import (
	"fmt"

	vm "github.com/kkerchmar/LinearPerspectiveTool/vector_math"
)

// Point is a position in surface coordinates. The origin is the top-left
// corner of the drawing surface and y grows downwards, matching input events.
type Point struct {
	X, Y float32
}

func NewPoint(x float32, y float32) Point {
	return Point{X: x, Y: y}
}

// Vec converts the point into a vector from the surface origin.
func (p Point) Vec() vm.Vec2 {
	return vm.Vec2{X: p.X, Y: p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Line is an infinite line through P1 and P2.
type Line struct {
	P1, P2 Point
}

// Ray starts at P1 and passes through P2.
type Ray struct {
	P1, P2 Point
}

// Segment is bounded by P1 and P2.
type Segment struct {
	P1, P2 Point
}

// Degenerate reports whether both defining points coincide, in which case no
// direction can be derived.
func (l Line) Degenerate() bool {
	return l.P1 == l.P2
}

func (l Line) String() string {
	return fmt.Sprintf("Line%v-%v", l.P1, l.P2)
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray%v-%v", r.P1, r.P2)
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment%v-%v", s.P1, s.P2)
}
