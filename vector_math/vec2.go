package vector_math

import "github.com/chewxy/math32"

// Vec2 is a transient 2D value used for edge and normal computations in
// surface space.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Dot(w Vec2) float32 {
	return (v.X * w.X) + (v.Y * w.Y)
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{
		X: v.X - w.X,
		Y: v.Y - w.Y,
	}
}

// Perp returns v rotated by 90 degrees counter-clockwise, (-y, x).
func (v Vec2) Perp() Vec2 {
	return Vec2{
		X: -v.Y,
		Y: v.X,
	}
}

func (v Vec2) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Finite reports whether neither component is NaN or infinite.
func (v Vec2) Finite() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) &&
		!math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

// Norm returns the unit vector pointing in the direction of v. v is first
// divided by its largest component so the squared length neither underflows
// nor overflows. The zero vector has no direction and yields NaN components.
func (v Vec2) Norm() Vec2 {
	m := math32.Max(math32.Abs(v.X), math32.Abs(v.Y))
	s := Vec2{X: v.X / m, Y: v.Y / m}
	l := s.Len()
	return Vec2{
		X: s.X / l,
		Y: s.Y / l,
	}
}
