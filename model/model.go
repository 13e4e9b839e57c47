package model

import (
	"errors"
	"fmt"
)

// ErrNoGesture is returned when a gesture is completed without a prior Begin.
var ErrNoGesture = errors.New("no gesture in progress")

// Model owns everything the user has drawn. At most one multi-click gesture
// can be in progress; it is represented by the pending begin point.
type Model struct {
	begin *Point

	points   []Point
	lines    []Line
	rays     []Ray
	segments []Segment
}

func NewModel() *Model {
	return &Model{}
}

func (m *Model) AddPoint(p Point) {
	m.points = append(m.points, p)
}

// Begin starts a two-click gesture at p. Calling it while a gesture is
// already ongoing restarts the gesture at p.
func (m *Model) Begin(p Point) {
	m.begin = &p
}

func (m *Model) EndLine(p Point) error {
	begin, err := m.take("line")
	if err != nil {
		return err
	}
	m.lines = append(m.lines, Line{P1: begin, P2: p})
	return nil
}

func (m *Model) EndRay(p Point) error {
	begin, err := m.take("ray")
	if err != nil {
		return err
	}
	m.rays = append(m.rays, Ray{P1: begin, P2: p})
	return nil
}

func (m *Model) EndSegment(p Point) error {
	begin, err := m.take("segment")
	if err != nil {
		return err
	}
	m.segments = append(m.segments, Segment{P1: begin, P2: p})
	return nil
}

// take hands out the pending begin point and clears it.
func (m *Model) take(kind string) (Point, error) {
	if m.begin == nil {
		return Point{}, fmt.Errorf("cannot end %s: %w", kind, ErrNoGesture)
	}
	p := *m.begin
	m.begin = nil
	return p, nil
}

func (m *Model) Cancel() {
	m.begin = nil
}

func (m *Model) IsOngoing() bool {
	return m.begin != nil
}

// Pending returns the begin point of the ongoing gesture.
func (m *Model) Pending() (Point, bool) {
	if m.begin == nil {
		return Point{}, false
	}
	return *m.begin, true
}

// Points returns a copy; changing it does not affect the model.
func (m *Model) Points() []Point {
	return append([]Point(nil), m.points...)
}

func (m *Model) Lines() []Line {
	return append([]Line(nil), m.lines...)
}

func (m *Model) Rays() []Ray {
	return append([]Ray(nil), m.rays...)
}

func (m *Model) Segments() []Segment {
	return append([]Segment(nil), m.segments...)
}
