package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counts(m *Model) [4]int {
	return [4]int{len(m.Points()), len(m.Lines()), len(m.Rays()), len(m.Segments())}
}

func TestAddPointReturnsCopy(t *testing.T) {
	m := NewModel()
	m.AddPoint(NewPoint(1, 2))

	points := m.Points()
	require.Equal(t, []Point{{X: 1, Y: 2}}, points)

	points[0] = NewPoint(99, 99)
	assert.Equal(t, []Point{{X: 1, Y: 2}}, m.Points())
}

func TestGestureCompletion(t *testing.T) {
	tests := []struct {
		name   string
		end    func(*Model, Point) error
		counts [4]int
	}{
		{"line", (*Model).EndLine, [4]int{0, 1, 0, 0}},
		{"ray", (*Model).EndRay, [4]int{0, 0, 1, 0}},
		{"segment", (*Model).EndSegment, [4]int{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.Begin(NewPoint(5, 6))
			require.True(t, m.IsOngoing())

			require.NoError(t, tt.end(m, NewPoint(7, 8)))
			assert.False(t, m.IsOngoing())
			_, pending := m.Pending()
			assert.False(t, pending)
			assert.Equal(t, tt.counts, counts(m))
		})
	}
}

func TestSegmentScenario(t *testing.T) {
	m := NewModel()
	m.Begin(NewPoint(0, 0))
	assert.True(t, m.IsOngoing())

	require.NoError(t, m.EndSegment(NewPoint(10, 10)))
	assert.Equal(t, []Segment{{P1: Point{0, 0}, P2: Point{10, 10}}}, m.Segments())
	assert.False(t, m.IsOngoing())
}

func TestCancel(t *testing.T) {
	m := NewModel()
	m.AddPoint(NewPoint(1, 1))
	before := counts(m)

	m.Begin(NewPoint(3, 3))
	m.Cancel()

	assert.False(t, m.IsOngoing())
	assert.Equal(t, before, counts(m))
}

func TestEndWithoutBegin(t *testing.T) {
	m := NewModel()

	assert.ErrorIs(t, m.EndLine(NewPoint(1, 1)), ErrNoGesture)
	assert.ErrorIs(t, m.EndRay(NewPoint(1, 1)), ErrNoGesture)
	assert.ErrorIs(t, m.EndSegment(NewPoint(1, 1)), ErrNoGesture)
	assert.Equal(t, [4]int{}, counts(m))

	// A completed gesture cannot be completed twice.
	m.Begin(NewPoint(0, 0))
	require.NoError(t, m.EndLine(NewPoint(1, 1)))
	assert.ErrorIs(t, m.EndLine(NewPoint(2, 2)), ErrNoGesture)
	assert.Len(t, m.Lines(), 1)
}

func TestBeginRestartsGesture(t *testing.T) {
	m := NewModel()
	m.Begin(NewPoint(1, 1))
	m.Begin(NewPoint(2, 2))

	p, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, NewPoint(2, 2), p)

	require.NoError(t, m.EndLine(NewPoint(3, 3)))
	assert.Equal(t, []Line{{P1: Point{2, 2}, P2: Point{3, 3}}}, m.Lines())
}

func TestLineDegenerate(t *testing.T) {
	assert.True(t, Line{P1: Point{4, 4}, P2: Point{4, 4}}.Degenerate())
	assert.False(t, Line{P1: Point{4, 4}, P2: Point{4, 5}}.Degenerate())
	assert.Equal(t, "Line(1, 2)-(3, 4)", Line{P1: Point{1, 2}, P2: Point{3, 4}}.String())
}
