package toolbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkerchmar/LinearPerspectiveTool/model"
)

func TestParseTool(t *testing.T) {
	for _, tool := range Tools {
		parsed, err := ParseTool(tool.String())
		require.NoError(t, err)
		assert.Equal(t, tool, parsed)
	}

	parsed, err := ParseTool(" Segment ")
	require.NoError(t, err)
	assert.Equal(t, Segment, parsed)

	_, err = ParseTool("circle")
	assert.ErrorContains(t, err, "circle")
}

func TestClickPoint(t *testing.T) {
	m := model.NewModel()
	tb := New(m, Point)

	require.NoError(t, tb.Click(model.NewPoint(1, 2)))
	require.NoError(t, tb.Click(model.NewPoint(3, 4)))

	assert.Equal(t, []model.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, m.Points())
	assert.False(t, m.IsOngoing())
}

func TestClickTwoPointTools(t *testing.T) {
	m := model.NewModel()
	tb := New(m, Line)
	a, b := model.NewPoint(0, 0), model.NewPoint(5, 5)

	require.NoError(t, tb.Click(a))
	assert.True(t, m.IsOngoing())
	require.NoError(t, tb.Click(b))
	assert.Equal(t, []model.Line{{P1: a, P2: b}}, m.Lines())

	tb.Select(Ray)
	require.NoError(t, tb.Click(a))
	require.NoError(t, tb.Click(b))
	assert.Equal(t, []model.Ray{{P1: a, P2: b}}, m.Rays())

	tb.Select(Segment)
	require.NoError(t, tb.Click(b))
	require.NoError(t, tb.Click(a))
	assert.Equal(t, []model.Segment{{P1: b, P2: a}}, m.Segments())
	assert.False(t, m.IsOngoing())
}

func TestSelectCancelsGesture(t *testing.T) {
	m := model.NewModel()
	tb := New(m, Line)

	require.NoError(t, tb.Click(model.NewPoint(1, 1)))
	tb.Select(Segment)

	assert.Equal(t, Segment, tb.Selected())
	assert.False(t, m.IsOngoing())
	assert.Empty(t, m.Lines())
}

func TestSelectSameToolKeepsGesture(t *testing.T) {
	m := model.NewModel()
	tb := New(m, Ray)

	require.NoError(t, tb.Click(model.NewPoint(1, 1)))
	tb.Select(Ray)
	assert.True(t, m.IsOngoing())
}

func TestCancel(t *testing.T) {
	m := model.NewModel()
	tb := New(m, Segment)

	assert.False(t, tb.Cancel())
	require.NoError(t, tb.Click(model.NewPoint(1, 1)))
	assert.True(t, tb.Cancel())
	assert.False(t, m.IsOngoing())
	assert.Empty(t, m.Segments())
}
