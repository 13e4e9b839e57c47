package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kkerchmar/LinearPerspectiveTool/config"
	"github.com/kkerchmar/LinearPerspectiveTool/model"
)

func TestParseLine(t *testing.T) {
	l, err := parseLine("1, 2.5,30,-4")
	require.NoError(t, err)
	assert.Equal(t, model.Line{P1: model.NewPoint(1, 2.5), P2: model.NewPoint(30, -4)}, l)

	_, err = parseLine("1,2,3")
	assert.Error(t, err)
	_, err = parseLine("1,2,3,x")
	assert.Error(t, err)

	for _, bad := range []string{"NaN,0,1,1", "0,Inf,1,1", "0,0,-inf,1", "0,0,1,1e39"} {
		_, err = parseLine(bad)
		assert.Error(t, err, bad)
	}
}

type traceDoc struct {
	Width  int32 `yaml:"width"`
	Height int32 `yaml:"height"`
	Calls  []struct {
		Call string `yaml:"call"`
	} `yaml:"calls"`
	Errors []string `yaml:"errors"`
}

func drawCount(doc traceDoc) int {
	n := 0
	for _, c := range doc.Calls {
		if c.Call == "DrawElements" {
			n++
		}
	}
	return n
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	err := trace(&buf, config.Default(), traceOptions{
		frames:  2,
		width:   320,
		height:  240,
		deltaMs: 16,
		lines:   []string{"0,0,100,100", "10,10,20,10"},
	})
	require.NoError(t, err)

	var doc traceDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, int32(320), doc.Width)
	assert.Empty(t, doc.Errors)
	// cube plus two lines, twice
	assert.Equal(t, 6, drawCount(doc))
}

func TestTracePlaceholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, trace(&buf, config.Default(), traceOptions{frames: 3, width: 800, height: 600, deltaMs: 16}))

	var doc traceDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 6, drawCount(doc))
}

func TestTraceRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, trace(&buf, config.Default(), traceOptions{frames: 0, width: 800, height: 600}))
	assert.Error(t, trace(&buf, config.Default(), traceOptions{frames: 1, width: 800, height: 600, lines: []string{"nope"}}))
}
