// Package toolbox turns clicks into model edits according to the active tool.
package toolbox

import (
	"fmt"
	"log"
	"strings"

	"github.com/kkerchmar/LinearPerspectiveTool/model"
)

type Tool uint8

const (
	Point Tool = iota
	Line
	Ray
	Segment
)

var toolNames = [...]string{
	Point:   "point",
	Line:    "line",
	Ray:     "ray",
	Segment: "segment",
}

// Tools lists every tool in selection key order.
var Tools = []Tool{Point, Line, Ray, Segment}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", uint8(t))
}

// ParseTool accepts a tool name, case insensitive.
func ParseTool(name string) (Tool, error) {
	for i, n := range toolNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q, expected one of %s", name, strings.Join(toolNames[:], ", "))
}

// Toolbox holds the active tool and applies clicks to one model.
type Toolbox struct {
	model    *model.Model
	selected Tool
}

func New(m *model.Model, initial Tool) *Toolbox {
	return &Toolbox{model: m, selected: initial}
}

func (tb *Toolbox) Selected() Tool {
	return tb.selected
}

// Select switches the active tool. A gesture started with another tool is
// dropped.
func (tb *Toolbox) Select(t Tool) {
	if t == tb.selected {
		return
	}
	if tb.model.IsOngoing() {
		tb.model.Cancel()
		log.Printf("Cancelled %s gesture", tb.selected)
	}
	tb.selected = t
	log.Printf("Selected tool: %s", t)
}

// Cancel drops the ongoing gesture and reports whether there was one.
func (tb *Toolbox) Cancel() bool {
	if !tb.model.IsOngoing() {
		return false
	}
	tb.model.Cancel()
	return true
}

// Click applies one click at p. The point tool adds a point right away, the
// others begin a gesture on the first click and complete it on the second.
func (tb *Toolbox) Click(p model.Point) error {
	if tb.selected == Point {
		tb.model.AddPoint(p)
		return nil
	}
	if !tb.model.IsOngoing() {
		tb.model.Begin(p)
		return nil
	}

	switch tb.selected {
	case Line:
		return tb.model.EndLine(p)
	case Ray:
		return tb.model.EndRay(p)
	case Segment:
		return tb.model.EndSegment(p)
	default:
		return fmt.Errorf("click with %s", tb.selected)
	}
}
