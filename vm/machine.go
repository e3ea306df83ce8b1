// Package vm tracks machine state while interpreting decoded G-code.
package vm

import (
	"github.com/mastercactapus/gcview/coord"
	"github.com/mastercactapus/gcview/gcode"
	"github.com/mastercactapus/gcview/palette"
	"github.com/mastercactapus/gcview/toolpath"
)

// State is the interpreter state for a single file.
type State struct {
	Pos       coord.Point
	Absolute  bool
	Color     palette.RGBA
	MaxHeight float64
	Ratios    []float64
}

// Machine interprets commands one at a time, strictly in input order.
// A Machine belongs to exactly one load and must not be shared.
type Machine struct {
	State

	colors palette.ColorTable
}

// NewMachine starts in absolute mode at the origin with the color of tool 0.
func NewMachine(colors palette.ColorTable) *Machine {
	m := &Machine{colors: colors}
	m.Absolute = true
	m.Color = palette.White
	if c, ok := colors.Tool(0); ok {
		m.Color = c
	}
	return m
}

func (m Machine) RelativeMotion() bool { return !m.Absolute }

func applyBlock(p coord.Point, b gcode.Block) coord.Point {
	for _, g := range b {
		switch g.W {
		case 'X':
			p.X = g.Arg
		case 'Y':
			p.Y = g.Arg
		case 'Z':
			p.Z = g.Arg
		}
	}

	return p
}

func (m *Machine) move(words gcode.Block) {
	if m.RelativeMotion() {
		m.Pos = m.Pos.Add(applyBlock(coord.Point{}, words))
	} else {
		m.Pos = applyBlock(m.Pos, words)
	}

	// NaN compares false so malformed heights never reach MaxHeight
	if m.Pos.Z > m.MaxHeight {
		m.MaxHeight = m.Pos.Z
	}
}

// Run applies cmd. Linear moves return the resulting segment.
func (m *Machine) Run(cmd gcode.Command) (toolpath.Segment, bool) {
	switch c := cmd.(type) {
	case gcode.LinearMove:
		start := m.Pos
		m.move(c.Words)
		return toolpath.Segment{
			Start:     start,
			End:       m.Pos,
			Extruding: c.Extrude,
			Color:     m.Color,
		}, true
	case gcode.Home:
		m.Pos = coord.Point{}
	case gcode.SetAbsolute:
		m.Absolute = true
	case gcode.SetRelative:
		m.Absolute = false
	case gcode.SetOrigin:
		// TODO: apply G92 as a work offset once the viewer tracks one; until
		// then positions after G92 are drawn in the previous frame.
	case gcode.SetMixRatios:
		m.Ratios = c.Ratios
		m.Color = palette.Mix(m.colors, m.Ratios)
	case gcode.SelectTool:
		if col, ok := m.colors.Tool(c.Tool); ok {
			m.Color = col
		}
	case gcode.Unknown:
	default:
		panic("vm: unhandled command type")
	}

	return toolpath.Segment{}, false
}

// RunBlock decodes and runs b.
func (m *Machine) RunBlock(b gcode.Block) (toolpath.Segment, bool) {
	return m.Run(gcode.Decode(b))
}

// MaxHeightSeen is the highest Z reached so far, never below zero.
func (m Machine) MaxHeightSeen() float64 { return m.MaxHeight }
