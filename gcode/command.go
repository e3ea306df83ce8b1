package gcode

import (
	"math"
)

// Command is the decoded form of a Block. The set of implementations is
// closed; consumers switch on the concrete type.
type Command interface {
	command()
}

// LinearMove is G0/G1. Words holds the X, Y and Z words only. Extrude is
// set when an E word is present.
type LinearMove struct {
	Rapid   bool
	Words   Block
	Extrude bool
}

// Home is G28. Axis words are accepted and ignored: every axis is homed.
type Home struct{}

// SetAbsolute is G90.
type SetAbsolute struct{}

// SetRelative is G91.
type SetRelative struct{}

// SetOrigin is G92. It is recognized but has no effect on the position.
type SetOrigin struct{ Words Block }

// SetMixRatios is M567 with its E list.
type SetMixRatios struct{ Ratios []float64 }

// SelectTool is T<n>.
type SelectTool struct{ Tool int }

// Unknown is any block without visual effect.
type Unknown struct{ Block Block }

func (LinearMove) command()   {}
func (Home) command()         {}
func (SetAbsolute) command()  {}
func (SetRelative) command()  {}
func (SetOrigin) command()    {}
func (SetMixRatios) command() {}
func (SelectTool) command()   {}
func (Unknown) command()      {}

// axes returns the X, Y and Z words of b, in order.
func axes(b Block) Block {
	var res Block
	for _, w := range b.Params() {
		if w.IsAxis() {
			res = append(res, w)
		}
	}
	return res
}

// Decode classifies a block.
func Decode(b Block) Command {
	c := b.Command()
	switch {
	case c.Is('G', 0), c.Is('G', 1):
		_, extrude := b.Word('E')
		return LinearMove{Rapid: c.Arg == 0, Words: axes(b), Extrude: extrude}
	case c.Is('G', 28):
		return Home{}
	case c.Is('G', 90):
		return SetAbsolute{}
	case c.Is('G', 91):
		return SetRelative{}
	case c.Is('G', 92):
		return SetOrigin{Words: b.Params()}
	case c.Is('M', 567):
		if e, ok := b.Word('E'); ok {
			return SetMixRatios{Ratios: e.List()}
		}
	case c.W == 'T':
		if !math.IsNaN(c.Arg) && c.Arg >= 0 && c.Arg == math.Trunc(c.Arg) {
			return SelectTool{Tool: int(c.Arg)}
		}
	}

	if len(b) == 0 {
		return Unknown{}
	}
	return Unknown{Block: b}
}
