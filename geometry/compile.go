package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mastercactapus/gcview/palette"
	"github.com/mastercactapus/gcview/toolpath"
)

// ErrInvariant marks a defect in the compiler itself, never bad input.
var ErrInvariant = errors.New("geometry invariant violated")

// ExtrusionBatch is either a *LineBatch or an *InstanceBatch.
type ExtrusionBatch interface {
	Strategy() Strategy
	Len() int
	Each(fn func(i int, start, end mgl32.Vec3, c palette.RGBA))
	Release()
}

type Options struct {
	// LineThreshold is the extrusion count above which lines are used.
	LineThreshold int

	// ExtrusionWidth and ExtrusionHeight size the instanced box cross-section.
	ExtrusionWidth  float32
	ExtrusionHeight float32

	// MaxHeight is passed through to the summary.
	MaxHeight float64
}

func DefaultOptions() Options {
	return Options{
		LineThreshold:   DefaultLineThreshold,
		ExtrusionWidth:  0.4,
		ExtrusionHeight: 0.2,
	}
}

// Summary describes a compiled file for the UI.
type Summary struct {
	Strategy     Strategy `json:"strategy"`
	SegmentCount int      `json:"segmentCount"`
	TravelCount  int      `json:"travelCount"`
	MaxHeight    float64  `json:"maxHeight"`
}

// Geometry is the compiled, renderable form of one loaded file.
type Geometry struct {
	Extrusion ExtrusionBatch
	Travel    *LineBatch
	Summary   Summary

	released bool
}

// Compile consumes b and builds the geometry for it. b is empty afterwards.
func Compile(b *toolpath.Buckets, opt Options) (*Geometry, error) {
	extrusion, travel := b.Take()

	g := &Geometry{
		Summary: Summary{
			Strategy:     SelectStrategy(len(extrusion), opt.LineThreshold),
			SegmentCount: len(extrusion),
			TravelCount:  len(travel),
			MaxHeight:    opt.MaxHeight,
		},
	}

	var err error
	g.Travel, err = NewLineBatch(travel)
	if err != nil {
		return nil, err
	}
	g.Travel.Hidden = true

	switch g.Summary.Strategy {
	case StrategyLines:
		g.Extrusion, err = NewLineBatch(extrusion)
		if err != nil {
			return nil, err
		}
	case StrategyInstanced:
		base := NewBox(opt.ExtrusionWidth, opt.ExtrusionHeight)
		inst := NewInstanceBatch(base, len(extrusion), func(i int) Instance {
			return SegmentInstance(extrusion[i])
		})
		err = inst.Freeze()
		if err != nil {
			return nil, err
		}
		g.Extrusion = inst
	default:
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvariant, g.Summary.Strategy)
	}

	if g.Extrusion.Len() != len(extrusion) || g.Travel.Len() != len(travel) {
		return nil, fmt.Errorf("%w: compiled %d/%d segments from %d/%d", ErrInvariant,
			g.Extrusion.Len(), g.Travel.Len(), len(extrusion), len(travel))
	}

	return g, nil
}

// Released reports whether Release has been called.
func (g *Geometry) Released() bool { return g.released }

// Release drops all buffers. The geometry must not be drawn afterwards.
func (g *Geometry) Release() {
	if g.released {
		return
	}
	g.released = true
	if g.Extrusion != nil {
		g.Extrusion.Release()
	}
	if g.Travel != nil {
		g.Travel.Release()
	}
}
