package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mastercactapus/gcview/palette"
	"github.com/mastercactapus/gcview/toolpath"
)

// LineBatch is a list of two-point colored line primitives in render space.
// Positions holds 2 vertices of 3 floats per line; Colors holds 2 vertices
// of RGBA per line.
type LineBatch struct {
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
	Hidden    bool      `json:"hidden"`
}

var _ ExtrusionBatch = &LineBatch{}

const (
	lineStride  = 6
	colorStride = 8
)

// NewLineBatch converts segs into a line batch.
func NewLineBatch(segs []toolpath.Segment) (*LineBatch, error) {
	b := &LineBatch{
		Positions: make([]float32, 0, len(segs)*lineStride),
		Colors:    make([]float32, 0, len(segs)*colorStride),
	}
	for _, s := range segs {
		a, e := RenderPoint(s.Start), RenderPoint(s.End)
		b.Positions = append(b.Positions, a[0], a[1], a[2], e[0], e[1], e[2])
		c := color32(s.Color)
		b.Colors = append(b.Colors, c[0], c[1], c[2], c[3], c[0], c[1], c[2], c[3])
	}

	if len(b.Positions) != len(segs)*lineStride || len(b.Colors) != len(segs)*colorStride {
		return nil, fmt.Errorf("%w: line batch has %d positions and %d colors for %d segments",
			ErrInvariant, len(b.Positions), len(b.Colors), len(segs))
	}
	return b, nil
}

func (b *LineBatch) Strategy() Strategy { return StrategyLines }
func (b *LineBatch) Len() int           { return len(b.Positions) / lineStride }

// SetVisible toggles the batch without touching its buffers.
func (b *LineBatch) SetVisible(v bool) { b.Hidden = !v }

// Each calls fn with the render space endpoints and color of every line.
func (b *LineBatch) Each(fn func(i int, start, end mgl32.Vec3, c palette.RGBA)) {
	for i := 0; i < b.Len(); i++ {
		p := b.Positions[i*lineStride:]
		c := b.Colors[i*colorStride:]
		fn(i,
			mgl32.Vec3{p[0], p[1], p[2]},
			mgl32.Vec3{p[3], p[4], p[5]},
			palette.RGBA{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])},
		)
	}
}

func (b *LineBatch) Release() {
	b.Positions = nil
	b.Colors = nil
}
