package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mastercactapus/gcview/palette"
	"github.com/mastercactapus/gcview/toolpath"
)

// Instance places one copy of the base primitive.
type Instance struct {
	Position  mgl32.Vec3   `json:"position"`
	RotationY float32      `json:"rotationY"`
	ScaleX    float32      `json:"scaleX"`
	Color     palette.RGBA `json:"color"`

	// Run is the horizontal length of the segment. It differs from ScaleX
	// only for sloped moves.
	Run float32 `json:"run"`
}

// Transform returns the instance world matrix: translate * rotateY * scaleX.
func (in Instance) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(in.Position[0], in.Position[1], in.Position[2]).
		Mul4(mgl32.HomogRotate3DY(in.RotationY)).
		Mul4(mgl32.Scale3D(in.ScaleX, 1, 1))
}

// SegmentInstance stretches the box along s. The box is centered between the
// segment ends horizontally but sits at the start height; heading is taken
// from the horizontal delta only.
func SegmentInstance(s toolpath.Segment) Instance {
	start, end := RenderPoint(s.Start), RenderPoint(s.End)
	d := end.Sub(start)
	mid := start.Add(end).Mul(0.5)

	return Instance{
		Position:  mgl32.Vec3{mid[0], start[1], mid[2]},
		RotationY: float32(-math.Atan2(float64(d[2]), float64(d[0]))),
		ScaleX:    float32(s.Len()),
		Color:     s.Color,
		Run:       float32(math.Hypot(float64(d[0]), float64(d[2]))),
	}
}

// InstanceBatch is a single base primitive drawn once per instance.
type InstanceBatch struct {
	Base      Primitive    `json:"base"`
	Instances []Instance   `json:"instances"`
	Matrices  []mgl32.Mat4 `json:"matrices,omitempty"`

	frozen bool
}

var _ ExtrusionBatch = &InstanceBatch{}

// NewInstanceBatch builds n instances of base using fn for each index.
func NewInstanceBatch(base Primitive, n int, fn func(i int) Instance) *InstanceBatch {
	b := &InstanceBatch{
		Base:      base,
		Instances: make([]Instance, n),
	}
	for i := range b.Instances {
		b.Instances[i] = fn(i)
	}
	return b
}

func (b *InstanceBatch) Strategy() Strategy { return StrategyInstanced }
func (b *InstanceBatch) Len() int           { return len(b.Instances) }
func (b *InstanceBatch) Frozen() bool       { return b.frozen }

// Freeze bakes the world matrix of every instance. The batch is static
// afterwards; further calls do nothing.
func (b *InstanceBatch) Freeze() error {
	if b.frozen {
		return nil
	}
	b.Matrices = make([]mgl32.Mat4, len(b.Instances))
	for i, in := range b.Instances {
		b.Matrices[i] = in.Transform()
	}
	if len(b.Matrices) != len(b.Instances) {
		return fmt.Errorf("%w: %d matrices for %d instances", ErrInvariant, len(b.Matrices), len(b.Instances))
	}
	b.frozen = true
	return nil
}

// Each calls fn with the render space centerline of every instance, at the
// height the box is drawn. Ends are placed by the horizontal run, so a
// sloped segment keeps its true XY footprint.
func (b *InstanceBatch) Each(fn func(i int, start, end mgl32.Vec3, c palette.RGBA)) {
	for i, in := range b.Instances {
		rot := float64(in.RotationY)
		half := mgl32.Vec3{float32(math.Cos(rot)), 0, float32(-math.Sin(rot))}.Mul(in.Run / 2)
		fn(i, in.Position.Sub(half), in.Position.Add(half), in.Color)
	}
}

func (b *InstanceBatch) Release() {
	b.Instances = nil
	b.Matrices = nil
}
