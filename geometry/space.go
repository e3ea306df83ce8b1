package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mastercactapus/gcview/coord"
	"github.com/mastercactapus/gcview/palette"
)

// RenderPoint maps a machine position into render space.
func RenderPoint(p coord.Point) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Z), float32(p.Y)}
}

// MachinePoint is the inverse of RenderPoint.
func MachinePoint(v mgl32.Vec3) coord.Point {
	return coord.Point{X: float64(v.X()), Y: float64(v.Z()), Z: float64(v.Y())}
}

func color32(c palette.RGBA) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}
