package coord

import (
	"math"
)

// Point is a position in machine coordinates. Z is the build (vertical) axis.
type Point struct{ X, Y, Z float64 }

// IsFinite reports whether no coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	for _, v := range [...]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point) Dot(op Point) float64 {
	return p.X*op.X + p.Y*op.Y + p.Z*op.Z
}
func (p Point) Cross(op Point) Point {
	return Point{
		p.Y*op.Z - p.Z*op.Y,
		p.Z*op.X - p.X*op.Z,
		p.X*op.Y - p.Y*op.X,
	}
}
func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.Z *= val
	return p
}
func (p Point) Div(val float64) Point {
	p.X /= val
	p.Y /= val
	p.Z /= val
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// Len is the euclidean length of p as a vector.
func (p Point) Len() float64 {
	return math.Sqrt(p.Dot(p))
}

// Distance returns the 3D distance between p and target.
func (p Point) Distance(target Point) float64 {
	return target.Sub(p).Len()
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

// Midpoint returns the point halfway between p and target.
func (p Point) Midpoint(target Point) Point {
	return p.Add(target).Div(2)
}

// Lerp returns the point at fraction t along the way from p to target.
func (p Point) Lerp(target Point, t float64) Point {
	return p.Add(target.Sub(p).Mul(t))
}
