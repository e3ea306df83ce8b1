package coord

import (
	"math"
)

const (
	// Epsilon is the max error when checking containment.
	Epsilon   = 0.001
	epsilonSq = Epsilon * Epsilon
)

// Triangle is a 3D triangle, mostly used through its XY projection.
type Triangle struct{ A, B, C Point }

// Normal returns the (unnormalized) plane normal.
func (t Triangle) Normal() Point {
	return t.C.Sub(t.A).Cross(t.B.Sub(t.A))
}

// Z gives the height of the triangle's plane above (x, y). It is NaN for
// triangles that are vertical in XY.
func (t Triangle) Z(x, y float64) float64 {
	n := t.Normal()
	if n.Z == 0 {
		return math.NaN()
	}
	d := n.Dot(t.C)
	return (d - n.X*x - n.Y*y) / n.Z
}

// ContainsXY reports whether (x, y) lies within the XY projection of t,
// allowing points within Epsilon of an edge.
//
// See https://totologic.blogspot.com/2014/01/accurate-point-in-triangle-test.html
func (t Triangle) ContainsXY(x, y float64) bool {
	if !t.boundsContain(x, y) {
		return false
	}
	if t.strictlyContains(x, y) {
		return true
	}
	for _, e := range [3][2]Point{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
		if segmentDistanceSq(e[0], e[1], x, y) <= epsilonSq {
			return true
		}
	}
	return false
}

func (t Triangle) boundsContain(x, y float64) bool {
	minX := math.Min(t.A.X, math.Min(t.B.X, t.C.X)) - Epsilon
	maxX := math.Max(t.A.X, math.Max(t.B.X, t.C.X)) + Epsilon
	minY := math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y)) - Epsilon
	maxY := math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y)) + Epsilon

	return minX <= x && x <= maxX && minY <= y && y <= maxY
}

// side is positive when (x, y) is left of a->b.
func side(a, b Point, x, y float64) float64 {
	return (b.Y-a.Y)*(x-a.X) + (a.X-b.X)*(y-a.Y)
}

func (t Triangle) strictlyContains(x, y float64) bool {
	s1 := side(t.A, t.B, x, y)
	s2 := side(t.B, t.C, x, y)
	s3 := side(t.C, t.A, x, y)

	// either winding
	return (s1 >= 0 && s2 >= 0 && s3 >= 0) || (s1 <= 0 && s2 <= 0 && s3 <= 0)
}

func segmentDistanceSq(a, b Point, x, y float64) float64 {
	lenSq := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	if lenSq == 0 {
		return (x-a.X)*(x-a.X) + (y-a.Y)*(y-a.Y)
	}
	dot := ((x-a.X)*(b.X-a.X) + (y-a.Y)*(b.Y-a.Y)) / lenSq
	switch {
	case dot < 0:
		return (x-a.X)*(x-a.X) + (y-a.Y)*(y-a.Y)
	case dot <= 1:
		toA := (a.X-x)*(a.X-x) + (a.Y-y)*(a.Y-y)
		return toA - dot*dot*lenSq
	}
	return (x-b.X)*(x-b.X) + (y-b.Y)*(y-b.Y)
}
