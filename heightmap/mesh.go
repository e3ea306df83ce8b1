// Package heightmap models a probed bed surface and applies it to toolpaths.
package heightmap

import (
	"errors"

	"github.com/fogleman/delaunay"
	"github.com/mastercactapus/gcview/coord"
)

var errTooFewPoints = errors.New("need at least 3 probe points")

// Mesh is a bed surface triangulated from probe points. Heights between
// probes are interpolated on the plane of the enclosing triangle.
type Mesh struct {
	lo, hi    coord.Point
	triangles []coord.Triangle
}

// NewMesh triangulates points in XY. Their Z values are the bed heights.
func NewMesh(points []coord.Point) (*Mesh, error) {
	if len(points) < 3 {
		return nil, errTooFewPoints
	}

	flat := make([]delaunay.Point, len(points))
	lo, hi := points[0], points[0]
	for i, p := range points {
		flat[i] = delaunay.Point{X: p.X, Y: p.Y}
		lo = coord.Point{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = coord.Point{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}

	tri, err := delaunay.Triangulate(flat)
	if err != nil {
		return nil, err
	}

	// triangle indices refer to the input order
	m := &Mesh{lo: lo, hi: hi, triangles: make([]coord.Triangle, 0, len(tri.Triangles)/3)}
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		m.triangles = append(m.triangles, coord.Triangle{
			A: points[tri.Triangles[i]],
			B: points[tri.Triangles[i+1]],
			C: points[tri.Triangles[i+2]],
		})
	}
	return m, nil
}

// Deviation returns the lowest and highest probed heights.
func (m Mesh) Deviation() (lo, hi float64) { return m.lo.Z, m.hi.Z }

func (m Mesh) covers(x, y float64) bool {
	return x >= m.lo.X-coord.Epsilon && x <= m.hi.X+coord.Epsilon &&
		y >= m.lo.Y-coord.Epsilon && y <= m.hi.Y+coord.Epsilon
}

// OffsetZ returns the bed height under (x, y). It returns false outside
// the probed area.
func (m Mesh) OffsetZ(x, y float64) (bool, float64) {
	if !m.covers(x, y) {
		return false, 0
	}
	for _, t := range m.triangles {
		if t.ContainsXY(x, y) {
			return true, t.Z(x, y)
		}
	}
	return false, 0
}
