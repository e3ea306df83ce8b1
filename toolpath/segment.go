// Package toolpath classifies machine moves into extrusion and travel segments.
package toolpath

import (
	"github.com/mastercactapus/gcview/coord"
	"github.com/mastercactapus/gcview/palette"
)

// Segment is one linear move. Segments are values and are never modified
// after they are produced.
type Segment struct {
	Start, End coord.Point
	Extruding  bool
	Color      palette.RGBA
}

// Len returns the 3D length of the move. It is NaN if either end has a
// malformed coordinate.
func (s Segment) Len() float64 {
	return s.Start.Distance(s.End)
}

// Delta returns End - Start.
func (s Segment) Delta() coord.Point {
	return s.End.Sub(s.Start)
}

func (s Segment) IsFinite() bool {
	return s.Start.IsFinite() && s.End.IsFinite()
}
