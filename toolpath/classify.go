package toolpath

import "github.com/mastercactapus/gcview/palette"

// MinExtrusionLength is the shortest extruding move still drawn as material.
// Shorter extruding moves (including zero length ones) are drawn as travel.
const MinExtrusionLength = 0.01

// DefaultTravelColor is used for every travel segment.
var DefaultTravelColor = palette.Red

type Kind int

const (
	Travel Kind = iota
	Extrusion
)

func (k Kind) String() string {
	if k == Extrusion {
		return "extrusion"
	}
	return "travel"
}

// Classifier decides the bucket of each segment.
type Classifier struct {
	TravelColor palette.RGBA
}

func NewClassifier() Classifier {
	return Classifier{TravelColor: DefaultTravelColor}
}

// Classify returns the kind of s and the segment as it should be drawn.
// Travel segments take the travel color regardless of the tool color.
func (c Classifier) Classify(s Segment) (Kind, Segment) {
	// NaN lengths fail the comparison and fall through to travel
	if s.Extruding && s.Len() >= MinExtrusionLength {
		return Extrusion, s
	}

	s.Color = c.TravelColor
	return Travel, s
}

// Buckets accumulates classified segments in input order.
type Buckets struct {
	Extrusion []Segment
	Travel    []Segment
}

// Add classifies s and appends it to the matching list.
func (b *Buckets) Add(c Classifier, s Segment) Kind {
	k, s := c.Classify(s)
	if k == Extrusion {
		b.Extrusion = append(b.Extrusion, s)
	} else {
		b.Travel = append(b.Travel, s)
	}
	return k
}

func (b *Buckets) Len() int {
	return len(b.Extrusion) + len(b.Travel)
}

// Take hands both lists to the caller and empties b.
func (b *Buckets) Take() (extrusion, travel []Segment) {
	extrusion, travel = b.Extrusion, b.Travel
	b.Extrusion, b.Travel = nil, nil
	return extrusion, travel
}

func (b *Buckets) Clone() *Buckets {
	return &Buckets{
		Extrusion: append([]Segment(nil), b.Extrusion...),
		Travel:    append([]Segment(nil), b.Travel...),
	}
}
