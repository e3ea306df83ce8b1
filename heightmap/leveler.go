package heightmap

import (
	"math"

	"github.com/mastercactapus/gcview/coord"
	"github.com/mastercactapus/gcview/toolpath"
)

// Leveler raises segments by the bed height beneath them, splitting long
// moves so the result follows the surface.
type Leveler struct {
	Offsetter ZOffsetter

	// Granularity is the longest XY distance a leveled piece may span.
	// Zero disables splitting.
	Granularity float64
}

func (l Leveler) offset(p coord.Point) coord.Point {
	if ok, z := l.Offsetter.OffsetZ(p.X, p.Y); ok {
		p.Z += z
	}
	return p
}

func (l Leveler) pieces(s toolpath.Segment) int {
	if l.Granularity <= 0 {
		return 1
	}
	dist := s.Start.DistanceXY(s.End.X, s.End.Y)
	if dist <= l.Granularity {
		return 1
	}
	return int(math.Ceil(dist / l.Granularity))
}

// Level returns the leveled form of segs. The input is not modified.
// Segments with malformed coordinates pass through untouched.
func (l Leveler) Level(segs []toolpath.Segment) []toolpath.Segment {
	if l.Offsetter == nil {
		return segs
	}

	res := make([]toolpath.Segment, 0, len(segs))
	for _, s := range segs {
		if !s.IsFinite() {
			res = append(res, s)
			continue
		}

		n := l.pieces(s)
		prev := l.offset(s.Start)
		for i := 1; i <= n; i++ {
			next := s.End
			if i < n {
				next = s.Start.Lerp(s.End, float64(i)/float64(n))
			}
			next = l.offset(next)

			piece := s
			piece.Start, piece.End = prev, next
			res = append(res, piece)
			prev = next
		}
	}

	return res
}

// LevelBuckets levels both lists of b, keeping each segment in its bucket.
func (l Leveler) LevelBuckets(b *toolpath.Buckets) *toolpath.Buckets {
	return &toolpath.Buckets{
		Extrusion: l.Level(b.Extrusion),
		Travel:    l.Level(b.Travel),
	}
}
