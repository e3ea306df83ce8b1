package heightmap

import (
	"encoding/json"
	"io"

	"github.com/mastercactapus/gcview/coord"
)

// ZOffsetter reports the bed height under a point.
type ZOffsetter interface {
	OffsetZ(x, y float64) (bool, float64)
}

type probeResult struct {
	coord.Point
	Valid *bool
}

// ReadProbes decodes a JSON list of probe results. Entries explicitly
// marked invalid are dropped.
func ReadProbes(r io.Reader) ([]coord.Point, error) {
	var res []probeResult
	err := json.NewDecoder(r).Decode(&res)
	if err != nil {
		return nil, err
	}

	points := make([]coord.Point, 0, len(res))
	for _, p := range res {
		if p.Valid != nil && !*p.Valid {
			continue
		}
		points = append(points, p.Point)
	}
	return points, nil
}

// OffsetFrom shifts every point so that z becomes the zero height.
func OffsetFrom(z float64, points []coord.Point) []coord.Point {
	p := make([]coord.Point, len(points))
	copy(p, points)

	for i := range p {
		p[i].Z -= z
	}
	return p
}
