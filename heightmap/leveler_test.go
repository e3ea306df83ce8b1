package heightmap

import (
	"math"
	"strings"
	"testing"

	"github.com/mastercactapus/gcview/coord"
	"github.com/mastercactapus/gcview/palette"
	"github.com/mastercactapus/gcview/toolpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probes indicate a rise of 30mm over 100mm or .3mmZ for every 1mm X
var probes = []coord.Point{
	{X: -700, Y: -450, Z: -80},
	{X: -700, Y: -550, Z: -80},

	{X: -600, Y: -450, Z: -50},
	{X: -600, Y: -550, Z: -50},
}

func TestMesh_OffsetZ(t *testing.T) {
	mesh, err := NewMesh(probes)
	require.NoError(t, err)

	ok, z := mesh.OffsetZ(-650, -500)
	assert.True(t, ok)
	assert.InDelta(t, -65, z, 1e-9)

	ok, _ = mesh.OffsetZ(0, 0)
	assert.False(t, ok)

	lo, hi := mesh.Deviation()
	assert.Equal(t, -80.0, lo)
	assert.Equal(t, -50.0, hi)

	_, err = NewMesh(probes[:2])
	assert.Error(t, err)
}

func TestLeveler_Level(t *testing.T) {
	mesh, err := NewMesh(OffsetFrom(-65, probes))
	require.NoError(t, err)

	l := Leveler{Offsetter: mesh, Granularity: 1}

	in := []toolpath.Segment{{
		Start:     coord.Point{X: -650, Y: -500},
		End:       coord.Point{X: -647, Y: -500},
		Extruding: true,
		Color:     palette.Red,
	}}
	res := l.Level(in)
	require.Len(t, res, 3)

	for i, s := range res {
		assert.InDelta(t, -650+float64(i), s.Start.X, 1e-9)
		assert.InDelta(t, 0.3*float64(i), s.Start.Z, 1e-9)
		assert.InDelta(t, 0.3*float64(i+1), s.End.Z, 1e-9)
		assert.True(t, s.Extruding)
		assert.Equal(t, palette.Red, s.Color)
		if i > 0 {
			assert.Equal(t, res[i-1].End, s.Start)
		}
	}
	assert.Equal(t, -647.0, res[2].End.X)

	// input untouched
	assert.Equal(t, 0.0, in[0].End.Z)
}

func TestLeveler_Passthrough(t *testing.T) {
	mesh, err := NewMesh(probes)
	require.NoError(t, err)
	l := Leveler{Offsetter: mesh}

	// outside the probed area and unsplit
	s := toolpath.Segment{End: coord.Point{X: 5, Y: 5, Z: 1}}
	assert.Equal(t, []toolpath.Segment{s}, l.Level([]toolpath.Segment{s}))

	bad := toolpath.Segment{End: coord.Point{X: math.NaN()}}
	res := l.Level([]toolpath.Segment{bad})
	require.Len(t, res, 1)
	assert.True(t, math.IsNaN(res[0].End.X))

	assert.Len(t, Leveler{}.Level([]toolpath.Segment{s, s}), 2)
}

func TestLeveler_LevelBuckets(t *testing.T) {
	mesh, err := NewMesh(OffsetFrom(-65, probes))
	require.NoError(t, err)
	l := Leveler{Offsetter: mesh, Granularity: 0.5}

	b := &toolpath.Buckets{
		Extrusion: []toolpath.Segment{{Start: coord.Point{X: -650, Y: -500}, End: coord.Point{X: -649, Y: -500}, Extruding: true}},
		Travel:    []toolpath.Segment{{Start: coord.Point{X: -649, Y: -500}, End: coord.Point{X: -650, Y: -500}}},
	}
	res := l.LevelBuckets(b)
	assert.Len(t, res.Extrusion, 2)
	assert.Len(t, res.Travel, 2)
	assert.Len(t, b.Extrusion, 1)
}

func TestReadProbes(t *testing.T) {
	points, err := ReadProbes(strings.NewReader(`[
		{"X": 1, "Y": 2, "Z": 0.1, "Valid": true},
		{"X": 3, "Y": 4, "Z": 9, "Valid": false},
		{"X": 5, "Y": 6, "Z": -0.1}
	]`))
	require.NoError(t, err)
	assert.Equal(t, []coord.Point{{X: 1, Y: 2, Z: 0.1}, {X: 5, Y: 6, Z: -0.1}}, points)

	_, err = ReadProbes(strings.NewReader(`{`))
	assert.Error(t, err)
}
