package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, Point{X: -3, Y: -3, Z: -3}, a.Sub(b))
}

func TestPoint_DistanceXY(t *testing.T) {
	dist := Point{X: 1, Y: 2, Z: 3}.DistanceXY(4, 5)
	assert.InEpsilon(t, 4.24264, dist, .01)
}

func TestPoint_Distance(t *testing.T) {
	assert.Equal(t, 5.0, Point{}.Distance(Point{X: 3, Z: 4}))
	assert.Equal(t, 0.0, Point{X: 1, Y: 1, Z: 1}.Distance(Point{X: 1, Y: 1, Z: 1}))
	assert.True(t, math.IsNaN(Point{X: math.NaN()}.Distance(Point{})))
}

func TestPoint_Midpoint(t *testing.T) {
	a := Point{X: 0, Y: 10, Z: 2}
	b := Point{X: 10, Y: 20, Z: 4}

	assert.Equal(t, Point{X: 5, Y: 15, Z: 3}, a.Midpoint(b))
	assert.Equal(t, Point{X: 2.5, Y: 12.5, Z: 2.5}, a.Lerp(b, .25))
}

func TestPoint_IsFinite(t *testing.T) {
	assert.True(t, Point{X: 1, Y: -2, Z: 3}.IsFinite())
	assert.False(t, Point{Y: math.NaN()}.IsFinite())
	assert.False(t, Point{Z: math.Inf(1)}.IsFinite())
	assert.True(t, Point{X: math.MaxFloat64, Y: math.MaxFloat64}.IsFinite())
}
