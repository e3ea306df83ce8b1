package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriangle_Z(t *testing.T) {
	tri := Triangle{
		A: Point{0, 0, 0},
		B: Point{10, 0, 0},
		C: Point{5, 5, 5},
	}

	assert.Equal(t, 0.0, tri.Z(0, 0))
	assert.Equal(t, 0.0, tri.Z(5, 0))
	assert.Equal(t, 5.0, tri.Z(5, 5))
	assert.Equal(t, 2.5, tri.Z(2.5, 2.5))

	vertical := Triangle{A: Point{0, 0, 0}, B: Point{1, 0, 0}, C: Point{0, 0, 1}}
	assert.True(t, math.IsNaN(vertical.Z(0, 0)))
}

func TestTriangle_ContainsXY(t *testing.T) {
	tri := Triangle{
		A: Point{0, 0, 0},
		B: Point{10, 0, 0},
		C: Point{0, 10, 0},
	}
	assert.True(t, tri.ContainsXY(1, 1))
	assert.True(t, tri.ContainsXY(5, 5))
	assert.True(t, tri.ContainsXY(5, -Epsilon/2))
	assert.False(t, tri.ContainsXY(6, 6))
	assert.False(t, tri.ContainsXY(-1, 5))

	// reversed winding
	tri.B, tri.C = tri.C, tri.B
	assert.True(t, tri.ContainsXY(1, 1))
}
