// Package geometry compiles classified toolpath segments into render batches.
//
// Coordinates handed to the renderer are Y-up: machine (x, y, z) becomes
// render (x, z, y).
package geometry

import "encoding/json"

// DefaultLineThreshold is the extrusion segment count above which extrusion
// is drawn as plain lines instead of instanced boxes.
const DefaultLineThreshold = 400000

// Strategy identifies how extrusion segments are represented.
type Strategy int

const (
	StrategyInstanced Strategy = iota
	StrategyLines
)

func (s Strategy) String() string {
	switch s {
	case StrategyLines:
		return "LineRendering"
	case StrategyInstanced:
		return "InstancedMesh"
	}
	return "Unknown"
}

func (s Strategy) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// SelectStrategy picks lines only when n exceeds threshold; a count equal
// to the threshold is still instanced.
func SelectStrategy(n, threshold int) Strategy {
	if n > threshold {
		return StrategyLines
	}
	return StrategyInstanced
}
