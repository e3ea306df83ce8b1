package geometry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectStrategy(t *testing.T) {
	assert.Equal(t, StrategyInstanced, SelectStrategy(0, DefaultLineThreshold))
	assert.Equal(t, StrategyInstanced, SelectStrategy(DefaultLineThreshold, DefaultLineThreshold))
	assert.Equal(t, StrategyLines, SelectStrategy(DefaultLineThreshold+1, DefaultLineThreshold))
	assert.Equal(t, StrategyLines, SelectStrategy(1, 0))
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "LineRendering", StrategyLines.String())
	assert.Equal(t, "InstancedMesh", StrategyInstanced.String())

	data, err := json.Marshal(Summary{Strategy: StrategyLines, SegmentCount: 3})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"strategy":"LineRendering","segmentCount":3,"travelCount":0,"maxHeight":0}`, string(data))
}
