package palette

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	c, err := Hex("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, Red, c)

	c, err = Hex("0f0")
	require.NoError(t, err)
	assert.Equal(t, RGB(0, 1, 0), c)

	c, err = Hex("00000000")
	require.NoError(t, err)
	assert.Equal(t, RGBA{}, c)

	_, err = Hex("#12345")
	assert.Error(t, err)
	_, err = Hex("zzzzzz")
	assert.Error(t, err)
}

func TestRGBA_Hex(t *testing.T) {
	assert.Equal(t, "#00ffffff", RGB(0, 1, 1).Hex())
	// out of range components are clamped for display only
	assert.Equal(t, "#ff0000ff", RGBA{R: 1.5, G: -0.2, B: 0, A: 1}.Hex())
}

func TestColorTable_Tool(t *testing.T) {
	tab := ColorTable{Red, RGB(0, 1, 0), RGB(0, 0, 1), White}

	c, ok := tab.Tool(2)
	assert.True(t, ok)
	assert.Equal(t, RGB(0, 0, 1), c)

	c, ok = tab.Tool(5)
	assert.True(t, ok)
	assert.Equal(t, tab[1], c)

	_, ok = tab.Tool(-1)
	assert.False(t, ok)
	_, ok = ColorTable{}.Tool(0)
	assert.False(t, ok)
}

func TestParseColorTable(t *testing.T) {
	tab, err := ParseColorTable([]string{"#00ffff", "#ff00ff"})
	require.NoError(t, err)
	assert.Equal(t, DefaultColorTable[:2], tab)
	assert.Equal(t, []string{"#00ffffff", "#ff00ffff"}, tab.Strings())

	_, err = ParseColorTable([]string{"#00ffff", "nope"})
	assert.EqualError(t, err, `color 1: invalid hex color: "nope"`)
}

func TestRGBA_JSON(t *testing.T) {
	data, err := json.Marshal(RGB(0, 0.5, 1))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"r":0,"g":0.5,"b":1,"a":1}`, string(data))
}
