// Package palette holds tool colors and the filament mixing formula.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RGBA is a color with float components. Components are nominally in
// [0, 1] but are not clamped; mixed colors may fall outside that range.
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// RGB creates an opaque color.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

var (
	White = RGB(1, 1, 1)
	Black = RGB(0, 0, 0)
	Red   = RGB(1, 0, 0)
)

var errBadHex = errors.New("invalid hex color")

// Hex parses "RGB", "RRGGBB" or "RRGGBBAA", with or without a leading '#'.
func Hex(s string) (RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return RGBA{}, errBadHex
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBA{}, errBadHex
	}

	return RGBA{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func clamp255(v float64) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Hex formats c as "#rrggbbaa", clamping each component.
func (c RGBA) Hex() string {
	const digits = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0, 0, 0}
	for i, v := range []float64{c.R, c.G, c.B, c.A} {
		b := clamp255(v)
		buf[1+i*2] = digits[b>>4]
		buf[2+i*2] = digits[b&0xf]
	}
	return string(buf)
}

// ColorTable lists the base color of each material channel, by tool index.
type ColorTable []RGBA

// DefaultColorTable is a four channel cyan/magenta/yellow/black setup.
var DefaultColorTable = ColorTable{
	RGB(0, 1, 1),
	RGB(1, 0, 1),
	RGB(1, 1, 0),
	RGB(0, 0, 0),
}

// Tool returns the color for tool n. Indices wrap around the table so
// tools beyond the channel count still get a color.
func (t ColorTable) Tool(n int) (RGBA, bool) {
	if len(t) == 0 || n < 0 {
		return RGBA{}, false
	}
	return t[n%len(t)], true
}

// ParseColorTable converts a list of hex strings.
func ParseColorTable(hex []string) (ColorTable, error) {
	t := make(ColorTable, len(hex))
	for i, h := range hex {
		c, err := Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w: %q", i, err, h)
		}
		t[i] = c
	}
	return t, nil
}

// Strings formats the table as hex strings.
func (t ColorTable) Strings() []string {
	s := make([]string, len(t))
	for i, c := range t {
		s[i] = c.Hex()
	}
	return s
}
