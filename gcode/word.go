package gcode

import (
	"math"
	"strconv"
	"strings"
)

// Word is a single letter-address token such as X10.5 or T2.
//
// Arg is NaN when the literal could not be parsed. Raw keeps the literal
// text following the letter so list-valued words like E0.5:0.5 survive.
type Word struct {
	W   byte
	Arg float64
	Raw string
}

func parseWord(tok string) Word {
	w := Word{W: tok[0], Raw: tok[1:]}
	f, err := strconv.ParseFloat(w.Raw, 64)
	if err != nil {
		f = math.NaN()
	}
	w.Arg = f
	return w
}

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

// Is reports whether w is the given letter and number, e.g. w.Is('G', 28).
func (w Word) Is(letter byte, n float64) bool {
	return w.W == letter && w.Arg == n
}

// List splits a colon separated literal (E0.2:0.8) into numbers.
// Unparseable entries become NaN.
func (w Word) List() []float64 {
	raw := w.Raw
	if raw == "" && !math.IsNaN(w.Arg) {
		raw = formatFloat(w.Arg, 6)
	}
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ":")
	res := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			f = math.NaN()
		}
		res[i] = f
	}
	return res
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

func (w Word) String() string {
	if w.Raw != "" {
		return string(w.W) + w.Raw
	}
	return string(w.W) + formatFloat(w.Arg, 3)
}
