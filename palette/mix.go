package palette

// Mix blends the table colors by the given ratios:
//
//	c = 1 - Σ (1 - table[i].c) * ratios[i]
//
// for each of R, G and B. Inputs and result are not clamped
// or normalized. Ratios beyond the table are ignored; missing ratios are
// treated as zero.
func Mix(table ColorTable, ratios []float64) RGBA {
	var r, g, b float64
	for i, c := range table {
		if i >= len(ratios) {
			break
		}
		r += (1 - c.R) * ratios[i]
		g += (1 - c.G) * ratios[i]
		b += (1 - c.B) * ratios[i]
	}

	return RGBA{R: 1 - r, G: 1 - g, B: 1 - b, A: 1}
}
