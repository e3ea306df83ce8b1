// Package preview draws a top-down raster image of compiled geometry,
// optionally limited to a band of heights, for thumbnails and the
// command-line previewer.
package preview

import (
	"errors"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/mastercactapus/gcview/coord"
	"github.com/mastercactapus/gcview/geometry"
	"github.com/mastercactapus/gcview/palette"
)

var errReleased = errors.New("preview: geometry released")

// Options controls how a preview is drawn. MinHeight and MaxHeight are
// machine Z values; a line is drawn only if both ends lie within them.
type Options struct {
	Width, Height int
	Margin        float64
	LineWidth     float64
	Background    palette.RGBA

	MinHeight, MaxHeight float64
	ShowTravel           bool
}

func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     800,
		Margin:     16,
		LineWidth:  1,
		Background: palette.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1},
		MinHeight:  math.Inf(-1),
		MaxHeight:  math.Inf(1),
	}
}

// Layer limits opt to the single layer at height z, with tol either side.
func (opt Options) Layer(z, tol float64) Options {
	opt.MinHeight = z - tol
	opt.MaxHeight = z + tol
	return opt
}

// line is a visible line in machine coordinates.
type line struct {
	a, b coord.Point
	c    palette.RGBA
}

func (opt Options) visible(a, b coord.Point) bool {
	if !a.IsFinite() || !b.IsFinite() {
		return false
	}
	for _, p := range []coord.Point{a, b} {
		if p.Z < opt.MinHeight || p.Z > opt.MaxHeight {
			return false
		}
	}
	return true
}

func (opt Options) collect(g *geometry.Geometry) []line {
	var lines []line
	add := func(_ int, ra, rb mgl32.Vec3, c palette.RGBA) {
		a, b := geometry.MachinePoint(ra), geometry.MachinePoint(rb)
		if opt.visible(a, b) {
			lines = append(lines, line{a: a, b: b, c: c})
		}
	}
	if g.Extrusion != nil {
		g.Extrusion.Each(add)
	}
	if opt.ShowTravel && g.Travel != nil {
		g.Travel.Each(add)
	}
	return lines
}

// bounds returns the extent of lines in the machine XY plane.
func bounds(lines []line) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		for _, p := range []coord.Point{l.a, l.b} {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	return minX, minY, maxX, maxY
}

func unit(f float64) float64 { return math.Max(0, math.Min(1, f)) }

// Draw renders g onto dc, scaled to fit with machine +Y pointing up.
func Draw(dc *gg.Context, g *geometry.Geometry, opt Options) error {
	if g.Released() {
		return errReleased
	}

	bg := opt.Background
	dc.ClearWithColor(gg.RGBA{R: unit(bg.R), G: unit(bg.G), B: unit(bg.B), A: unit(bg.A)})

	lines := opt.collect(g)
	if len(lines) == 0 {
		return nil
	}

	minX, minY, maxX, maxY := bounds(lines)
	w := float64(dc.Width()) - 2*opt.Margin
	h := float64(dc.Height()) - 2*opt.Margin
	scale := math.Min(w/math.Max(maxX-minX, 1e-6), h/math.Max(maxY-minY, 1e-6))

	// center the drawing in the image
	offX := opt.Margin + (w-(maxX-minX)*scale)/2
	offY := opt.Margin + (h-(maxY-minY)*scale)/2
	px := func(p coord.Point) (float64, float64) {
		x := offX + (p.X-minX)*scale
		y := float64(dc.Height()) - offY - (p.Y-minY)*scale
		return x, y
	}

	dc.SetLineWidth(opt.LineWidth)
	for _, l := range lines {
		x1, y1 := px(l.a)
		x2, y2 := px(l.b)
		dc.SetRGBA(unit(l.c.R), unit(l.c.G), unit(l.c.B), unit(l.c.A))
		dc.DrawLine(x1, y1, x2, y2)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}

	return nil
}

// Render draws g into a new context. The caller must Close it.
func Render(g *geometry.Geometry, opt Options) (*gg.Context, error) {
	dc := gg.NewContext(opt.Width, opt.Height)
	if err := Draw(dc, g, opt); err != nil {
		_ = dc.Close()
		return nil, err
	}
	return dc, nil
}

// WritePNG renders g and encodes it to w.
func WritePNG(w io.Writer, g *geometry.Geometry, opt Options) error {
	dc, err := Render(g, opt)
	if err != nil {
		return err
	}
	defer dc.Close()

	return dc.EncodePNG(w)
}

// SavePNG renders g to a PNG file at path.
func SavePNG(path string, g *geometry.Geometry, opt Options) error {
	dc, err := Render(g, opt)
	if err != nil {
		return err
	}
	defer dc.Close()

	return dc.SavePNG(path)
}
