// Package loader turns G-code text into compiled geometry off the caller's
// goroutine, with cancellation between batches of lines.
package loader

import (
	"context"
	"io"
	"time"

	"github.com/mastercactapus/gcview/gcode"
	"github.com/mastercactapus/gcview/geometry"
	"github.com/mastercactapus/gcview/heightmap"
	"github.com/mastercactapus/gcview/palette"
	"github.com/mastercactapus/gcview/toolpath"
	"github.com/mastercactapus/gcview/vm"
)

// DefaultBatchLines is how many lines are parsed between cancellation checks.
const DefaultBatchLines = 4096

// Config controls a single load. It is copied when a load starts, so later
// changes never affect a running load.
type Config struct {
	Colors      palette.ColorTable
	TravelColor palette.RGBA
	Geometry    geometry.Options

	// BatchLines is the number of lines between cancellation checks and
	// progress reports.
	BatchLines int

	// Leveler, when it has an Offsetter, adjusts segments to a bed height map
	// before compiling.
	Leveler heightmap.Leveler
}

func DefaultConfig() Config {
	return Config{
		Colors:      palette.DefaultColorTable,
		TravelColor: toolpath.DefaultTravelColor,
		Geometry:    geometry.DefaultOptions(),
		BatchLines:  DefaultBatchLines,
	}
}

// Progress is reported after each batch of lines.
type Progress struct {
	Lines     int `json:"lines"`
	Extrusion int `json:"extrusion"`
	Travel    int `json:"travel"`
}

// Compile parses r to the end and compiles it. It returns ctx.Err() if ctx
// is canceled first, dropping everything parsed so far. progress may be nil.
func Compile(ctx context.Context, r io.Reader, cfg Config, progress func(Progress)) (*geometry.Geometry, error) {
	if cfg.BatchLines <= 0 {
		cfg.BatchLines = DefaultBatchLines
	}
	if cfg.TravelColor == (palette.RGBA{}) {
		cfg.TravelColor = toolpath.DefaultTravelColor
	}
	log := Logger()
	started := time.Now()

	p := gcode.NewParser(r)
	m := vm.NewMachine(cfg.Colors)
	cls := toolpath.Classifier{TravelColor: cfg.TravelColor}
	b := &toolpath.Buckets{}

	report := func() {
		if progress != nil {
			progress(Progress{Lines: p.Line(), Extrusion: len(b.Extrusion), Travel: len(b.Travel)})
		}
	}

	next := cfg.BatchLines
	for {
		if p.Line() >= next {
			next = p.Line() + cfg.BatchLines
			if err := ctx.Err(); err != nil {
				log.Warn("load canceled", "lines", p.Line(), "err", err)
				return nil, err
			}
			report()
		}

		blk, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if seg, ok := m.RunBlock(blk); ok {
			b.Add(cls, seg)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report()

	if cfg.Leveler.Offsetter != nil {
		b = cfg.Leveler.LevelBuckets(b)
	}

	opt := cfg.Geometry
	opt.MaxHeight = m.MaxHeightSeen()
	g, err := geometry.Compile(b, opt)
	if err != nil {
		log.Error("compile", "err", err)
		return nil, err
	}

	log.Info("load compiled",
		"lines", p.Line(),
		"strategy", g.Summary.Strategy.String(),
		"segments", g.Summary.SegmentCount,
		"travel", g.Summary.TravelCount,
		"maxHeight", g.Summary.MaxHeight,
		"elapsed", time.Since(started),
	)
	return g, nil
}
