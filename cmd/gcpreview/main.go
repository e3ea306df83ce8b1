package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"

	"github.com/mastercactapus/gcview/loader"
	"github.com/mastercactapus/gcview/palette"
	"github.com/mastercactapus/gcview/preview"
)

func main() {
	log.SetFlags(log.Lshortfile)

	opt := preview.DefaultOptions()
	out := flag.String("o", "preview.png", "Output PNG file.")
	flag.IntVar(&opt.Width, "width", opt.Width, "Image width in pixels.")
	flag.IntVar(&opt.Height, "height", opt.Height, "Image height in pixels.")
	flag.Float64Var(&opt.LineWidth, "line", opt.LineWidth, "Line width in pixels.")
	flag.BoolVar(&opt.ShowTravel, "travel", false, "Draw travel moves.")
	layer := flag.Float64("layer", math.NaN(), "Only draw the layer at this height.")
	tol := flag.Float64("tol", 0.05, "Height tolerance for -layer.")
	colors := flag.String("colors", "", "Comma separated hex colors, one per tool.")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: gcpreview [flags] file.gcode")
	}
	if !math.IsNaN(*layer) {
		opt = opt.Layer(*layer, *tol)
	}

	cfg := loader.DefaultConfig()
	if *colors != "" {
		t, err := palette.ParseColorTable(strings.Split(*colors, ","))
		if err != nil {
			log.Fatal("ERROR: colors: ", err)
		}
		cfg.Colors = t
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal("ERROR: open: ", err)
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, err := loader.Compile(ctx, f, cfg, nil)
	if err != nil {
		log.Fatal("ERROR: compile: ", err)
	}
	defer g.Release()

	err = preview.SavePNG(*out, g, opt)
	if err != nil {
		log.Fatal("ERROR: save: ", err)
	}
	log.Printf("%s: %d extrusion, %d travel, max height %g (%s) -> %s",
		flag.Arg(0), g.Summary.SegmentCount, g.Summary.TravelCount, g.Summary.MaxHeight, g.Summary.Strategy, *out)
}
