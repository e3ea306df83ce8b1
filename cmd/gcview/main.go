package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/mastercactapus/gcview/geometry"
	"github.com/mastercactapus/gcview/loader"
)

func main() {
	log.SetFlags(log.Lshortfile)

	var opt options
	addr := flag.String("addr", ":9092", "Address to bind the gcview server to.")
	dir := flag.String("dir", "./data", "Data directory to use.")
	flag.StringVar(&opt.Colors, "colors", "", "Comma separated hex colors, one per tool (default cyan,magenta,yellow,black).")
	flag.IntVar(&opt.Threshold, "threshold", geometry.DefaultLineThreshold, "Extrusion count above which files are drawn as plain lines.")
	flag.StringVar(&opt.HeightMap, "heightmap", "", "Probe results (JSON) to level toolpaths against.")
	flag.Float64Var(&opt.Granularity, "granularity", 5, "Longest XY distance of a leveled piece.")
	verbose := flag.Bool("v", false, "Log load details.")
	flag.Parse()

	if *verbose {
		loader.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := opt.config()
	if err != nil {
		log.Fatal("ERROR: config: ", err)
	}

	api := newAPI(loader.NewViewer(cfg), *dir)

	err = http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}
