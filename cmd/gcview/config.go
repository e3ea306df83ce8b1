package main

import (
	"os"
	"strings"

	"github.com/mastercactapus/gcview/heightmap"
	"github.com/mastercactapus/gcview/loader"
	"github.com/mastercactapus/gcview/palette"
)

type options struct {
	Colors      string
	Threshold   int
	HeightMap   string
	Granularity float64
}

// readMesh loads probe results written by the probing panel.
func readMesh(name string) (*heightmap.Mesh, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := heightmap.ReadProbes(f)
	if err != nil {
		return nil, err
	}
	return heightmap.NewMesh(points)
}

func (o options) config() (loader.Config, error) {
	cfg := loader.DefaultConfig()
	cfg.Geometry.LineThreshold = o.Threshold

	if o.Colors != "" {
		t, err := palette.ParseColorTable(strings.Split(o.Colors, ","))
		if err != nil {
			return cfg, err
		}
		cfg.Colors = t
	}

	if o.HeightMap != "" {
		m, err := readMesh(o.HeightMap)
		if err != nil {
			return cfg, err
		}
		cfg.Leveler = heightmap.Leveler{Offsetter: m, Granularity: o.Granularity}
	}

	return cfg, nil
}
