package main

import (
	"log"
	"math"
	"net/http"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/mastercactapus/gcview/geometry"
	"github.com/mastercactapus/gcview/palette"
)

// frame is one websocket message of the geometry stream. A stream is a
// summary frame, the extrusion batch, the travel batch and a done frame.
type frame struct {
	Type      string              `json:"type"`
	Batch     string              `json:"batch,omitempty"`
	Summary   *geometry.Summary   `json:"summary,omitempty"`
	Hidden    bool                `json:"hidden,omitempty"`
	Primitive *geometry.Primitive `json:"primitive,omitempty"`
	Positions []float32           `json:"positions,omitempty"`
	Matrices  []float32           `json:"matrices,omitempty"`
	Colors    []float32           `json:"colors,omitempty"`
	Error     string              `json:"error,omitempty"`
}

func finite(v ...float32) bool {
	for _, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}

// wireColor zeroes channels JSON cannot carry.
func wireColor(c palette.RGBA) [4]float32 {
	res := [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	for i, f := range res {
		if !finite(f) {
			res[i] = 0
		}
	}
	return res
}

// frameWriter sends frames, giving each one its own write deadline so a
// client that stops reading fails the stream instead of stalling it.
type frameWriter struct {
	conn    *websocket.Conn
	timeout time.Duration
}

func (w frameWriter) write(f frame) error {
	err := w.conn.SetWriteDeadline(time.Now().Add(w.timeout))
	if err != nil {
		return err
	}
	return w.conn.WriteJSON(f)
}

type eacher interface {
	Each(fn func(i int, start, end mgl32.Vec3, c palette.RGBA))
}

func writeLines(w frameWriter, name string, b eacher, hidden bool, chunk int) error {
	f := frame{Type: "lines", Batch: name, Hidden: hidden}
	var err error
	flush := func() {
		if err != nil || len(f.Positions) == 0 {
			return
		}
		err = w.write(f)
		f.Positions = f.Positions[:0]
		f.Colors = f.Colors[:0]
	}

	b.Each(func(_ int, s, e mgl32.Vec3, c palette.RGBA) {
		if err != nil || !finite(s[:]...) || !finite(e[:]...) {
			return
		}
		col := wireColor(c)
		f.Positions = append(f.Positions, s[0], s[1], s[2], e[0], e[1], e[2])
		f.Colors = append(f.Colors, col[:]...)
		f.Colors = append(f.Colors, col[:]...)
		if len(f.Positions)/6 >= chunk {
			flush()
		}
	})
	flush()

	return err
}

func writeInstances(w frameWriter, b *geometry.InstanceBatch, chunk int) error {
	err := w.write(frame{Type: "primitive", Batch: "extrusion", Primitive: &b.Base})
	if err != nil {
		return err
	}

	f := frame{Type: "instances", Batch: "extrusion"}
	for i, m := range b.Matrices {
		if !finite(m[:]...) {
			continue
		}
		col := wireColor(b.Instances[i].Color)
		f.Matrices = append(f.Matrices, m[:]...)
		f.Colors = append(f.Colors, col[:]...)
		if len(f.Colors)/4 < chunk {
			continue
		}
		err = w.write(f)
		if err != nil {
			return err
		}
		f.Matrices = f.Matrices[:0]
		f.Colors = f.Colors[:0]
	}
	if len(f.Colors) == 0 {
		return nil
	}

	return w.write(f)
}

func writeGeometry(w frameWriter, g *geometry.Geometry, chunk int) error {
	err := w.write(frame{Type: "summary", Summary: &g.Summary})
	if err != nil {
		return err
	}

	switch b := g.Extrusion.(type) {
	case *geometry.InstanceBatch:
		err = writeInstances(w, b, chunk)
	default:
		err = writeLines(w, "extrusion", b, false, chunk)
	}
	if err != nil {
		return err
	}

	return writeLines(w, "travel", g.Travel, g.Travel.Hidden, chunk)
}

// streamGeometry sends the current load to a websocket client once it has
// finished compiling.
func (a *api) streamGeometry(rw http.ResponseWriter, req *http.Request) {
	file, l := a.current()
	if l == nil {
		http.NotFound(rw, req)
		return
	}

	conn, err := a.ws.Upgrade(rw, req, nil)
	if err != nil {
		log.Printf("ERROR: upgrade: %v", err)
		return
	}
	defer conn.Close()
	w := frameWriter{conn: conn, timeout: a.writeTimeout}

	err = l.With(func(g *geometry.Geometry) error {
		return writeGeometry(w, g, a.chunk)
	})
	if err != nil {
		if !gone(err) {
			log.Printf("ERROR: stream '%s': %v", file, err)
		}
		w.write(frame{Type: "error", Error: err.Error()})
		return
	}

	w.write(frame{Type: "done"})
}
