package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/mastercactapus/gcview/geometry"
	"github.com/mastercactapus/gcview/loader"
	"github.com/mastercactapus/gcview/preview"
)

type viewStatus struct {
	File     string            `json:"file"`
	Running  bool              `json:"running"`
	Progress *loader.Progress  `json:"progress,omitempty"`
	Summary  *geometry.Summary `json:"summary,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func (a *api) current() (string, *loader.Load) {
	a.mx.Lock()
	defer a.mx.Unlock()
	return a.file, a.load
}

func (a *api) setCurrent(file string, l *loader.Load) {
	a.mx.Lock()
	a.file, a.load = file, l
	a.mx.Unlock()
}

func (a *api) send(s viewStatus) {
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("ERROR: marshal json: %+v", err)
		return
	}
	a.sse.SendMessage("/events/view", sse.SimpleMessage(string(data)))
}

// gone reports whether err only means the load was replaced or canceled.
func gone(err error) bool {
	return errors.Is(err, loader.ErrReleased) || errors.Is(err, context.Canceled)
}

// watch forwards progress of l to event listeners and closes rc when the
// load is finished with it.
func (a *api) watch(file string, l *loader.Load, rc io.Closer) {
	defer rc.Close()

	for p := range l.Progress() {
		a.send(viewStatus{File: file, Running: true, Progress: &p})
	}

	err := l.With(func(g *geometry.Geometry) error {
		a.send(viewStatus{File: file, Summary: &g.Summary})
		return nil
	})
	if gone(err) {
		return
	}
	if err != nil {
		log.Printf("ERROR: load '%s': %v", file, err)
		a.send(viewStatus{File: file, Error: err.Error()})
	}
}

func (a *api) loadView(w http.ResponseWriter, req *http.Request) {
	file := req.FormValue("file")
	if file == "" {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	ok, name := safePath(a.dataDir, file)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	f, err := os.Open(name)
	if os.IsNotExist(err) {
		http.NotFound(w, req)
		return
	}
	if err != nil {
		log.Printf("ERROR: open '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}

	a.loading.Lock()
	l := a.viewer.Reload(context.Background(), f)
	a.setCurrent(file, l)
	a.loading.Unlock()

	go a.watch(file, l, f)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	err = json.NewEncoder(w).Encode(viewStatus{File: file, Running: true})
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) getView(w http.ResponseWriter, req *http.Request) {
	file, l := a.current()
	if l == nil {
		http.NotFound(w, req)
		return
	}
	if l.Running() {
		p := l.LastProgress()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(viewStatus{File: file, Running: true, Progress: &p})
		return
	}

	err := l.With(func(g *geometry.Geometry) error {
		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(viewStatus{File: file, Summary: &g.Summary})
	})
	switch {
	case gone(err):
		http.NotFound(w, req)
	case err != nil:
		log.Printf("ERROR: view '%s': %v", file, err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	}
}

func (a *api) clearView(w http.ResponseWriter, req *http.Request) {
	a.loading.Lock()
	a.viewer.Clear()
	a.setCurrent("", nil)
	a.loading.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func previewOptions(req *http.Request) (preview.Options, error) {
	opt := preview.DefaultOptions()
	var err error
	parseFloat := func(param string, dst *float64) {
		s := req.FormValue(param)
		if err != nil || s == "" {
			return
		}
		*dst, err = strconv.ParseFloat(s, 64)
	}
	parseInt := func(param string, dst *int) {
		s := req.FormValue(param)
		if err != nil || s == "" {
			return
		}
		*dst, err = strconv.Atoi(s)
	}
	parseFloat("min", &opt.MinHeight)
	parseFloat("max", &opt.MaxHeight)
	parseInt("width", &opt.Width)
	parseInt("height", &opt.Height)
	opt.ShowTravel = req.FormValue("travel") == "1"

	if err == nil && (opt.Width <= 0 || opt.Height <= 0 || opt.Width > 8192 || opt.Height > 8192) {
		err = errors.New("width and height must be between 1 and 8192")
	}
	return opt, err
}

func (a *api) preview(w http.ResponseWriter, req *http.Request) {
	opt, err := previewOptions(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, l := a.current()
	if l == nil {
		http.NotFound(w, req)
		return
	}
	if l.Running() {
		http.Error(w, "load in progress", http.StatusConflict)
		return
	}

	err = l.With(func(g *geometry.Geometry) error {
		w.Header().Set("Content-Type", "image/png")
		return preview.WritePNG(w, g, opt)
	})
	switch {
	case gone(err):
		http.NotFound(w, req)
	case err != nil:
		log.Printf("ERROR: preview '%s': %v", file, err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	}
}
