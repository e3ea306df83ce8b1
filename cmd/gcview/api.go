package main

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/mastercactapus/gcview/loader"
	"github.com/mastercactapus/gcview/palette"
)

type api struct {
	http.Handler
	dataDir string
	viewer  *loader.Viewer
	sse     *sse.Server
	ws      websocket.Upgrader

	// chunk is the number of lines or instances per websocket frame.
	chunk        int
	writeTimeout time.Duration

	// loading serializes view changes; it is held while a previous load is
	// released. mx only guards the file and load pair.
	loading sync.Mutex
	mx      sync.Mutex
	file    string
	load    *loader.Load
}

func newAPI(v *loader.Viewer, dir string) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		dataDir: dir,
		viewer:  v,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
		ws: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		chunk:        4096,
		writeTimeout: 10 * time.Second,
	}

	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/data/").Handler(http.StripPrefix("/data", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case "GET":
			fs.ServeHTTP(w, req)
		case "PUT":
			a.putFile(w, req)
		case "DELETE":
			a.deleteFile(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})))

	r.HandleFunc("/api/colors", a.getColors).Methods("GET")
	r.HandleFunc("/api/colors", a.putColors).Methods("PUT")

	r.HandleFunc("/api/view", a.loadView).Methods("POST")
	r.HandleFunc("/api/view", a.getView).Methods("GET")
	r.HandleFunc("/api/view", a.clearView).Methods("DELETE")
	r.HandleFunc("/api/preview", a.preview).Methods("GET")

	r.HandleFunc("/ws/geometry", a.streamGeometry).Methods("GET")
	r.Handle("/events/view", a.sse)

	return a
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Printf("invalid path '%s'", name)
		return false, ""
	}
	if base == "" {
		base = "."
	}
	return true, filepath.Join(base, filepath.FromSlash(path.Clean("/"+name)))
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.MkdirAll(filepath.Dir(name), 0755)
	if err != nil {
		log.Printf("ERROR: mkdir '%s': %+v", filepath.Dir(name), err)
		http.Error(w, err.Error(), 500)
		return
	}
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if os.IsNotExist(err) {
		http.NotFound(w, req)
		return
	}
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) getColors(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.viewer.Config().Colors.Strings())
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

// putColors replaces the color table used by future loads.
func (a *api) putColors(w http.ResponseWriter, req *http.Request) {
	var hex []string
	err := json.NewDecoder(req.Body).Decode(&hex)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := palette.ParseColorTable(hex)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg := a.viewer.Config()
	cfg.Colors = t
	a.viewer.SetConfig(cfg)
	w.WriteHeader(http.StatusNoContent)
}
