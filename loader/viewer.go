package loader

import (
	"context"
	"io"
	"sync"
)

// Viewer holds the file currently on display. Loading a new file releases
// the previous one first, so at most one geometry is alive at a time.
type Viewer struct {
	// reload serializes Reload and Clear. It may be held while a previous
	// load is released.
	reload sync.Mutex

	mx      sync.Mutex
	cfg     Config
	current *Load
}

func NewViewer(cfg Config) *Viewer {
	return &Viewer{cfg: cfg}
}

// Config returns the config used for new loads.
func (v *Viewer) Config() Config {
	v.mx.Lock()
	defer v.mx.Unlock()
	return v.cfg
}

// SetConfig changes the config for future loads. The current load keeps the
// config it started with.
func (v *Viewer) SetConfig(cfg Config) {
	v.mx.Lock()
	v.cfg = cfg
	v.mx.Unlock()
}

// detach removes the current load without releasing it.
func (v *Viewer) detach() *Load {
	v.mx.Lock()
	defer v.mx.Unlock()
	prev := v.current
	v.current = nil
	return prev
}

// Reload releases the current load, if any, and starts loading r. Current
// returns nil while the previous load is being released.
func (v *Viewer) Reload(ctx context.Context, r io.Reader) *Load {
	v.reload.Lock()
	defer v.reload.Unlock()

	if prev := v.detach(); prev != nil {
		Logger().Debug("releasing previous load")
		prev.Release()
	}

	l := Start(ctx, r, v.Config())
	v.mx.Lock()
	v.current = l
	v.mx.Unlock()
	return l
}

// Current returns the most recent load, or nil.
func (v *Viewer) Current() *Load {
	v.mx.Lock()
	defer v.mx.Unlock()
	return v.current
}

// Clear releases the current load.
func (v *Viewer) Clear() {
	v.reload.Lock()
	defer v.reload.Unlock()

	if prev := v.detach(); prev != nil {
		prev.Release()
	}
}
