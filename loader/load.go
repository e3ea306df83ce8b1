package loader

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/mastercactapus/gcview/geometry"
)

// ErrReleased is returned by Result after the load has been released.
var ErrReleased = errors.New("load released")

// Load is a compile running in the background.
type Load struct {
	cancel   context.CancelFunc
	progress chan Progress
	done     chan struct{}

	// users counts With callbacks still reading the geometry.
	users sync.WaitGroup

	mx       sync.Mutex
	g        *geometry.Geometry
	err      error
	last     Progress
	released bool
}

// Start begins compiling r on a new goroutine. The load stops early if ctx
// is canceled or Cancel is called.
func Start(ctx context.Context, r io.Reader, cfg Config) *Load {
	ctx, cancel := context.WithCancel(ctx)
	l := &Load{
		cancel:   cancel,
		progress: make(chan Progress, 1),
		done:     make(chan struct{}),
	}
	go l.run(ctx, r, cfg)
	return l
}

func (l *Load) run(ctx context.Context, r io.Reader, cfg Config) {
	defer close(l.done)
	defer close(l.progress)
	defer l.cancel()

	g, err := Compile(ctx, r, cfg, l.report)

	l.mx.Lock()
	defer l.mx.Unlock()
	if l.released && g != nil {
		g.Release()
		g = nil
	}
	l.g, l.err = g, err
}

func (l *Load) report(p Progress) {
	l.mx.Lock()
	l.last = p
	l.mx.Unlock()

	// keep only the newest update if nobody is reading
	select {
	case <-l.progress:
	default:
	}
	select {
	case l.progress <- p:
	default:
	}
}

// Progress delivers progress updates. Updates are dropped rather than
// blocking the load, so a slow reader sees only the latest. The channel is
// closed when the load finishes.
func (l *Load) Progress() <-chan Progress { return l.progress }

// LastProgress returns the most recent progress update.
func (l *Load) LastProgress() Progress {
	l.mx.Lock()
	defer l.mx.Unlock()
	return l.last
}

// Done is closed when the load finishes, successfully or not.
func (l *Load) Done() <-chan struct{} { return l.done }

// Running reports whether the load is still compiling.
func (l *Load) Running() bool {
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// Cancel stops the load. It does not wait for it to finish.
func (l *Load) Cancel() { l.cancel() }

// Result waits for the load to finish and returns its geometry. The
// geometry may be released at any time after Result returns; use With to
// read it while another goroutine may reload.
func (l *Load) Result() (*geometry.Geometry, error) {
	<-l.done

	l.mx.Lock()
	defer l.mx.Unlock()
	if l.released {
		return nil, ErrReleased
	}
	return l.g, l.err
}

// Release cancels the load, waits for it to stop and for running With
// callbacks to return, and drops its geometry. It is safe to call more than
// once.
func (l *Load) Release() {
	l.mx.Lock()
	l.released = true
	l.mx.Unlock()

	l.cancel()
	<-l.done
	l.users.Wait()

	l.mx.Lock()
	defer l.mx.Unlock()
	if l.g != nil {
		l.g.Release()
		l.g = nil
	}
}

// With waits for the load to finish and calls fn with its geometry. The
// geometry is not released until fn returns, but no lock is held while fn
// runs, so fn may block without stalling other callers.
func (l *Load) With(fn func(g *geometry.Geometry) error) error {
	<-l.done

	l.mx.Lock()
	if l.released {
		l.mx.Unlock()
		return ErrReleased
	}
	if l.err != nil {
		err := l.err
		l.mx.Unlock()
		return err
	}
	g := l.g
	l.users.Add(1)
	l.mx.Unlock()

	defer l.users.Done()
	return fn(g)
}
