package loader

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mastercactapus/gcview/geometry"
	"github.com/mastercactapus/gcview/heightmap"
	"github.com/mastercactapus/gcview/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `G1 X10 E1
G0 X20
G1 Z5
G1 Y10 E2
`

type flatBed float64

func (f flatBed) OffsetZ(x, y float64) (bool, float64) { return true, float64(f) }

func TestCompile(t *testing.T) {
	g, err := Compile(context.Background(), strings.NewReader(sample), DefaultConfig(), nil)
	require.NoError(t, err)
	defer g.Release()

	assert.Equal(t, geometry.StrategyInstanced, g.Summary.Strategy)
	assert.Equal(t, 2, g.Summary.SegmentCount)
	assert.Equal(t, 2, g.Summary.TravelCount)
	assert.Equal(t, 5.0, g.Summary.MaxHeight)
	assert.True(t, g.Travel.Hidden)
}

func TestCompile_Lines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Geometry.LineThreshold = 1

	g, err := Compile(context.Background(), strings.NewReader(sample), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, geometry.StrategyLines, g.Summary.Strategy)
	assert.Equal(t, 2, g.Extrusion.Len())
}

func TestCompile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.BatchLines = 1
	g, err := Compile(ctx, strings.NewReader(sample), cfg, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, g)

	g, err = Compile(ctx, strings.NewReader(""), cfg, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, g)
}

func TestCompile_Progress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchLines = 2

	var got []Progress
	_, err := Compile(context.Background(), strings.NewReader(sample), cfg, func(p Progress) {
		got = append(got, p)
	})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, Progress{Lines: 4, Extrusion: 2, Travel: 2}, got[len(got)-1])
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].Lines, got[i-1].Lines)
	}
}

func TestCompile_Leveler(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Leveler = heightmap.Leveler{Offsetter: flatBed(1)}

	g, err := Compile(context.Background(), strings.NewReader("G1 X10 E1\n"), cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 1, g.Extrusion.Len())

	g.Extrusion.Each(func(i int, start, end mgl32.Vec3, c palette.RGBA) {
		assert.InDelta(t, 1, start.Y(), 1e-5)
		assert.InDelta(t, 1, end.Y(), 1e-5)
		assert.InDelta(t, 10, end.X()-start.X(), 1e-4)
	})
}

func TestLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchLines = 1
	l := Start(context.Background(), strings.NewReader(sample), cfg)

	var last Progress
	for p := range l.Progress() {
		last = p
	}
	assert.Equal(t, 4, last.Lines)
	assert.Equal(t, last, l.LastProgress())

	g, err := l.Result()
	require.NoError(t, err)
	assert.Equal(t, 2, g.Summary.SegmentCount)
	assert.False(t, l.Running())

	l.Release()
	assert.True(t, g.Released())
	_, err = l.Result()
	assert.ErrorIs(t, err, ErrReleased)

	// second release is a no-op
	l.Release()
}

func TestLoad_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := Start(ctx, strings.NewReader(sample), DefaultConfig())
	<-l.Done()
	_, err := l.Result()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestViewer_Reload(t *testing.T) {
	v := NewViewer(DefaultConfig())
	assert.Nil(t, v.Current())

	first := v.Reload(context.Background(), strings.NewReader(sample))
	g1, err := first.Result()
	require.NoError(t, err)

	second := v.Reload(context.Background(), strings.NewReader("G1 X1 E1\n"))
	assert.True(t, g1.Released())
	_, err = first.Result()
	assert.ErrorIs(t, err, ErrReleased)

	assert.Same(t, second, v.Current())
	g2, err := second.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, g2.Summary.SegmentCount)

	v.Clear()
	assert.Nil(t, v.Current())
	assert.True(t, g2.Released())
}

func TestViewer_SetConfig(t *testing.T) {
	v := NewViewer(DefaultConfig())
	cfg := DefaultConfig()
	cfg.Geometry.LineThreshold = 1
	v.SetConfig(cfg)
	assert.Equal(t, 1, v.Config().Geometry.LineThreshold)

	g, err := v.Reload(context.Background(), strings.NewReader(sample)).Result()
	require.NoError(t, err)
	assert.Equal(t, geometry.StrategyLines, g.Summary.Strategy)
	v.Clear()
}

func TestLoad_With(t *testing.T) {
	l := Start(context.Background(), strings.NewReader(sample), DefaultConfig())

	var n int
	err := l.With(func(g *geometry.Geometry) error {
		n = g.Summary.TravelCount
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	l.Release()
	err = l.With(func(g *geometry.Geometry) error { return nil })
	assert.ErrorIs(t, err, ErrReleased)
}

func TestViewer_Reload_WhileReading(t *testing.T) {
	v := NewViewer(DefaultConfig())
	first := v.Reload(context.Background(), strings.NewReader(sample))
	_, err := first.Result()
	require.NoError(t, err)

	entered := make(chan struct{})
	unblock := make(chan struct{})
	readErr := make(chan error, 1)
	go func() {
		readErr <- first.With(func(g *geometry.Geometry) error {
			close(entered)
			<-unblock
			assert.False(t, g.Released())
			return nil
		})
	}()
	<-entered

	reloaded := make(chan *Load, 1)
	go func() { reloaded <- v.Reload(context.Background(), strings.NewReader("G1 X1 E1\n")) }()

	select {
	case <-reloaded:
		t.Fatal("reload released geometry still being read")
	case <-time.After(50 * time.Millisecond):
	}

	// readers of the viewer are not held up by the pending release
	polled := make(chan struct{})
	go func() {
		v.Config()
		v.Current()
		close(polled)
	}()
	select {
	case <-polled:
	case <-time.After(time.Second):
		t.Fatal("Config and Current blocked during reload")
	}

	close(unblock)
	require.NoError(t, <-readErr)
	second := <-reloaded
	assert.Same(t, second, v.Current())
	_, err = first.Result()
	assert.ErrorIs(t, err, ErrReleased)
	v.Clear()
}
