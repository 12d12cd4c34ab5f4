package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/kweenfont/glyph"
	"github.com/ByLCY/kweenfont/layout"
	"github.com/ByLCY/kweenfont/surface"
)

type fakeRenderer struct {
	results []*layout.Result
	err     error
	block   chan struct{}
	started chan struct{}
}

func (f *fakeRenderer) Render(ctx context.Context, res *layout.Result) ([]byte, error) {
	f.results = append(f.results, res)
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png"), nil
}

func render(t *testing.T, text string, scale layout.Scale, viewport float64) *surface.Surface {
	t.Helper()
	seq, err := glyph.Resolve(text)
	require.NoError(t, err)
	opts := surface.DefaultOptions()
	opts.ViewportWidth = viewport
	return surface.Render(seq, scale, opts)
}

func fixedClock() func() time.Time {
	at := time.UnixMilli(1700000000000)
	return func() time.Time { return at }
}

func TestExportEmptySurface(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kween.export")
	defer teardown()
	//
	fr := &fakeRenderer{}
	saved := 0
	e := NewEngine(fr, SaverFunc(func(context.Context, string, []byte) (string, error) {
		saved++
		return "", nil
	}), Options{})
	_, err := e.Export(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNothingToExport)
	_, err = e.Export(context.Background(), surface.Render(nil, 100, surface.DefaultOptions()))
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Empty(t, fr.results)
	assert.Zero(t, saved)
}

func TestExportExpandsClippedRow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kween.export")
	defer teardown()
	//
	s := render(t, "AB", 100, 120)
	live, err := s.Layout()
	require.NoError(t, err)

	var before bytes.Buffer
	require.NoError(t, s.WriteHTML(&before))

	fr := &fakeRenderer{}
	art, err := NewEngine(fr, nil, DefaultOptions()).WithClock(fixedClock()).
		Export(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, fr.results, 1)
	res := fr.results[0]

	assert.InDelta(t, 200, res.Width, 1e-6)
	assert.InDelta(t, 100, res.Height, 1e-6)
	assert.GreaterOrEqual(t, res.Width, live.Width)
	assert.False(t, res.Clipped)
	assert.Equal(t, 2.0, res.PixelRatio)
	assert.Equal(t, layout.White, res.Background)
	for i, tile := range res.Tiles {
		assert.InDelta(t, 100, tile.Width, 1e-6)
		assert.InDelta(t, float64(i)*100, tile.X, 1e-6)
	}
	assert.Equal(t, 400, art.Width)
	assert.Equal(t, 200, art.Height)
	assert.Equal(t, "kween-font-AB-1700000000000.png", art.Filename)

	var after bytes.Buffer
	require.NoError(t, s.WriteHTML(&after))
	assert.Equal(t, before.String(), after.String(), "live tree must not change")
}

func TestExportKeepsBlankSlots(t *testing.T) {
	fr := &fakeRenderer{}
	_, err := NewEngine(fr, nil, Options{}).Export(context.Background(), render(t, "A B", 50, 0))
	require.NoError(t, err)
	res := fr.results[0]
	require.Len(t, res.Tiles, 3)
	assert.True(t, res.Tiles[1].Blank)
	assert.InDelta(t, 150, res.Width, 1e-6)
	assert.Equal(t, layout.White, res.Background)
}

func TestExportBackground(t *testing.T) {
	fr := &fakeRenderer{}
	_, err := NewEngine(fr, nil, Options{}).Export(context.Background(), render(t, "A", 100, 0))
	require.NoError(t, err)
	assert.Equal(t, layout.White, fr.results[0].Background)

	black := layout.Color{}
	_, err = NewEngine(fr, nil, Options{Background: &black}).
		Export(context.Background(), render(t, "A", 100, 0))
	require.NoError(t, err)
	assert.Equal(t, black, fr.results[1].Background)
}

func TestExportFilenameUsesInputText(t *testing.T) {
	seq, err := glyph.Resolve("r2d2")
	require.NoError(t, err)
	s := surface.Render(seq, 100, surface.DefaultOptions()).WithLabel(glyph.Normalize("r2d2"))
	e := NewEngine(&fakeRenderer{}, nil, Options{}).WithClock(fixedClock())
	art, err := e.Export(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "kween-font-R2D2-1700000000000.png", art.Filename)

	s = render(t, "A/B", 100, 0).WithLabel("A/B")
	art, err = e.Export(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "kween-font-A_B-1700000000001.png", art.Filename)
}

func TestExportFilenamesAreUnique(t *testing.T) {
	e := NewEngine(&fakeRenderer{}, nil, Options{}).WithClock(fixedClock())
	s := render(t, "hello world", 100, 0)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		art, err := e.Export(context.Background(), s)
		require.NoError(t, err)
		assert.False(t, seen[art.Filename], "duplicate filename %s", art.Filename)
		seen[art.Filename] = true
		assert.True(t, strings.HasPrefix(art.Filename, "kween-font-HELLO WORLD-"), art.Filename)
	}
}

func TestExportCustomTemplate(t *testing.T) {
	e := NewEngine(&fakeRenderer{}, nil, Options{
		Prefix:   "nacht",
		Filename: "${prefix}_${text|lower|snake}.png",
	})
	art, err := e.Export(context.Background(), render(t, "Kween Font", 100, 0))
	require.NoError(t, err)
	assert.Equal(t, "nacht_kween_font.png", art.Filename)
}

func TestExportCaptureFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewEngine(&fakeRenderer{err: boom}, nil, Options{}).
		Export(context.Background(), render(t, "A", 100, 0))
	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "render", ce.Stage)
	assert.ErrorIs(t, err, boom)

	_, err = NewEngine(&fakeRenderer{}, SaverFunc(func(context.Context, string, []byte) (string, error) {
		return "", boom
	}), Options{}).Export(context.Background(), render(t, "A", 100, 0))
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "save", ce.Stage)
}

func TestExportRejectsConcurrentCall(t *testing.T) {
	fr := &fakeRenderer{block: make(chan struct{}), started: make(chan struct{})}
	e := NewEngine(fr, nil, Options{})
	s := render(t, "AB", 100, 0)

	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), s)
		done <- err
	}()
	<-fr.started
	_, err := e.Export(context.Background(), s)
	assert.ErrorIs(t, err, ErrBusy)
	close(fr.block)
	require.NoError(t, <-done)
}

func TestDirSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := DirSaver{Dir: dir}.Save(context.Background(), "../x.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.png"), path)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}
