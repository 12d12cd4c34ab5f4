package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/kweenfont/export"
	"github.com/ByLCY/kweenfont/shell"
	"github.com/ByLCY/kweenfont/surface"
)

type stubExporter struct{}

func (stubExporter) Export(_ context.Context, s *surface.Surface) (*export.Artifact, error) {
	return &export.Artifact{Filename: "kween-font-" + s.Text() + ".png"}, nil
}

func setup(t *testing.T) (*App, *shell.Shell, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	app := New(screen)
	opts := surface.DefaultOptions()
	opts.ViewportWidth = ViewportPx(80)
	sh := shell.New(shell.Options{
		Exporter:  stubExporter{},
		Notifier:  app,
		Clipboard: app,
		Surface:   opts,
	})
	app.Attach(sh)
	return app, sh, screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(app *App, s string) {
	for _, r := range s {
		app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func line(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestTypingAndGenerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kween.tui")
	defer teardown()
	//
	app, sh, screen := setup(t)
	assert.Equal(t, "NACHT", app.Input())

	for i := 0; i < 5; i++ {
		app.HandleEvent(key(tcell.KeyBackspace2))
	}
	typeText(app, "kw en")
	assert.Equal(t, "KW EN", app.Input())
	assert.Equal(t, "KW EN", sh.Text())

	assert.False(t, app.HandleEvent(key(tcell.KeyEnter)))
	require.NotNil(t, sh.Surface())
	assert.Equal(t, 5, sh.Surface().Len())

	note, ok := app.Toast()
	require.True(t, ok)
	assert.Equal(t, "Success!", note.Title)

	app.Draw()
	assert.Contains(t, line(screen, 2), "KW EN_")
	assert.Contains(t, line(screen, rowTop-1), "5 CHARS")
	row := line(screen, rowTop+1)
	assert.Contains(t, row, "K")
	assert.Contains(t, row, "N")
	assert.Contains(t, line(screen, 22), "Generated 5 font characters")
}

func TestEmptyInputWarns(t *testing.T) {
	app, sh, _ := setup(t)
	for i := 0; i < 5; i++ {
		app.HandleEvent(key(tcell.KeyBackspace))
	}
	app.HandleEvent(key(tcell.KeyEnter))
	assert.Nil(t, sh.Surface())
	note, ok := app.Toast()
	require.True(t, ok)
	assert.Equal(t, shell.Warning, note.Severity)
	assert.Equal(t, "Empty Input", note.Title)
}

func TestScaleKeys(t *testing.T) {
	app, sh, _ := setup(t)
	app.HandleEvent(key(tcell.KeyUp))
	assert.EqualValues(t, 105, sh.Scale())
	app.HandleEvent(key(tcell.KeyPgDn))
	assert.EqualValues(t, 85, sh.Scale())
	for i := 0; i < 10; i++ {
		app.HandleEvent(key(tcell.KeyPgUp))
	}
	assert.EqualValues(t, 200, sh.Scale())
	for i := 0; i < 50; i++ {
		app.HandleEvent(key(tcell.KeyDown))
	}
	assert.EqualValues(t, 20, sh.Scale())
}

func TestExportRunsInBackground(t *testing.T) {
	app, _, _ := setup(t)
	app.HandleEvent(key(tcell.KeyCtrlS))
	app.Wait()
	note, _ := app.Toast()
	assert.Equal(t, "No Images", note.Title)

	app.HandleEvent(key(tcell.KeyEnter))
	app.HandleEvent(key(tcell.KeyCtrlS))
	app.Wait()
	note, _ = app.Toast()
	assert.Equal(t, "Downloaded!", note.Title)

	app.HandleEvent(tcell.NewEventInterrupt(exportDone{art: &export.Artifact{Filename: "x.png"}}))
	assert.Equal(t, "saved x.png", app.status)
}

func TestResetAndQuit(t *testing.T) {
	app, sh, _ := setup(t)
	typeText(app, "ZZ")
	app.HandleEvent(key(tcell.KeyUp))
	app.HandleEvent(key(tcell.KeyEnter))

	app.HandleEvent(key(tcell.KeyCtrlR))
	assert.Equal(t, "NACHT", app.Input())
	assert.EqualValues(t, 100, sh.Scale())
	assert.Nil(t, sh.Surface())
	note, _ := app.Toast()
	assert.Equal(t, "Reset", note.Title)

	assert.True(t, app.HandleEvent(key(tcell.KeyEscape)))
	assert.True(t, app.HandleEvent(tcell.NewEventInterrupt(quitRequest{})))
}

func TestToastAutoDismiss(t *testing.T) {
	app, _, _ := setup(t)
	now := time.Unix(0, 0)
	app.now = func() time.Time { return now }
	app.Notify(shell.Notification{Severity: shell.Info, Title: "Reset", AutoDismiss: time.Second})
	_, ok := app.Toast()
	assert.True(t, ok)
	now = now.Add(2 * time.Second)
	_, ok = app.Toast()
	assert.False(t, ok)

	app.Notify(shell.Notification{Severity: shell.Error, Title: "Download Failed"})
	now = now.Add(time.Hour)
	_, ok = app.Toast()
	assert.True(t, ok, "errors stay until replaced")
}

func TestMissingAssetsShowPlaceholder(t *testing.T) {
	app, _, screen := setup(t)
	app.WithAssetCheck(func(src string) bool { return !strings.HasSuffix(src, "/A.jpg") })
	app.HandleEvent(key(tcell.KeyEnter))
	app.Draw()
	row := line(screen, rowTop+1)
	assert.Contains(t, row, "?")
	assert.NotContains(t, row, "A")
	assert.Contains(t, row, "N")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app, _, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestCtrlRuneCombos(t *testing.T) {
	app, _, _ := setup(t)
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModCtrl))
	note, _ := app.Toast()
	assert.Equal(t, "Reset", note.Title)
	assert.Equal(t, "NACHT", app.Input(), "ctrl combos never reach the input line")
	assert.True(t, app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl)))
}
