package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
	"github.com/rook-computer/locopad/internal/state"
	"github.com/rook-computer/locopad/internal/ui/uitest"
)

// scriptedSource plays keys once, one per poll, then reports nothing.
type scriptedSource struct {
	mu    sync.Mutex
	keys  []buttons.Keys
	polls atomic.Int64
}

func (s *scriptedSource) Poll() buttons.Keys {
	s.polls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.keys) == 0 {
		return 0
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k
}

func newTestApp(t *testing.T, source buttons.Source) (*App, *uitest.Logger) {
	t.Helper()
	store := state.NewStore(t.TempDir(), nil)
	require.NoError(t, store.Load())
	log := &uitest.Logger{}
	a := New(store, render.NewMemoryRenderer(320, 240), source, nil)
	a.Logger = log
	a.Config.NoSplash = true
	a.Config.PollInterval = time.Millisecond
	a.Config.TickInterval = time.Millisecond
	a.Clock = uitest.NewManualClock()
	return a, log
}

func TestAppExitStopsLoops(t *testing.T) {
	source := &scriptedSource{}
	a, log := newTestApp(t, source)

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	require.Eventually(t, func() bool { return source.polls.Load() > 5 }, 2*time.Second, time.Millisecond)
	a.Exit(nil)
	a.Exit(errors.New("ignored"))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Contains(t, log.All(), "INFO ui: push *ui.Menu depth=1")
}

func TestAppExitError(t *testing.T) {
	a, _ := newTestApp(t, &scriptedSource{})
	boom := errors.New("boom")
	go func() {
		time.Sleep(10 * time.Millisecond)
		a.Exit(boom)
	}()
	assert.ErrorIs(t, a.Start(context.Background()), boom)
}

func TestAppContextCancel(t *testing.T) {
	a, _ := newTestApp(t, &scriptedSource{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Start(ctx), context.DeadlineExceeded)
}

func TestAppDispatchesKeysToPages(t *testing.T) {
	source := &scriptedSource{keys: []buttons.Keys{buttons.Down, buttons.Down, buttons.Down, buttons.Down, buttons.OK}}
	a, log := newTestApp(t, source)

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	require.Eventually(t, func() bool {
		return strings.Contains(strings.Join(log.All(), "\n"), "push *ui.Popup depth=2")
	}, 2*time.Second, time.Millisecond)
	a.Exit(nil)
	require.NoError(t, <-done)
}

func TestAppSplashWithoutImage(t *testing.T) {
	a, log := newTestApp(t, &scriptedSource{})
	a.Config.NoSplash = false
	a.Config.SplashImage = filepath.Join(t.TempDir(), "missing.png")

	go func() {
		time.Sleep(10 * time.Millisecond)
		a.Exit(nil)
	}()
	require.NoError(t, a.Start(context.Background()))

	all := strings.Join(log.All(), "\n")
	assert.Contains(t, all, "push *ui.Splash depth=2")
	assert.Contains(t, all, "open splash")
}

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("ui", "push %s", "menu")
	l.Errorf("state", "save failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^\S+ \[INFO\] ui: push menu$`, lines[0])
	assert.Regexp(t, `^\S+ \[ERROR\] state: save failed$`, lines[1])
}

func TestRotatingFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locopad.log")
	l, closer := NewRotatingFileLogger(path)
	l.Infof("app", "started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] app: started")
}
