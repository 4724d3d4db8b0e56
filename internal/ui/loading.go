package ui

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
)

const (
	spinnerRadius = 4
	spinnerStep   = 10
)

// Loading shows a message and a dot bouncing along a track. The animation
// runs on its own goroutine from the first Draw until Stop, and draws
// nothing while the page is paused under another page.
type Loading struct {
	Message  string
	Interval time.Duration

	mu      sync.Mutex
	started bool
	stopped bool
	paused  atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	position  int
	increment int
	frames    atomic.Int64
}

func NewLoading(message string) *Loading {
	return &Loading{
		Message:   message,
		Interval:  SpinnerInterval,
		stopCh:    make(chan struct{}),
		increment: spinnerStep,
	}
}

func (l *Loading) Draw(d *render.Display) {
	l.paused.Store(false)
	d.Do(func(s render.Surface) {
		w, _ := s.Size()
		s.FillScreen(render.Black)
		s.DrawText(l.Message, w/2, 100, render.TextStyle{Color: render.White, Align: render.TextAlignCenter})
	})
	l.start(d)
}

// HandleInput swallows all keys.
func (l *Loading) HandleInput(buttons.Keys) {}

func (l *Loading) start(d *render.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.stopped {
		return
	}
	l.started = true
	l.wg.Add(1)
	go l.animate(d)
}

// Stop halts the animation and waits for it to finish. Safe to call more
// than once and before the page was ever drawn.
func (l *Loading) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	close(l.stopCh)
	l.mu.Unlock()
	l.wg.Wait()
}

func (l *Loading) Close() error {
	l.Stop()
	return nil
}

// Pause stops drawing until the next Draw.
func (l *Loading) Pause() { l.paused.Store(true) }

func (l *Loading) Paused() bool { return l.paused.Load() }

// Running reports whether the animation goroutine is active.
func (l *Loading) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started && !l.stopped
}

// Frames returns how many animation steps were drawn.
func (l *Loading) Frames() int64 { return l.frames.Load() }

func (l *Loading) animate(d *render.Display) {
	defer l.wg.Done()
	interval := l.Interval
	if interval <= 0 {
		interval = SpinnerInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			if l.paused.Load() {
				continue
			}
			d.Do(func(s render.Surface) {
				if l.paused.Load() {
					return
				}
				l.step(s)
				l.frames.Add(1)
			})
		}
	}
}

func (l *Loading) step(s render.Surface) {
	w, h := s.Size()
	track := w / 2
	x0 := (w - track) / 2
	cy := h * 2 / 3

	s.FillCircle(x0+l.position-l.increment, cy, spinnerRadius+1, render.Black)
	s.FillCircle(x0+l.position, cy, spinnerRadius+1, render.Black)
	s.FillCircle(x0+l.position, cy, spinnerRadius/2, render.Blue)

	if next := l.position + l.increment; next > track || next < 0 {
		l.increment = -l.increment
	}
	l.position += l.increment

	s.FillCircle(x0+l.position, cy, spinnerRadius, render.Blue)
}
