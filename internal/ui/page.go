// Package ui is the page navigation engine: a stack of full-screen pages
// that share one key source and one display.
package ui

import (
	"time"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
)

// Page is one full-screen unit. Draw renders the page through the display
// lock; HandleInput consumes one poll of the key source and is called only
// while the page is on top of the stack.
type Page interface {
	Draw(d *render.Display)
	HandleInput(keys buttons.Keys)
}

// Ticker is implemented by pages with time-driven content (caret blink).
type Ticker interface {
	Tick(now time.Time)
}

// Pauser is implemented by pages that draw on their own goroutine. The
// stack pauses such a page when another page covers it; the page resumes
// on its next Draw.
type Pauser interface {
	Pause()
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Timing used by the built-in pages.
const (
	InputDebounce   = 200 * time.Millisecond
	KeyHighlight    = 100 * time.Millisecond
	ErrorDisplay    = 1500 * time.Millisecond
	CaretInterval   = 500 * time.Millisecond
	SpinnerInterval = 100 * time.Millisecond
	SplashDuration  = 3 * time.Second
)

// Result is what a modal dialog reports when it completes.
type Result[T any] struct {
	Accepted bool
	Value    T
}

// ListItem is one option of a list dialog.
type ListItem struct {
	Label string
	Value int
}
