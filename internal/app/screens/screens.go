// Package screens builds the product pages on top of the ui stack.
package screens

import (
	"context"

	"github.com/rook-computer/locopad/internal/loco"
	"github.com/rook-computer/locopad/internal/state"
	"github.com/rook-computer/locopad/internal/system"
	"github.com/rook-computer/locopad/internal/ui"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Deps carries the collaborators every screen may need.
type Deps struct {
	Stack   *ui.Stack
	Store   *state.Store
	Runner  system.Runner
	Loco    *loco.Factory
	Logger  Logger
	Version string

	// Ctx bounds background work started from screens.
	Ctx context.Context

	// Hardware lookups; nil uses the system package.
	MACAddress func(iface string) (string, error)
	MemoryMB   func() (int64, error)
}

func (deps *Deps) ctx() context.Context {
	if deps.Ctx == nil {
		return context.Background()
	}
	return deps.Ctx
}

// background shows a spinner while work runs on its own goroutine, then
// hides it and calls done on the polling loop.
func (deps *Deps) background(message string, work func(ctx context.Context) error, done func(err error)) {
	spinner := deps.Stack.ShowLoading(message)
	ctx := deps.ctx()
	go func() {
		err := work(ctx)
		deps.Stack.Post(func() {
			deps.Stack.HideLoading(spinner)
			done(err)
		})
	}()
}

// report shows the outcome of a save as a popup.
func (deps *Deps) report(err error, ok string) {
	if err != nil {
		deps.errorf("%v", err)
		deps.Stack.ShowPopup("Error: "+err.Error(), nil)
		return
	}
	deps.Stack.ShowPopup(ok, nil)
}

func (deps *Deps) infof(format string, args ...interface{}) {
	if deps.Logger != nil {
		deps.Logger.Infof("screens", format, args...)
	}
}

func (deps *Deps) errorf(format string, args ...interface{}) {
	if deps.Logger != nil {
		deps.Logger.Errorf("screens", format, args...)
	}
}
