package app

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rook-computer/locopad/internal/app/screens"
	"github.com/rook-computer/locopad/internal/assets"
	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/loco"
	"github.com/rook-computer/locopad/internal/render"
	"github.com/rook-computer/locopad/internal/state"
	"github.com/rook-computer/locopad/internal/system"
	"github.com/rook-computer/locopad/internal/ui"
)

// Config holds the process settings the app needs at runtime.
type Config struct {
	Version        string
	PollInterval   time.Duration
	TickInterval   time.Duration
	SplashImage    string
	SplashDuration time.Duration
	NoSplash       bool
	GraphicsMode   bool
	// CheckNetwork applies the saved network record at boot when the
	// device has no address.
	CheckNetwork bool
}

func DefaultConfig() Config {
	return Config{
		PollInterval:   20 * time.Millisecond,
		TickInterval:   100 * time.Millisecond,
		SplashDuration: ui.SplashDuration,
	}
}

type App struct {
	Store  *state.Store
	Render render.Renderer
	Input  buttons.Source
	Runner system.Runner
	Clock  ui.Clock
	Logger Logger
	Config Config

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, input buttons.Source, runner system.Runner) *App {
	return &App{
		Store:  store,
		Render: renderer,
		Input:  input,
		Runner: runner,
		Logger: NoopLogger{},
		Config: DefaultConfig(),
		exitCh: make(chan error, 1),
	}
}

// Exit requests the app to stop running. Only the first call counts.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// starter is implemented by key sources that read devices in the background.
type starter interface {
	Start(ctx context.Context) error
}

// Start brings up the display, pushes the root menu and runs the input,
// tick and flush loops until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Input == nil {
		app.Input = buttons.NoopSource{}
	}
	if app.Runner == nil {
		app.Runner = system.NoopRunner{}
	}

	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.Config.GraphicsMode {
		console := system.Console{Logger: app.Logger}
		console.Enter()
		defer console.Leave()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s, ok := app.Input.(starter); ok {
		if err := s.Start(loopCtx); err != nil {
			app.Logger.Errorf("app", "input start error: %v", err)
		}
	}

	factory := loco.NewFactory(app.Store.Backend(), app.Logger)
	app.Store.OnBackendChange(factory.Reconfigure)
	defer factory.Close()

	stack := ui.NewStack(app.Render.Display(), app.Clock)
	stack.Logger = app.Logger
	defer stack.Close()

	deps := &screens.Deps{
		Stack:   stack,
		Store:   app.Store,
		Runner:  app.Runner,
		Loco:    factory,
		Logger:  app.Logger,
		Version: app.Config.Version,
		Ctx:     loopCtx,
	}
	stack.Push(screens.MainMenu(deps))
	if !app.Config.NoSplash {
		app.showSplash(stack)
	}
	if app.Config.CheckNetwork {
		go app.checkNetwork(loopCtx, deps)
	}

	g, gctx := errgroup.WithContext(loopCtx)
	g.Go(func() error {
		return every(gctx, app.Config.PollInterval, func() { stack.HandleInput(app.Input.Poll()) })
	})
	g.Go(func() error {
		return every(gctx, app.Config.TickInterval, stack.Tick)
	})
	g.Go(func() error {
		return app.Render.RunLoop(gctx)
	})

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	case <-gctx.Done():
	}
	cancel()
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	return err
}

func (app *App) showSplash(stack *ui.Stack) {
	var img image.Image
	if app.Config.SplashImage != "" {
		var err error
		if img, err = assets.LoadSplash(app.Config.SplashImage); err != nil {
			app.Logger.Errorf("app", "%v", err)
		}
	}
	splash := ui.NewSplash(stack, img, app.Config.SplashDuration)
	if img == nil {
		splash.Title = "LocoPad"
	}
	stack.Push(splash)
}

func (app *App) checkNetwork(ctx context.Context, deps *screens.Deps) {
	if err := screens.EnsureNetwork(ctx, deps); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		app.Logger.Errorf("app", "%v", err)
		deps.Stack.Post(func() { deps.Stack.ShowPopup("Error: "+err.Error(), nil) })
	}
}

// every runs fn at interval until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func()) error {
	if interval <= 0 {
		return errors.New("loop interval must be positive")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn()
		}
	}
}
