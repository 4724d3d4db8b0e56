package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rook-computer/locopad/internal/app"
	"github.com/rook-computer/locopad/internal/state"
)

func main() {
	dataDir := flag.String("data-dir", filepath.Join(os.TempDir(), "locopad-sim"), "directory for the simulated configuration store")
	scenario := flag.String("scenario", scenarioHome, "simulated network: home | offline | broken-radio")
	logFile := flag.String("log-file", "", "write a debug log to this file")
	noSplash := flag.Bool("no-splash", false, "skip the boot splash")
	flag.Parse()

	runner, err := newSimRunner(*scenario)
	if err != nil {
		fmt.Println("scenario error:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.NoopLogger{}
	if *logFile != "" {
		fileLogger, closer := app.NewRotatingFileLogger(*logFile)
		defer closer.Close()
		logger = fileLogger
	}
	runner.Logger = logger

	store := state.NewStore(*dataDir, logger)
	if err := store.Load(); err != nil {
		fmt.Println("config store error:", err)
		os.Exit(1)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := newTerminal(logger)
	a := app.New(store, term, term.Keys(), runner)
	a.Logger = logger
	a.Config.Version = "simulator"
	a.Config.NoSplash = *noSplash
	a.Config.CheckNetwork = true
	term.OnQuit = func() { a.Exit(nil) }

	if err := a.Start(processCtx); err != nil && processCtx.Err() == nil {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}
