package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/locopad/internal/app"
	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
	"github.com/rook-computer/locopad/internal/state"
	"github.com/rook-computer/locopad/internal/system"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:          "locopad",
	Short:        "Handheld model train controller",
	Long:         `Runs the LocoPad device UI on the framebuffer, reading the keypad from evdev.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default "+defaultConfigPath+")")
	rootCmd.Flags().Bool("debug", false, "write a rotated debug log to log-file")
	rootCmd.Flags().String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also LOCOPAD_STDIO_LOG")
	rootCmd.Flags().Bool("no-splash", false, "skip the boot splash")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg deviceConfig) error {
	// Console output is invisible once the VT is in graphics mode, so
	// panics go to a file when asked.
	if cfg.StdioLog != "" {
		if err := redirectStdIO(cfg.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if cfg.Debug {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			fmt.Println("debug log dir error:", err)
		}
		fileLogger, closer := app.NewRotatingFileLogger(cfg.LogFile)
		defer closer.Close()
		logger = fileLogger
		logger.Infof("main", "debug logging enabled, version %s", version)
	}

	store := state.NewStore(cfg.DataDir, logger)
	if err := store.Load(); err != nil {
		logger.Errorf("main", "%v", err)
		return err
	}

	renderer := render.NewFBRenderer(cfg.Framebuffer, logger)
	keys := buttons.NewEvdevSource(cfg.InputGlob, logger)

	a := app.New(store, renderer, keys, system.ShellRunner{Logger: logger})
	a.Logger = logger
	a.Config = app.Config{
		Version:        version,
		PollInterval:   cfg.PollInterval,
		TickInterval:   cfg.TickInterval,
		SplashImage:    cfg.SplashImage,
		SplashDuration: cfg.SplashDuration,
		NoSplash:       cfg.NoSplash,
		GraphicsMode:   cfg.GraphicsMode,
		CheckNetwork:   true,
	}
	keys.OnExit = func() { a.Exit(nil) }

	err := a.Start(ctx)
	if err != nil && ctx.Err() == nil {
		logger.Errorf("main", "app stopped: %v", err)
		return err
	}
	logger.Infof("main", "shutdown")
	return nil
}

