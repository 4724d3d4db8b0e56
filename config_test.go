package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "/dev/fb0", cfg.Framebuffer)
	assert.Equal(t, "/dev/input/event*", cfg.InputGlob)
	assert.Equal(t, "/var/lib/locopad", cfg.DataDir)
	assert.Equal(t, 3*time.Second, cfg.SplashDuration)
	assert.Equal(t, 20*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval)
	assert.True(t, cfg.GraphicsMode)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("data-dir: /tmp/locopad\npoll-interval: 50ms\ngraphics-mode: false\n"), 0o644))
	t.Setenv("LOCOPAD_FRAMEBUFFER", "/dev/fb1")
	t.Setenv("LOCOPAD_SPLASH_IMAGE", "/opt/splash.png")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("debug", false, "")
	flags.Bool("no-splash", false, "")
	flags.String("stdio-log", "", "")
	require.NoError(t, flags.Parse([]string{"--debug", "--no-splash"}))

	cfg, err := loadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/locopad", cfg.DataDir)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	assert.False(t, cfg.GraphicsMode)
	assert.Equal(t, "/dev/fb1", cfg.Framebuffer)
	assert.Equal(t, "/opt/splash.png", cfg.SplashImage)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.NoSplash)
	assert.Empty(t, cfg.StdioLog)
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("data-dir: [unterminated\n"), 0o644))
	_, err := loadConfig(path, nil)
	assert.Error(t, err)
}
