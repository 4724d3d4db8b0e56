package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultConfigPath = "/etc/locopad/config.yml"

type deviceConfig struct {
	Framebuffer    string        `mapstructure:"framebuffer"`
	InputGlob      string        `mapstructure:"input-glob"`
	DataDir        string        `mapstructure:"data-dir"`
	LogFile        string        `mapstructure:"log-file"`
	Debug          bool          `mapstructure:"debug"`
	StdioLog       string        `mapstructure:"stdio-log"`
	NoSplash       bool          `mapstructure:"no-splash"`
	SplashImage    string        `mapstructure:"splash-image"`
	SplashDuration time.Duration `mapstructure:"splash-duration"`
	PollInterval   time.Duration `mapstructure:"poll-interval"`
	TickInterval   time.Duration `mapstructure:"tick-interval"`
	GraphicsMode   bool          `mapstructure:"graphics-mode"`
}

// loadConfig merges defaults, the optional YAML file, LOCOPAD_* environment
// variables and the command line flags, in increasing priority.
func loadConfig(configPath string, flags *pflag.FlagSet) (deviceConfig, error) {
	var cfg deviceConfig

	v := viper.New()
	v.SetEnvPrefix("LOCOPAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("framebuffer", "/dev/fb0")
	v.SetDefault("input-glob", "/dev/input/event*")
	v.SetDefault("data-dir", "/var/lib/locopad")
	v.SetDefault("log-file", "/var/log/locopad/locopad.log")
	v.SetDefault("debug", false)
	v.SetDefault("stdio-log", "")
	v.SetDefault("no-splash", false)
	v.SetDefault("splash-image", "")
	v.SetDefault("splash-duration", 3*time.Second)
	v.SetDefault("poll-interval", 20*time.Millisecond)
	v.SetDefault("tick-interval", 100*time.Millisecond)
	v.SetDefault("graphics-mode", true)

	if flags != nil {
		for _, name := range []string{"debug", "stdio-log", "no-splash"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return cfg, err
				}
			}
		}
	}

	if configPath == "" {
		configPath = defaultConfigPath
	}
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
