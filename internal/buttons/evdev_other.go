//go:build !linux

package buttons

import (
	"context"
	"errors"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// EvdevSource is only available on Linux.
type EvdevSource struct {
	Glob   string
	Logger Logger
	OnExit func()
}

func NewEvdevSource(glob string, logger Logger) *EvdevSource {
	return &EvdevSource{Glob: glob, Logger: logger}
}

func (s *EvdevSource) Poll() Keys { return 0 }

func (s *EvdevSource) Start(ctx context.Context) error {
	return errors.New("evdev input is only supported on linux")
}

func (s *EvdevSource) Wait() {}
