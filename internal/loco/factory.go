package loco

import (
	"sync"

	"github.com/rook-computer/locopad/internal/state"
)

// Factory builds the Commander for the configured backend on first use and
// rebuilds it after the configuration changes.
type Factory struct {
	Logger Logger

	mu      sync.Mutex
	config  state.BackendConfig
	current *Commander
}

func NewFactory(config state.BackendConfig, logger Logger) *Factory {
	return &Factory{config: config, Logger: logger}
}

// Commander returns the live commander, connecting a new backend if needed.
func (f *Factory) Commander() *Commander {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current != nil {
		return f.current
	}
	var backend Backend
	switch f.config.ManagerType {
	case state.BackendJMRI:
		backend = NewJMRI(f.Logger)
	default:
		backend = NewDccEx(f.Logger)
	}
	if err := backend.Connect(f.config.ConnectionURL); err != nil {
		f.errorf("connect %s: %v", backend.Name(), err)
	}
	f.current = NewCommander(backend)
	return f.current
}

// Reconfigure drops the current backend; the next Commander call builds one
// for config. Suitable for state.Store.OnBackendChange.
func (f *Factory) Reconfigure(config state.BackendConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.config = config
	f.disconnectLocked()
}

func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnectLocked()
	return nil
}

func (f *Factory) disconnectLocked() {
	if f.current == nil {
		return
	}
	if err := f.current.Backend().Disconnect(); err != nil {
		f.errorf("disconnect %s: %v", f.current.Backend().Name(), err)
	}
	f.current = nil
}

func (f *Factory) errorf(format string, args ...interface{}) {
	if f.Logger != nil {
		f.Logger.Errorf("loco", format, args...)
	}
}
