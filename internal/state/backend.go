package state

import "fmt"

type BackendType string

const (
	BackendDccEx BackendType = "DccEx"
	BackendJMRI  BackendType = "JMRI"
)

// BackendConfig selects the command station protocol and where to reach it.
type BackendConfig struct {
	ManagerType   BackendType `json:"managerType"`
	ConnectionURL string      `json:"connectionUrl"`
}

func DefaultBackend() BackendConfig { return BackendConfig{ManagerType: BackendDccEx} }

func (config BackendConfig) normalized() BackendConfig {
	if config.ManagerType != BackendJMRI {
		config.ManagerType = BackendDccEx
	}
	return config
}

func (store *Store) Backend() BackendConfig {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.backend
}

// UpdateBackend persists the changed record and notifies OnBackendChange
// listeners after the lock is released.
func (store *Store) UpdateBackend(fn func(*BackendConfig)) error {
	store.mu.Lock()
	next := store.backend
	fn(&next)
	next = next.normalized()
	if next == store.backend {
		store.mu.Unlock()
		return nil
	}
	if err := store.write(backendFile, next); err != nil {
		store.mu.Unlock()
		return fmt.Errorf("update backend: %w", err)
	}
	store.backend = next
	listeners := append([]func(BackendConfig){}, store.listeners...)
	store.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

func (store *Store) SetBackend(config BackendConfig) error {
	return store.UpdateBackend(func(c *BackendConfig) { *c = config })
}

// OnBackendChange registers fn to run after every saved backend change.
func (store *Store) OnBackendChange(fn func(BackendConfig)) {
	store.mu.Lock()
	store.listeners = append(store.listeners, fn)
	store.mu.Unlock()
}
