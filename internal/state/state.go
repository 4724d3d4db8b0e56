// Package state persists the device records edited from the menus.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/titanous/json5"
)

const (
	networkFile = "network.json"
	backendFile = "backend.json"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Store keeps the network and backend records in memory and mirrors every
// change to JSON files in Dir. Getters return copies.
type Store struct {
	Dir    string
	Logger Logger

	mu         sync.RWMutex
	network    NetworkConfig
	backend    BackendConfig
	needsApply bool
	listeners  []func(BackendConfig)
}

func NewStore(dir string, logger Logger) *Store {
	return &Store{Dir: dir, Logger: logger, network: DefaultNetwork(), backend: DefaultBackend()}
}

// Load reads both records. Missing or unreadable files fall back to
// defaults, which are written back. Only a data directory that cannot be
// created or written is an error.
func (store *Store) Load() error {
	if err := os.MkdirAll(store.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", store.Dir, err)
	}

	// A failed decode may have filled some fields, so start over from
	// the defaults.
	network := DefaultNetwork()
	networkOK := store.read(networkFile, &network)
	if !networkOK {
		network = DefaultNetwork()
	}
	backend := DefaultBackend()
	backendOK := store.read(backendFile, &backend)
	if !backendOK {
		backend = DefaultBackend()
	}
	backend = backend.normalized()

	store.mu.Lock()
	store.network = network
	store.backend = backend
	store.needsApply = false
	store.mu.Unlock()

	if !networkOK {
		if err := store.write(networkFile, network); err != nil {
			return err
		}
	}
	if !backendOK {
		if err := store.write(backendFile, backend); err != nil {
			return err
		}
	}
	store.infof("loaded network (dhcp=%t ssid=%q) and backend (%s %q)", network.DHCP, network.SSID, backend.ManagerType, backend.ConnectionURL)
	return nil
}

// read decodes name into v and reports whether the file was usable.
func (store *Store) read(name string, v interface{}) bool {
	path := filepath.Join(store.Dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		store.infof("%s missing, using defaults", name)
		return false
	}
	if err != nil {
		store.errorf("read %s: %v", path, err)
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		store.errorf("%s is empty, using defaults", name)
		return false
	}
	if err := json5.Unmarshal(data, v); err != nil {
		store.errorf("parse %s: %v, using defaults", path, err)
		return false
	}
	return true
}

// write replaces name atomically.
func (store *Store) write(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(store.Dir, name)
	tmp, err := os.CreateTemp(store.Dir, name+".*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (store *Store) infof(format string, args ...interface{}) {
	if store.Logger != nil {
		store.Logger.Infof("state", format, args...)
	}
}

func (store *Store) errorf(format string, args ...interface{}) {
	if store.Logger != nil {
		store.Logger.Errorf("state", format, args...)
	}
}
