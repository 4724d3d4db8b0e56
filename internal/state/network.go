package state

import "fmt"

// NetworkConfig is the persisted WiFi and addressing record.
type NetworkConfig struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
	IP       string `json:"ip"`
	Mask     string `json:"mask"`
	Router   string `json:"router"`
	DNS      string `json:"dns"`
	DHCP     bool   `json:"dhcp"`
}

func DefaultNetwork() NetworkConfig { return NetworkConfig{DHCP: true} }

// Static reports whether the record carries a usable static address.
func (config NetworkConfig) Static() bool {
	return !config.DHCP && config.IP != "" && config.Mask != ""
}

func (store *Store) Network() NetworkConfig {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.network
}

// UpdateNetwork applies fn to a copy of the record and persists the result.
// The in-memory record only changes when the save succeeds.
func (store *Store) UpdateNetwork(fn func(*NetworkConfig)) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	next := store.network
	fn(&next)
	if next == store.network {
		return nil
	}
	if err := store.write(networkFile, next); err != nil {
		return fmt.Errorf("update network: %w", err)
	}
	store.network = next
	store.needsApply = true
	return nil
}

func (store *Store) SetNetwork(config NetworkConfig) error {
	return store.UpdateNetwork(func(c *NetworkConfig) { *c = config })
}

// NeedsApply reports whether the network record changed since the last
// MarkApplied.
func (store *Store) NeedsApply() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.needsApply
}

// MarkApplied records that the current network settings are live.
func (store *Store) MarkApplied() {
	store.mu.Lock()
	store.needsApply = false
	store.mu.Unlock()
}
