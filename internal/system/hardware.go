package system

import (
	"fmt"

	"github.com/jaypipes/ghw"
)

// MACAddress returns the hardware address of iface, or of the first
// physical NIC when iface is empty.
func MACAddress(iface string) (string, error) {
	info, err := ghw.Network()
	if err != nil {
		return "", fmt.Errorf("network inventory: %w", err)
	}
	for _, nic := range info.NICs {
		if iface != "" && nic.Name != iface {
			continue
		}
		if iface == "" && (nic.IsVirtual || nic.MACAddress == "") {
			continue
		}
		return nic.MACAddress, nil
	}
	if iface == "" {
		return "", fmt.Errorf("no physical network interface")
	}
	return "", fmt.Errorf("no network interface %q", iface)
}

// MemoryMB returns usable RAM in megabytes.
func MemoryMB() (int64, error) {
	info, err := ghw.Memory()
	if err != nil {
		return 0, fmt.Errorf("memory inventory: %w", err)
	}
	return info.TotalUsableBytes / (1024 * 1024), nil
}
