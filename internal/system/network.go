package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/rook-computer/locopad/internal/state"
)

const (
	netInfoScript = "netinfo.sh"
	wifiScript    = "wifi.sh"
)

func WiFiIPv4(ctx context.Context, r Runner) (string, error) {
	stdout, stderr, err := r.Run(ctx, netInfoScript, "wifi-ip")
	if err != nil {
		return "", fmt.Errorf("netinfo wifi-ip failed: %w: %s", err, stderr)
	}
	return strings.TrimSpace(stdout), nil
}

func WiFiSSID(ctx context.Context, r Runner) (string, error) {
	stdout, stderr, err := r.Run(ctx, netInfoScript, "wifi-ssid")
	if err != nil {
		return "", fmt.Errorf("netinfo wifi-ssid failed: %w: %s", err, stderr)
	}
	return strings.TrimSpace(stdout), nil
}

func EthernetIPv4(ctx context.Context, r Runner) (string, error) {
	stdout, stderr, err := r.Run(ctx, netInfoScript, "ethernet-ip")
	if err != nil {
		return "", fmt.Errorf("netinfo ethernet-ip failed: %w: %s", err, stderr)
	}
	return strings.TrimSpace(stdout), nil
}

// ScanSSIDs lists visible networks, one per output line, strongest first.
// Blank lines and duplicates are dropped.
func ScanSSIDs(ctx context.Context, r Runner) ([]string, error) {
	stdout, stderr, err := r.Run(ctx, wifiScript, "scan")
	if err != nil {
		return nil, fmt.Errorf("wifi scan failed: %w: %s", err, stderr)
	}
	seen := map[string]bool{}
	var ssids []string
	for _, line := range strings.Split(stdout, "\n") {
		ssid := strings.TrimSpace(line)
		if ssid == "" || seen[ssid] {
			continue
		}
		seen[ssid] = true
		ssids = append(ssids, ssid)
	}
	return ssids, nil
}

func EnsureHotspot(ctx context.Context, r Runner) error {
	_, stderr, err := r.Run(ctx, wifiScript, "hotspot")
	if err != nil {
		return fmt.Errorf("wifi hotspot failed: %w: %s", err, stderr)
	}
	return nil
}

func JoinWiFi(ctx context.Context, r Runner, ssid, password string) error {
	ssid = strings.TrimSpace(ssid)
	password = strings.TrimSpace(password)
	if ssid == "" {
		return fmt.Errorf("wifi join failed: empty ssid")
	}
	_, stderr, err := r.Run(ctx, wifiScript, "join", ssid, password)
	if err != nil {
		return fmt.Errorf("wifi join failed: %w: %s", err, stderr)
	}
	return nil
}

// ApplyNetwork brings the radio in line with config: hotspot when no SSID
// is set, otherwise join followed by DHCP or static addressing.
func ApplyNetwork(ctx context.Context, r Runner, config state.NetworkConfig) error {
	if strings.TrimSpace(config.SSID) == "" {
		return EnsureHotspot(ctx, r)
	}
	if err := JoinWiFi(ctx, r, config.SSID, config.Password); err != nil {
		return err
	}
	if config.DHCP {
		if _, stderr, err := r.Run(ctx, wifiScript, "dhcp"); err != nil {
			return fmt.Errorf("wifi dhcp failed: %w: %s", err, stderr)
		}
		return nil
	}
	if !config.Static() {
		return fmt.Errorf("static addressing needs an IP address and netmask")
	}
	_, stderr, err := r.Run(ctx, wifiScript, "static", config.IP, config.Mask, config.Router, config.DNS)
	if err != nil {
		return fmt.Errorf("wifi static failed: %w: %s", err, stderr)
	}
	return nil
}
