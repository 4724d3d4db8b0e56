package screens

import (
	"context"
	"fmt"

	"github.com/rook-computer/locopad/internal/state"
	"github.com/rook-computer/locopad/internal/system"
	"github.com/rook-computer/locopad/internal/ui"
)

const (
	dhcpOn  = 1
	dhcpOff = 0
)

// WiFiMenu builds the WiFi settings submenu template.
func WiFiMenu(deps *Deps) *ui.Menu {
	return ui.NewMenu(deps.Stack, "WiFi").
		Add("SSID", nil, func() { chooseSSID(deps) }).
		Add("Password", nil, func() { editPassword(deps) }).
		Add("DHCP", nil, func() { chooseDHCP(deps) }).
		Add("IP address", nil, func() { editAddress(deps, "IP address", func(c *state.NetworkConfig) *string { return &c.IP }) }).
		Add("Netmask", nil, func() { editAddress(deps, "Netmask", func(c *state.NetworkConfig) *string { return &c.Mask }) }).
		Add("Gateway", nil, func() { editAddress(deps, "Gateway", func(c *state.NetworkConfig) *string { return &c.Router }) }).
		Add("DNS", nil, func() { editAddress(deps, "DNS", func(c *state.NetworkConfig) *string { return &c.DNS }) }).
		Add("Apply", nil, func() { applyNetwork(deps) })
}

func chooseSSID(deps *Deps) {
	var ssids []string
	deps.background("Scanning...", func(ctx context.Context) error {
		var err error
		ssids, err = system.ScanSSIDs(ctx, deps.Runner)
		return err
	}, func(err error) {
		if err != nil {
			deps.report(fmt.Errorf("scan: %w", err), "")
			return
		}
		if len(ssids) == 0 {
			deps.Stack.ShowPopup("No networks found", nil)
			return
		}
		current := deps.Store.Network().SSID
		items := make([]ui.ListItem, len(ssids))
		initial := 0
		for i, ssid := range ssids {
			items[i] = ui.ListItem{Label: ssid, Value: i}
			if ssid == current {
				initial = i
			}
		}
		deps.Stack.ShowList("Select network", items, initial, func(res ui.Result[ui.ListItem]) {
			if !res.Accepted {
				return
			}
			ssid := res.Value.Label
			err := deps.Store.UpdateNetwork(func(c *state.NetworkConfig) { c.SSID = ssid })
			deps.infof("ssid set to %q", ssid)
			deps.report(err, "SSID saved")
		})
	})
}

func editPassword(deps *Deps) {
	deps.Stack.ShowInput("WiFi password", ui.Alphanumeric, deps.Store.Network().Password, func(res ui.Result[string]) {
		if !res.Accepted {
			return
		}
		err := deps.Store.UpdateNetwork(func(c *state.NetworkConfig) { c.Password = res.Value })
		deps.infof("password set (%d chars)", len(res.Value))
		deps.report(err, "Password saved")
	})
}

func chooseDHCP(deps *Deps) {
	items := []ui.ListItem{{Label: "On", Value: dhcpOn}, {Label: "Off", Value: dhcpOff}}
	initial := 0
	if !deps.Store.Network().DHCP {
		initial = 1
	}
	deps.Stack.ShowList("DHCP", items, initial, func(res ui.Result[ui.ListItem]) {
		if !res.Accepted {
			return
		}
		on := res.Value.Value == dhcpOn
		err := deps.Store.UpdateNetwork(func(c *state.NetworkConfig) { c.DHCP = on })
		deps.report(err, "DHCP "+res.Value.Label)
	})
}

func editAddress(deps *Deps, label string, field func(*state.NetworkConfig) *string) {
	current := deps.Store.Network()
	deps.Stack.ShowInput(label, ui.NumericIP, *field(&current), func(res ui.Result[string]) {
		if !res.Accepted {
			return
		}
		err := deps.Store.UpdateNetwork(func(c *state.NetworkConfig) { *field(c) = res.Value })
		deps.report(err, label+" saved")
	})
}

func applyNetwork(deps *Deps) {
	config := deps.Store.Network()
	deps.background("Applying...", func(ctx context.Context) error {
		return system.ApplyNetwork(ctx, deps.Runner, config)
	}, func(err error) {
		if err == nil {
			deps.Store.MarkApplied()
		}
		deps.report(err, "Network applied")
	})
}

// EnsureNetwork runs at boot. When the device has no address on any
// interface, or the saved record was never applied, the saved settings are
// applied; with no SSID configured that brings up the hotspot.
func EnsureNetwork(ctx context.Context, deps *Deps) error {
	config := deps.Store.Network()

	wifiIP, err := system.WiFiIPv4(ctx, deps.Runner)
	if err != nil {
		deps.errorf("netinfo wifi-ip failed: %v", err)
	}
	ethernetIP, err := system.EthernetIPv4(ctx, deps.Runner)
	if err != nil {
		deps.errorf("netinfo ethernet-ip failed: %v", err)
	}
	if (wifiIP != "" || ethernetIP != "") && !deps.Store.NeedsApply() {
		deps.infof("network up (wifi=%q ethernet=%q)", wifiIP, ethernetIP)
		return nil
	}

	if err := system.ApplyNetwork(ctx, deps.Runner, config); err != nil {
		return fmt.Errorf("network setup: %w", err)
	}
	deps.Store.MarkApplied()
	deps.infof("network applied (ssid=%q dhcp=%t)", config.SSID, config.DHCP)
	return nil
}
