package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rook-computer/locopad/internal/app"
)

const (
	scenarioHome        = "home"
	scenarioOffline     = "offline"
	scenarioBrokenRadio = "broken-radio"
)

// simRunner answers the device scripts from memory so every screen can be
// exercised on a desktop.
type simRunner struct {
	Logger app.Logger

	mu       sync.Mutex
	scenario string
	ssid     string
	ip       string
}

func newSimRunner(scenario string) (*simRunner, error) {
	r := &simRunner{scenario: scenario}
	switch scenario {
	case scenarioHome, "":
		r.scenario = scenarioHome
		r.ssid = "Home"
		r.ip = "192.168.1.42"
	case scenarioOffline, scenarioBrokenRadio:
	default:
		return nil, fmt.Errorf("unknown scenario %q", scenario)
	}
	return r, nil
}

func (r *simRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Logger != nil {
		r.Logger.Infof("sim", "run %s %s", cmd, strings.Join(args, " "))
	}
	if len(args) == 0 {
		return "", "missing subcommand", fmt.Errorf("%s: missing subcommand", cmd)
	}
	if cmd == "wifi.sh" && r.scenario == scenarioBrokenRadio {
		return "", "wlan0: no such device", fmt.Errorf("%s %s: exit status 1", cmd, args[0])
	}

	switch cmd + " " + args[0] {
	case "netinfo.sh wifi-ip":
		return r.ip + "\n", "", nil
	case "netinfo.sh wifi-ssid":
		return r.ssid + "\n", "", nil
	case "netinfo.sh ethernet-ip":
		return "", "", nil
	case "wifi.sh scan":
		return "Home\nLayout Club\nCafe\n", "", nil
	case "wifi.sh hotspot":
		r.ssid = "LocoPad"
		r.ip = "192.168.4.1"
		return "", "", nil
	case "wifi.sh join":
		if len(args) > 1 {
			r.ssid = args[1]
		}
		return "", "", nil
	case "wifi.sh dhcp":
		r.ip = "192.168.1.42"
		return "", "", nil
	case "wifi.sh static":
		if len(args) > 1 {
			r.ip = args[1]
		}
		return "", "", nil
	}
	return "", "unknown command", fmt.Errorf("%s %s: unknown command", cmd, args[0])
}
