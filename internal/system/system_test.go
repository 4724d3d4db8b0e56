package system

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/locopad/internal/state"
)

type call struct {
	cmd  string
	args []string
}

type fakeRunner struct {
	calls  []call
	stdout map[string]string
	fail   map[string]error
}

func (r *fakeRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	key := cmd + " " + strings.Join(args, " ")
	r.calls = append(r.calls, call{cmd: cmd, args: args})
	for prefix, err := range r.fail {
		if strings.HasPrefix(key, prefix) {
			return "", "boom", err
		}
	}
	return r.stdout[key], "", nil
}

func (r *fakeRunner) commands() []string {
	var out []string
	for _, c := range r.calls {
		out = append(out, strings.TrimSpace(c.cmd+" "+strings.Join(c.args, " ")))
	}
	return out
}

func TestNetInfoTrims(t *testing.T) {
	r := &fakeRunner{stdout: map[string]string{
		"netinfo.sh wifi-ip":     "192.168.4.1\n",
		"netinfo.sh wifi-ssid":   " layout \n",
		"netinfo.sh ethernet-ip": "",
	}}
	ip, err := WiFiIPv4(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "192.168.4.1", ip)

	ssid, err := WiFiSSID(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "layout", ssid)

	eth, err := EthernetIPv4(context.Background(), r)
	require.NoError(t, err)
	assert.Empty(t, eth)
}

func TestNetInfoError(t *testing.T) {
	r := &fakeRunner{fail: map[string]error{"netinfo.sh": errors.New("exit 1")}}
	_, err := WiFiIPv4(context.Background(), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestScanSSIDs(t *testing.T) {
	r := &fakeRunner{stdout: map[string]string{"wifi.sh scan": "club\n\nhome\nclub\n  guest  \n"}}
	ssids, err := ScanSSIDs(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, []string{"club", "home", "guest"}, ssids)
}

func TestApplyNetwork(t *testing.T) {
	tests := []struct {
		name    string
		config  state.NetworkConfig
		want    []string
		wantErr bool
	}{
		{
			name:   "no ssid falls back to hotspot",
			config: state.NetworkConfig{DHCP: true},
			want:   []string{"wifi.sh hotspot"},
		},
		{
			name:   "dhcp",
			config: state.NetworkConfig{SSID: "club", Password: "pw", DHCP: true},
			want:   []string{"wifi.sh join club pw", "wifi.sh dhcp"},
		},
		{
			name:   "static",
			config: state.NetworkConfig{SSID: "club", IP: "192.168.1.20", Mask: "255.255.255.0", Router: "192.168.1.1", DNS: "1.1.1.1"},
			want:   []string{"wifi.sh join club", "wifi.sh static 192.168.1.20 255.255.255.0 192.168.1.1 1.1.1.1"},
		},
		{
			name:    "static without address",
			config:  state.NetworkConfig{SSID: "club"},
			want:    []string{"wifi.sh join club"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{}
			err := ApplyNetwork(context.Background(), r, tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, r.commands())
		})
	}
}

func TestApplyNetworkStopsOnJoinFailure(t *testing.T) {
	r := &fakeRunner{fail: map[string]error{"wifi.sh join": errors.New("exit 3")}}
	err := ApplyNetwork(context.Background(), r, state.NetworkConfig{SSID: "club", DHCP: true})
	require.Error(t, err)
	assert.Equal(t, []string{"wifi.sh join club"}, r.commands())
}

func TestJoinWiFiRequiresSSID(t *testing.T) {
	r := &fakeRunner{}
	assert.Error(t, JoinWiFi(context.Background(), r, "  ", "pw"))
	assert.Empty(t, r.calls)
}

func TestShellRunnerCommand(t *testing.T) {
	name, args := ShellRunner{}.command("wifi.sh", []string{"scan"})
	assert.Equal(t, "sudo", name)
	assert.Equal(t, []string{"wifi.sh", "scan"}, args)

	name, args = ShellRunner{Sudo: "-"}.command("wifi.sh", []string{"scan"})
	assert.Equal(t, "wifi.sh", name)
	assert.Equal(t, []string{"scan"}, args)
}

func TestShellRunnerRunsDirectly(t *testing.T) {
	stdout, _, err := ShellRunner{Sudo: "-"}.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout)

	_, _, err = ShellRunner{Sudo: "-"}.Run(context.Background(), "false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit 1")
}

func TestRedactHidesPassword(t *testing.T) {
	assert.Equal(t, []string{"join", "club", "<6 chars>"}, redact(wifiScript, []string{"join", "club", "secret"}))
	assert.Equal(t, []string{"scan"}, redact(wifiScript, []string{"scan"}))
}
