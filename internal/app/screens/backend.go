package screens

import (
	"fmt"
	"net"
	"strconv"

	"github.com/rook-computer/locopad/internal/state"
	"github.com/rook-computer/locopad/internal/ui"
)

const defaultPort = "2560"

// BackendMenu builds the command station settings submenu template.
func BackendMenu(deps *Deps) *ui.Menu {
	return ui.NewMenu(deps.Stack, "Backend").
		Add("Type", nil, func() { chooseBackend(deps) }).
		Add("Server", nil, func() { editServer(deps) }).
		Add("Port", nil, func() { editPort(deps) })
}

var backendChoices = []struct {
	label string
	kind  state.BackendType
}{
	{"DCC-EX", state.BackendDccEx},
	{"JMRI", state.BackendJMRI},
}

func chooseBackend(deps *Deps) {
	items := make([]ui.ListItem, len(backendChoices))
	initial := 0
	current := deps.Store.Backend().ManagerType
	for i, choice := range backendChoices {
		items[i] = ui.ListItem{Label: choice.label, Value: i}
		if choice.kind == current {
			initial = i
		}
	}
	deps.Stack.ShowList("Backend type", items, initial, func(res ui.Result[ui.ListItem]) {
		if !res.Accepted {
			return
		}
		kind := backendChoices[res.Value.Value].kind
		err := deps.Store.UpdateBackend(func(c *state.BackendConfig) { c.ManagerType = kind })
		deps.report(err, "Backend: "+res.Value.Label)
	})
}

// splitURL splits a connection URL of the form host:port. A bare host gets
// the default port.
func splitURL(url string) (host, port string) {
	if url == "" {
		return "", defaultPort
	}
	host, port, err := net.SplitHostPort(url)
	if err != nil {
		return url, defaultPort
	}
	return host, port
}

func editServer(deps *Deps) {
	host, port := splitURL(deps.Store.Backend().ConnectionURL)
	deps.Stack.ShowInput("Server IP", ui.NumericIP, host, func(res ui.Result[string]) {
		if !res.Accepted {
			return
		}
		url := net.JoinHostPort(res.Value, port)
		err := deps.Store.UpdateBackend(func(c *state.BackendConfig) { c.ConnectionURL = url })
		deps.report(err, "Server saved")
	})
}

// parsePort accepts a decimal TCP port in 1-65535.
func parsePort(text string) (int, error) {
	port, err := strconv.Atoi(text)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid port %q", text)
	}
	return port, nil
}

func editPort(deps *Deps) {
	host, port := splitURL(deps.Store.Backend().ConnectionURL)
	deps.Stack.ShowInput("Port", ui.Numeric, port, func(res ui.Result[string]) {
		if !res.Accepted {
			return
		}
		value, err := parsePort(res.Value)
		if err != nil {
			deps.report(err, "")
			return
		}
		url := net.JoinHostPort(host, strconv.Itoa(value))
		err = deps.Store.UpdateBackend(func(c *state.BackendConfig) { c.ConnectionURL = url })
		deps.report(err, "Port saved")
	})
}
