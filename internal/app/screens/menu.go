package screens

import (
	"fmt"
	"strings"

	"github.com/rook-computer/locopad/internal/system"
	"github.com/rook-computer/locopad/internal/ui"
)

// MainMenu builds the root menu template.
func MainMenu(deps *Deps) *ui.Menu {
	return ui.NewMenu(deps.Stack, "LocoPad").
		Add("Drive", nil, func() { deps.Stack.Push(NewDriverCab(deps)) }).
		Add("WiFi", WiFiMenu(deps), nil).
		Add("Backend", BackendMenu(deps), nil).
		Add("Network info", nil, func() { ShowNetworkInfo(deps) }).
		Add("About", nil, func() { deps.Stack.ShowPopup(aboutText(deps), nil) })
}

func aboutText(deps *Deps) string {
	lines := []string{"LocoPad " + deps.Version}
	memory := deps.MemoryMB
	if memory == nil {
		memory = system.MemoryMB
	}
	if mb, err := memory(); err == nil {
		lines = append(lines, fmt.Sprintf("%d MB RAM", mb))
	}
	backend := deps.Store.Backend()
	lines = append(lines, "Backend: "+string(backend.ManagerType))
	return strings.Join(lines, "\n")
}
