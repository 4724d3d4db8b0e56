// Package loco forwards driver intent to a command station backend.
package loco

type LightStatus int

const (
	LightsOff LightStatus = iota
	LightsDim
	LightsBright
	LightsDitches
)

func (s LightStatus) String() string {
	switch s {
	case LightsOff:
		return "OFF"
	case LightsDim:
		return "DIMM"
	case LightsBright:
		return "BRIGHT"
	case LightsDitches:
		return "DITCHES"
	default:
		return "UNKNOWN"
	}
}

// Next cycles OFF, DIMM, BRIGHT, DITCHES and back to OFF.
func (s LightStatus) Next() LightStatus { return (s + 1) % 4 }

// Prev cycles in the opposite direction.
func (s LightStatus) Prev() LightStatus { return (s + 3) % 4 }

// Backend talks to one kind of command station. Callers go through a
// Commander, which filters repeated values.
type Backend interface {
	Name() string
	Connect(connectionURL string) error
	Disconnect() error
	SendCommand(command string) error
	SendSpeed(speed int) error
	SendBrake(brake int) error
	SendFrontLights(status LightStatus) error
	SendBackLights(status LightStatus) error
	SendBell(active bool) error
	SendHorn(active bool) error
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}
