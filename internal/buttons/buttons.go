package buttons

import "strings"

// Keys is a bitmask of logical keys held down at the time of a poll.
// Several bits may be set at once (chords); any pattern is valid input.
type Keys uint16

const (
	OK           Keys = 1
	Up           Keys = 2
	Down         Keys = 4
	Left         Keys = 8
	Right        Keys = 16
	TightenBrake Keys = 32
	ReleaseBrake Keys = 64
	Horn         Keys = 128
	Bell         Keys = 256
)

var keyNames = []struct {
	key  Keys
	name string
}{
	{OK, "ok"},
	{Up, "up"},
	{Down, "down"},
	{Left, "left"},
	{Right, "right"},
	{TightenBrake, "tighten-brake"},
	{ReleaseBrake, "release-brake"},
	{Horn, "horn"},
	{Bell, "bell"},
}

// Has reports whether any of the bits in k are set.
func (keys Keys) Has(k Keys) bool { return keys&k != 0 }

func (keys Keys) String() string {
	if keys == 0 {
		return "none"
	}
	var parts []string
	for _, kn := range keyNames {
		if keys&kn.key != 0 {
			parts = append(parts, kn.name)
		}
	}
	return strings.Join(parts, "+")
}

// Source returns the currently pressed keys. Poll must not block.
type Source interface {
	Poll() Keys
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() Keys

func (f SourceFunc) Poll() Keys { return f() }

type NoopSource struct{}

func (NoopSource) Poll() Keys { return 0 }
