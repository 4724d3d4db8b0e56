//go:build linux

package buttons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvdevApplyTracksHeldKeys(t *testing.T) {
	src := NewEvdevSource("", nil)
	devA, devB := map[uint16]bool{}, map[uint16]bool{}

	src.apply(devA, keyUp, 1)
	assert.Equal(t, Up, src.Poll())

	// autorepeat does not change the mask
	src.apply(devA, keyUp, 2)
	assert.Equal(t, Up, src.Poll())

	src.apply(devB, keyZ, 1)
	assert.Equal(t, Up|TightenBrake, src.Poll())

	src.apply(devA, keyUp, 0)
	assert.Equal(t, TightenBrake, src.Poll())

	// release without press is ignored
	src.apply(devA, keyDown, 0)
	assert.Equal(t, TightenBrake, src.Poll())

	src.apply(devB, keyZ, 0)
	assert.Equal(t, Keys(0), src.Poll())
}

func TestEvdevSameKeyOnTwoDevices(t *testing.T) {
	src := NewEvdevSource("", nil)
	devA, devB := map[uint16]bool{}, map[uint16]bool{}

	src.apply(devA, keyEnter, 1)
	src.apply(devB, keySpace, 1)
	src.apply(devA, keyEnter, 0)
	assert.Equal(t, OK, src.Poll())

	src.apply(devB, keySpace, 0)
	assert.Equal(t, Keys(0), src.Poll())
}

func TestEvdevTwoCodesForOneKey(t *testing.T) {
	src := NewEvdevSource("", nil)
	dev := map[uint16]bool{}

	src.apply(dev, keyEnter, 1)
	src.apply(dev, keySpace, 1)
	src.apply(dev, keySpace, 0)
	assert.Equal(t, OK, src.Poll(), "enter is still down")

	src.apply(dev, keyEnter, 2)
	assert.Equal(t, OK, src.Poll())

	src.apply(dev, keyEnter, 0)
	assert.Equal(t, Keys(0), src.Poll())
	assert.Empty(t, dev)
}

func TestEvdevExitOnce(t *testing.T) {
	calls := 0
	src := NewEvdevSource("", nil)
	src.OnExit = func() { calls++ }

	src.requestExit()
	src.requestExit()
	assert.Equal(t, 1, calls)
}
