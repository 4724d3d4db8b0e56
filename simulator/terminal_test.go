package main

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/locopad/internal/buttons"
)

func TestTerminalKeysLatchUntilPolled(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	k := &terminalKeys{hold: map[buttons.Keys]time.Time{}, now: func() time.Time { return now }}

	k.press(buttons.Up, now)
	k.press(buttons.OK, now)
	assert.Equal(t, buttons.Up|buttons.OK, k.Poll())
	assert.Equal(t, buttons.Keys(0), k.Poll())
}

func TestTerminalKeysHoldHorn(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	k := &terminalKeys{hold: map[buttons.Keys]time.Time{}, now: func() time.Time { return now }}

	k.press(buttons.Horn, now)
	assert.Equal(t, buttons.Horn, k.Poll())
	now = now.Add(holdDuration / 2)
	assert.Equal(t, buttons.Horn, k.Poll())
	now = now.Add(holdDuration)
	assert.Equal(t, buttons.Keys(0), k.Poll())
}

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want buttons.Keys
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), buttons.Up},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), buttons.OK},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), buttons.TightenBrake},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), buttons.ReleaseBrake},
		{tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone), buttons.Bell},
		{tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyFor(tt.ev))
	}
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone)))
}

func TestPaintCellsHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(2, 1)

	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	frame.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	frame.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	paintCells(screen, frame)

	r, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, '▀', r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 255), bg)
}

func TestSimRunnerScenarios(t *testing.T) {
	ctx := context.Background()
	r, err := newSimRunner(scenarioHome)
	require.NoError(t, err)
	out, _, err := r.Run(ctx, "netinfo.sh", "wifi-ip")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.42\n", out)

	_, _, err = r.Run(ctx, "wifi.sh", "join", "Cafe", "pw")
	require.NoError(t, err)
	out, _, _ = r.Run(ctx, "netinfo.sh", "wifi-ssid")
	assert.Equal(t, "Cafe\n", out)

	broken, err := newSimRunner(scenarioBrokenRadio)
	require.NoError(t, err)
	_, _, err = broken.Run(ctx, "wifi.sh", "scan")
	assert.Error(t, err)

	_, err = newSimRunner("mars")
	assert.Error(t, err)
}
