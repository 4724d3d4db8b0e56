package screens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/loco"
)

func (h *harness) sent() string {
	var lines []string
	for _, line := range h.log.All() {
		if strings.HasPrefix(line, "INFO dccex: ") {
			lines = append(lines, strings.TrimPrefix(line, "INFO dccex: "))
		}
	}
	return strings.Join(lines, "\n")
}

func (h *harness) openCab(t *testing.T) *DriverCab {
	t.Helper()
	h.press(buttons.OK)
	cab, ok := h.stack.Current().(*DriverCab)
	if !ok {
		t.Fatalf("expected driver cab, got %T", h.stack.Current())
	}
	return cab
}

func TestDriverCabIgnoresHeldOpenKey(t *testing.T) {
	h := newHarness(t)
	cab := h.openCab(t)
	h.press(buttons.OK)
	assert.Same(t, cab, h.stack.Current())

	h.press(0, buttons.OK)
	assert.Equal(t, 1, h.stack.Len())
}

func TestDriverCabSpeedAndBrake(t *testing.T) {
	h := newHarness(t)
	cab := h.openCab(t)

	h.press(buttons.Up, buttons.Up, buttons.Up)
	assert.Equal(t, 15, cab.Speed())
	h.press(buttons.Down)
	assert.Equal(t, 10, cab.Speed())
	h.press(buttons.TightenBrake)
	assert.Equal(t, 5, cab.Brake())
	h.press(buttons.ReleaseBrake, buttons.ReleaseBrake)
	assert.Equal(t, 0, cab.Brake())

	sent := h.sent()
	assert.Contains(t, sent, "speed 15%")
	assert.Contains(t, sent, "speed 10%")
	assert.Contains(t, sent, "brake 5%")
	assert.Equal(t, 1, strings.Count(sent, "brake 0%"))
	assert.True(t, h.rec.HasText("15%"))
}

func TestDriverCabClampsSpeed(t *testing.T) {
	h := newHarness(t)
	cab := h.openCab(t)
	for i := 0; i < 25; i++ {
		h.press(buttons.Up)
	}
	assert.Equal(t, 100, cab.Speed())
	assert.Equal(t, 1, strings.Count(h.sent(), "speed 100%"))
}

func TestDriverCabRedrawsOnlyOnChange(t *testing.T) {
	h := newHarness(t)
	h.openCab(t)
	h.press(0)
	h.rec.Reset()
	h.press(0, buttons.Down, buttons.ReleaseBrake)
	assert.Empty(t, h.rec.Ops())

	h.press(buttons.Up)
	assert.True(t, h.rec.HasText("Train Controls"))
}

func TestDriverCabLightsAreEdgeTriggered(t *testing.T) {
	h := newHarness(t)
	cab := h.openCab(t)
	h.press(0, buttons.Right, buttons.Right, buttons.Right)
	assert.Equal(t, loco.LightsDim, cab.Lights())
	h.press(0, buttons.Right, 0, buttons.Left, 0, buttons.Left)
	assert.Equal(t, loco.LightsOff, cab.Lights())
	h.press(0, buttons.Left)
	assert.Equal(t, loco.LightsDitches, cab.Lights())
	assert.Contains(t, h.sent(), "front lights DITCHES")
}

func TestDriverCabHornHeld(t *testing.T) {
	h := newHarness(t)
	h.openCab(t)
	h.press(buttons.Horn|buttons.Bell, buttons.Horn|buttons.Bell, buttons.Bell)
	sent := h.sent()
	assert.Equal(t, 1, strings.Count(sent, "horn true"))
	assert.Equal(t, 1, strings.Count(sent, "horn false"))
	assert.Equal(t, 1, strings.Count(sent, "bell true"))
	assert.NotContains(t, sent, "bell false")

	h.press(buttons.OK | buttons.Bell)
	assert.Equal(t, 1, h.stack.Len())
	assert.Contains(t, h.sent(), "bell false")
}

func TestGaugePoint(t *testing.T) {
	x, y := gaugePoint(100, 100, 50, 50)
	assert.Equal(t, 100, x)
	assert.Equal(t, 50, y)

	x, y = gaugePoint(100, 100, 50, 0)
	assert.Less(t, x, 100)
	assert.Greater(t, y, 100)

	x, y = gaugePoint(100, 100, 50, 100)
	assert.Greater(t, x, 100)
	assert.Greater(t, y, 100)
}
