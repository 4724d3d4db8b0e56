package screens

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/loco"
	"github.com/rook-computer/locopad/internal/render"
	"github.com/rook-computer/locopad/internal/render/layout"
)

const (
	driveStep    = 5
	repeatDelay  = 100 * time.Millisecond
	gaugeRadius  = 50
	gaugeSweep   = 270.0
	needleLength = gaugeRadius - 8
)

var gaugeTicks = []int{0, 25, 50, 75, 100}

// DriverCab shows speed and brake gauges and forwards the driver's keys to
// the command station.
type DriverCab struct {
	deps *Deps

	speed  int
	brake  int
	lights loco.LightStatus
	horn   bool
	bell   bool

	prev   buttons.Keys
	closed bool
}

// NewDriverCab returns the cab page. Keys that opened it are ignored until
// they are released.
func NewDriverCab(deps *Deps) *DriverCab {
	return &DriverCab{deps: deps, prev: buttons.OK | buttons.Right}
}

func (p *DriverCab) Speed() int               { return p.speed }
func (p *DriverCab) Brake() int               { return p.brake }
func (p *DriverCab) Lights() loco.LightStatus { return p.lights }

func (p *DriverCab) commander() *loco.Commander {
	if p.deps.Loco == nil {
		return nil
	}
	return p.deps.Loco.Commander()
}

func (p *DriverCab) send(what string, fn func(c *loco.Commander) error) {
	c := p.commander()
	if c == nil {
		return
	}
	if err := fn(c); err != nil {
		p.deps.errorf("send %s: %v", what, err)
	}
}

func (p *DriverCab) HandleInput(keys buttons.Keys) {
	if p.closed {
		return
	}
	pressed := keys &^ p.prev
	p.prev = keys

	if pressed.Has(buttons.OK) {
		p.closed = true
		p.deps.Stack.Pop()
		return
	}

	changed := false
	repeat := false

	if delta := axis(keys, buttons.Up, buttons.Down); delta != 0 {
		if next := clampPercent(p.speed + delta*driveStep); next != p.speed {
			p.speed = next
			p.send("speed", func(c *loco.Commander) error { return c.SetSpeed(next) })
			changed, repeat = true, true
		}
	}
	if delta := axis(keys, buttons.TightenBrake, buttons.ReleaseBrake); delta != 0 {
		if next := clampPercent(p.brake + delta*driveStep); next != p.brake {
			p.brake = next
			p.send("brake", func(c *loco.Commander) error { return c.SetBrake(next) })
			changed, repeat = true, true
		}
	}

	if pressed.Has(buttons.Right) {
		p.setLights(p.lights.Next())
		changed = true
	} else if pressed.Has(buttons.Left) {
		p.setLights(p.lights.Prev())
		changed = true
	}

	if horn := keys.Has(buttons.Horn); horn != p.horn {
		p.horn = horn
		p.send("horn", func(c *loco.Commander) error { return c.SetHorn(horn) })
		changed = true
	}
	if bell := keys.Has(buttons.Bell); bell != p.bell {
		p.bell = bell
		p.send("bell", func(c *loco.Commander) error { return c.SetBell(bell) })
		changed = true
	}

	if changed {
		p.Draw(p.deps.Stack.Display())
	}
	if repeat {
		p.deps.Stack.Clock().Sleep(repeatDelay)
	}
}

func (p *DriverCab) setLights(status loco.LightStatus) {
	p.lights = status
	p.send("front lights", func(c *loco.Commander) error { return c.SetFrontLights(status) })
}

// Close releases the horn and bell so they do not stay on after leaving.
func (p *DriverCab) Close() error {
	if p.horn {
		p.horn = false
		p.send("horn", func(c *loco.Commander) error { return c.SetHorn(false) })
	}
	if p.bell {
		p.bell = false
		p.send("bell", func(c *loco.Commander) error { return c.SetBell(false) })
	}
	return nil
}

// axis returns +1 while up is held, -1 while down is held, 0 for neither or both.
func axis(keys, up, down buttons.Keys) int {
	switch {
	case keys.Has(up) && !keys.Has(down):
		return 1
	case keys.Has(down) && !keys.Has(up):
		return -1
	}
	return 0
}

func clampPercent(v int) int {
	return max(0, min(100, v))
}

func (p *DriverCab) Draw(d *render.Display) {
	d.Do(func(s render.Surface) {
		w, h := s.Size()
		s.FillScreen(render.Black)
		s.DrawText("Train Controls", w/2, 4, render.TextStyle{Color: render.White, Size: render.FontLarge, Align: render.TextAlignCenter})

		cy := h/2 - 10
		left, right := layout.SplitVertical(image.Rect(0, 0, w, h), w/2)
		drawGauge(s, left.Min.X+left.Dx()/2, cy, "Speed", p.speed)
		drawGauge(s, right.Min.X+right.Dx()/2, cy, "Brake", p.brake)

		status := fmt.Sprintf("Lights: %s", p.lights)
		if p.horn {
			status += "  HORN"
		}
		if p.bell {
			status += "  BELL"
		}
		s.DrawText(status, w/2, cy+gaugeRadius+28, render.TextStyle{Color: render.White, Size: render.FontSmall, Align: render.TextAlignCenter})
		s.DrawText("UP/DN speed  Z/X brake  OK exit", w/2, h-20, render.TextStyle{Color: render.Cyan, Size: render.FontSmall, Align: render.TextAlignCenter})
	})
}

// gaugePoint maps a 0-100 value to a point at radius r on a dial that
// sweeps from lower left through the top to lower right.
func gaugePoint(cx, cy, r, value int) (int, int) {
	angle := (float64(value)*gaugeSweep/100 - gaugeSweep/2) * math.Pi / 180
	x := float64(cx) + float64(r)*math.Sin(angle)
	y := float64(cy) - float64(r)*math.Cos(angle)
	return int(math.Round(x)), int(math.Round(y))
}

func drawGauge(s render.Surface, cx, cy int, label string, value int) {
	s.DrawCircle(cx, cy, gaugeRadius, render.White)
	for _, tick := range gaugeTicks {
		x0, y0 := gaugePoint(cx, cy, gaugeRadius-6, tick)
		x1, y1 := gaugePoint(cx, cy, gaugeRadius, tick)
		s.DrawLine(x0, y0, x1, y1, render.White)
	}
	nx, ny := gaugePoint(cx, cy, needleLength, value)
	s.DrawLine(cx, cy, nx, ny, render.Red)
	s.FillCircle(cx, cy, 3, render.Red)

	s.DrawText(label, cx, cy+gaugeRadius+4, render.TextStyle{Color: render.White, Size: render.FontSmall, Align: render.TextAlignCenter})
	s.DrawText(fmt.Sprintf("%d%%", value), cx, cy+18, render.TextStyle{Color: render.Yellow, Align: render.TextAlignCenter})
}
