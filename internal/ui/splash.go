package ui

import (
	"image"
	"time"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
)

// Splash shows an image and pops itself on the first poll after Duration
// has passed since it was pushed.
type Splash struct {
	Image    image.Image
	Title    string
	Duration time.Duration

	stack   *Stack
	started time.Time
	shown   bool
	popped  bool
}

func NewSplash(stack *Stack, img image.Image, duration time.Duration) *Splash {
	if duration <= 0 {
		duration = SplashDuration
	}
	return &Splash{Image: img, Duration: duration, stack: stack}
}

func (p *Splash) Draw(d *render.Display) {
	if !p.shown {
		p.shown = true
		p.started = p.stack.Clock().Now()
	}
	d.Do(func(s render.Surface) {
		w, h := s.Size()
		s.FillScreen(render.Black)
		screen := image.Rect(0, 0, w, h)
		if p.Image != nil {
			size := p.Image.Bounds().Size()
			if size.X <= w && size.Y <= h {
				x := (w - size.X) / 2
				y := (h - size.Y) / 2
				s.DrawImage(p.Image, image.Rect(x, y, x+size.X, y+size.Y), render.ScaleModeNone)
			} else {
				s.DrawImage(p.Image, screen, render.ScaleModeFit)
			}
		}
		if p.Title != "" {
			m := s.MeasureText(p.Title, render.TextStyle{Size: render.FontLarge})
			s.DrawText(p.Title, w/2, (h-m.Height)/2, render.TextStyle{Color: render.White, Size: render.FontLarge, Align: render.TextAlignCenter})
		}
	})
}

func (p *Splash) HandleInput(buttons.Keys) {
	if !p.shown || p.popped {
		return
	}
	if p.stack.Clock().Now().Sub(p.started) >= p.Duration {
		p.popped = true
		p.stack.Pop()
	}
}
