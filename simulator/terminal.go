package main

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/locopad/internal/app"
	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
)

const (
	flushInterval = time.Second / 30
	// Terminals report presses only, so horn and bell stay held this long
	// after the last key repeat.
	holdDuration  = 250 * time.Millisecond
)

// terminal draws the canvas into a tcell screen with two pixels per cell
// and turns key presses into logical keys.
type terminal struct {
	*render.MemoryRenderer
	Logger app.Logger
	OnQuit func()

	screen tcell.Screen
	keys   *terminalKeys

	mu      sync.Mutex
	lastGen uint64
	force   bool
}

func newTerminal(logger app.Logger) *terminal {
	return &terminal{
		MemoryRenderer: render.NewMemoryRenderer(render.CanvasWidth, render.CanvasHeight),
		Logger:         logger,
		keys:           &terminalKeys{hold: map[buttons.Keys]time.Time{}},
	}
}

func (t *terminal) Keys() buttons.Source { return t.keys }

func (t *terminal) Start(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.HideCursor()
	screen.Clear()
	t.screen = screen
	go t.events()
	return nil
}

func (t *terminal) Stop() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *terminal) RunLoop(ctx context.Context) error {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.flush()
		}
	}
}

func (t *terminal) flush() {
	display := t.Display()
	gen := display.Generation()
	t.mu.Lock()
	if gen == t.lastGen && !t.force {
		t.mu.Unlock()
		return
	}
	t.lastGen = gen
	t.force = false
	t.mu.Unlock()

	var frame *image.RGBA
	display.View(func(render.Surface) {
		src := t.Canvas.Image()
		frame = image.NewRGBA(src.Bounds())
		copy(frame.Pix, src.Pix)
	})
	paintCells(t.screen, frame)
	t.screen.Show()
}

// paintCells scales frame to the screen, two vertical pixels per cell.
func paintCells(screen tcell.Screen, frame *image.RGBA) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	b := frame.Bounds()
	pixelRows := rows * 2
	for y := 0; y < rows; y++ {
		topY := b.Min.Y + (2*y)*b.Dy()/pixelRows
		bottomY := b.Min.Y + (2*y+1)*b.Dy()/pixelRows
		for x := 0; x < cols; x++ {
			px := b.Min.X + x*b.Dx()/cols
			top := frame.RGBAAt(px, topY)
			bottom := frame.RGBAAt(px, bottomY)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y, '▀', nil, style)
		}
	}
}

func (t *terminal) events() {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()
			t.mu.Lock()
			t.force = true
			t.mu.Unlock()
		case *tcell.EventKey:
			if isQuit(ev) {
				if t.OnQuit != nil {
					t.OnQuit()
				}
				continue
			}
			if k := keyFor(ev); k != 0 {
				t.keys.press(k, time.Now())
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func keyFor(ev *tcell.EventKey) buttons.Keys {
	switch ev.Key() {
	case tcell.KeyUp:
		return buttons.Up
	case tcell.KeyDown:
		return buttons.Down
	case tcell.KeyLeft:
		return buttons.Left
	case tcell.KeyRight:
		return buttons.Right
	case tcell.KeyEnter:
		return buttons.OK
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'z':
			return buttons.TightenBrake
		case 'x':
			return buttons.ReleaseBrake
		case 'h':
			return buttons.Horn
		case 'b':
			return buttons.Bell
		}
	}
	return 0
}

// terminalKeys latches presses until the next Poll. Horn and bell are held
// for holdDuration instead.
type terminalKeys struct {
	mu      sync.Mutex
	latched buttons.Keys
	hold    map[buttons.Keys]time.Time
	now     func() time.Time
}

func (k *terminalKeys) press(key buttons.Keys, at time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if key.Has(buttons.Horn | buttons.Bell) {
		k.hold[key] = at.Add(holdDuration)
		return
	}
	k.latched |= key
}

func (k *terminalKeys) Poll() buttons.Keys {
	now := time.Now()
	if k.now != nil {
		now = k.now()
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	keys := k.latched
	k.latched = 0
	for key, until := range k.hold {
		if now.Before(until) {
			keys |= key
		} else {
			delete(k.hold, key)
		}
	}
	return keys
}
