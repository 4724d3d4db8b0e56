package render

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Renderer owns the display surface and pushes finished frames to the
// physical output.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	Display() *Display
	RunLoop(ctx context.Context) error
}

// Surface is the drawing target pages render into. Coordinates are absolute
// logical pixels. Text Y is the top of the line box; Align controls how X is
// interpreted.
type Surface interface {
	Size() (width int, height int)

	FillScreen(c color.Color)
	FillRect(rect image.Rectangle, c color.Color)
	DrawRect(rect image.Rectangle, c color.Color)
	DrawLine(x0, y0, x1, y1 int, c color.Color)
	DrawCircle(cx, cy, radius int, c color.Color)
	FillCircle(cx, cy, radius int, c color.Color)

	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	DrawImage(img image.Image, rect image.Rectangle, mode ScaleMode)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

type FontSize int

const (
	FontMedium FontSize = iota
	FontSmall
	FontLarge
	FontMono
)

type TextStyle struct {
	Color color.Color
	// Background, when set, is painted behind the text box.
	Background color.Color
	Size       FontSize
	Align      TextAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeStretch
	ScaleModeNone
)

// Display is the render lock around a shared Surface. Every drawing
// primitive goes through Do so the polling loop, background animations and
// the flush loop never interleave partial frames.
type Display struct {
	mu         sync.Mutex
	surface    Surface
	generation atomic.Uint64
}

func NewDisplay(surface Surface) *Display {
	return &Display{surface: surface}
}

// Do runs fn with exclusive access to the surface. Keep fn short: one
// primitive or one small group of primitives.
func (d *Display) Do(fn func(s Surface)) {
	if d == nil || fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.surface == nil {
		return
	}
	fn(d.surface)
	d.generation.Add(1)
}

// View runs fn under the lock without marking the frame as changed. Flush
// loops copy the surface this way.
func (d *Display) View(fn func(s Surface)) {
	if d == nil || fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.surface != nil {
		fn(d.surface)
	}
}

// Size returns the logical surface size, or zero when there is no surface.
func (d *Display) Size() (int, int) {
	if d == nil {
		return 0, 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.surface == nil {
		return 0, 0
	}
	return d.surface.Size()
}

// Generation increments after every Do; flush loops use it to skip
// unchanged frames.
func (d *Display) Generation() uint64 {
	if d == nil {
		return 0
	}
	return d.generation.Load()
}

// MemoryRenderer keeps frames in memory only. Used by tests and as the
// base of renderers that flush elsewhere.
type MemoryRenderer struct {
	Canvas  *Canvas
	display *Display
}

func NewMemoryRenderer(width, height int) *MemoryRenderer {
	faces, _ := LoadFaces()
	canvas := NewCanvas(width, height, faces)
	return &MemoryRenderer{Canvas: canvas, display: NewDisplay(canvas)}
}

func (r *MemoryRenderer) Start(ctx context.Context) error { return nil }
func (r *MemoryRenderer) Stop() error                     { return nil }
func (r *MemoryRenderer) Display() *Display               { return r.display }

func (r *MemoryRenderer) RunLoop(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
