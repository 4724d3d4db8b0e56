// Package rendertest provides a Surface that records drawing calls.
package rendertest

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/rook-computer/locopad/internal/render"
)

// Op is one recorded drawing call.
type Op struct {
	Kind  string
	Rect  image.Rectangle
	Text  string
	Color color.Color
	Style render.TextStyle
}

// Recorder implements render.Surface. Text is measured at a fixed 6x10
// cell per rune so layout math is predictable in tests.
type Recorder struct {
	Width, Height int

	mu  sync.Mutex
	ops []Op
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

// NewDisplay wraps a fresh Recorder in a render lock.
func NewDisplay(width, height int) (*render.Display, *Recorder) {
	rec := NewRecorder(width, height)
	return render.NewDisplay(rec), rec
}

func (r *Recorder) add(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

// Texts returns the text of every DrawText call in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops() {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether any DrawText call contained substr.
func (r *Recorder) HasText(substr string) bool {
	for _, text := range r.Texts() {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops() {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns the ops of kind.
func (r *Recorder) Find(kind string) []Op {
	var out []Op
	for _, op := range r.Ops() {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) FillScreen(c color.Color) {
	r.add(Op{Kind: "screen", Rect: image.Rect(0, 0, r.Width, r.Height), Color: c})
}

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.add(Op{Kind: "fill", Rect: rect, Color: c})
}

func (r *Recorder) DrawRect(rect image.Rectangle, c color.Color) {
	r.add(Op{Kind: "rect", Rect: rect, Color: c})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 int, c color.Color) {
	r.add(Op{Kind: "line", Rect: image.Rect(x0, y0, x1, y1), Color: c})
}

func (r *Recorder) DrawCircle(cx, cy, radius int, c color.Color) {
	r.add(Op{Kind: "circle", Rect: image.Rect(cx-radius, cy-radius, cx+radius, cy+radius), Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius int, c color.Color) {
	r.add(Op{Kind: "dot", Rect: image.Rect(cx-radius, cy-radius, cx+radius, cy+radius), Color: c})
}

func (r *Recorder) MeasureText(text string, style render.TextStyle) render.TextMetrics {
	return render.TextMetrics{Width: 6 * len([]rune(text)), Height: 10, Ascent: 8, Descent: 2, LineHeight: 12}
}

func (r *Recorder) DrawText(text string, x, y int, style render.TextStyle) render.TextMetrics {
	m := r.MeasureText(text, style)
	r.add(Op{Kind: "text", Rect: image.Rect(x, y, x+m.Width, y+m.Height), Text: text, Color: style.Color, Style: style})
	return m
}

func (r *Recorder) DrawImage(img image.Image, rect image.Rectangle, mode render.ScaleMode) {
	r.add(Op{Kind: "image", Rect: rect, Text: fmt.Sprintf("%v", img.Bounds().Size())})
}
