package ui

import (
	"image"
	"image/color"
	"time"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
	"github.com/rook-computer/locopad/internal/render/layout"
)

type InputMode int

const (
	Numeric InputMode = iota
	NumericIP
	Alphanumeric
)

func (m InputMode) String() string {
	switch m {
	case Numeric:
		return "numeric"
	case NumericIP:
		return "ip"
	default:
		return "alphanumeric"
	}
}

const (
	keyBackspace = "<"
	keyOK        = "OK"
	keyCancel    = "Cancel"
)

// Entry is a virtual keyboard that edits a text buffer.
type Entry struct {
	Prompt string

	stack      *Stack
	mode       InputMode
	keys       []string
	cols, rows int
	buffer     string
	selected   int
	onComplete func(Result[string])
	done       bool

	showCaret  bool
	lastToggle time.Time
}

func NewEntry(stack *Stack, prompt string, mode InputMode, initial string, onComplete func(Result[string])) *Entry {
	e := &Entry{Prompt: prompt, stack: stack, mode: mode, buffer: initial, onComplete: onComplete, showCaret: true}
	e.keys, e.cols = keyboardLayout(mode)
	e.rows = (len(e.keys) + e.cols - 1) / e.cols
	return e
}

func keyboardLayout(mode InputMode) ([]string, int) {
	switch mode {
	case Numeric:
		return []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", keyBackspace, keyOK, keyCancel}, 3
	case NumericIP:
		return []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", ".", keyBackspace, keyOK, keyCancel}, 5
	}
	keys := make([]string, 0, 40)
	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		keys = append(keys, string(c))
	}
	return append(keys, " ", keyBackspace, keyOK, keyCancel), 8
}

func (e *Entry) Text() string        { return e.buffer }
func (e *Entry) Mode() InputMode     { return e.mode }
func (e *Entry) SelectedKey() string { return e.keys[e.selected] }
func (e *Entry) CaretVisible() bool  { return e.showCaret }

func (e *Entry) HandleInput(keys buttons.Keys) {
	if e.done {
		return
	}
	switch {
	case keys.Has(buttons.Up):
		e.moveSelection(0, -1)
	case keys.Has(buttons.Down):
		e.moveSelection(0, 1)
	case keys.Has(buttons.Left):
		e.moveSelection(-1, 0)
	case keys.Has(buttons.Right):
		e.moveSelection(1, 0)
	case keys.Has(buttons.OK):
		e.pressKey()
	default:
		return
	}
	e.stack.Clock().Sleep(InputDebounce)
}

func (e *Entry) Tick(now time.Time) {
	if now.Sub(e.lastToggle) < CaretInterval {
		return
	}
	e.showCaret = !e.showCaret
	e.lastToggle = now
	e.drawInputBox(e.stack.Display())
}

func (e *Entry) moveSelection(dx, dy int) {
	col := clamp(e.selected%e.cols+dx, 0, e.cols-1)
	row := clamp(e.selected/e.cols+dy, 0, e.rows-1)
	if idx := row*e.cols + col; idx < len(e.keys) {
		e.selected = idx
	}
	e.Draw(e.stack.Display())
}

func (e *Entry) pressKey() {
	d := e.stack.Display()
	key := e.keys[e.selected]
	d.Do(func(s render.Surface) {
		e.drawKey(s, e.selected, render.DarkGrey, render.White)
	})
	e.stack.Clock().Sleep(KeyHighlight)

	switch key {
	case keyBackspace:
		if e.buffer != "" {
			e.buffer = e.buffer[:len(e.buffer)-1]
		}
	case keyOK:
		if e.mode == NumericIP && !ValidIPv4(e.buffer) {
			d.Do(func(s render.Surface) {
				s.DrawText("Invalid IP format", 10, 100, render.TextStyle{Color: render.Red, Background: render.Black})
			})
			e.stack.Clock().Sleep(ErrorDisplay)
			e.Draw(d)
			return
		}
		e.finish(Result[string]{Accepted: true, Value: e.buffer})
		return
	case keyCancel:
		e.finish(Result[string]{})
		return
	default:
		if e.mode == NumericIP && !acceptIPKey(e.buffer, key) {
			e.Draw(d)
			return
		}
		e.buffer += key
	}
	e.Draw(d)
}

func (e *Entry) finish(res Result[string]) {
	e.done = true
	e.stack.Pop()
	if e.onComplete != nil {
		e.onComplete(res)
	}
}

func (e *Entry) Draw(d *render.Display) {
	d.Do(func(s render.Surface) {
		w, _ := s.Size()
		s.FillScreen(render.Black)
		s.DrawText(e.Prompt, w/2, 20, render.TextStyle{Color: render.White, Align: render.TextAlignCenter})
	})
	e.drawInputBox(d)
	for i := range e.keys {
		d.Do(func(s render.Surface) {
			if i == e.selected {
				e.drawKey(s, i, render.White, render.Black)
			} else {
				e.drawKey(s, i, render.Blue, render.White)
			}
		})
	}
}

func (e *Entry) drawInputBox(d *render.Display) {
	d.Do(func(s render.Surface) {
		w, _ := s.Size()
		box := image.Rect(10, 60, w-10, 90)
		s.DrawRect(box, render.White)
		s.FillRect(box.Inset(1), render.Black)
		style := render.TextStyle{Color: render.White, Size: render.FontMono}
		metrics := s.DrawText(e.buffer, box.Min.X+5, box.Min.Y+5, style)
		if e.showCaret {
			x := box.Min.X + 6 + metrics.Width
			s.DrawLine(x, box.Min.Y+5, x, box.Min.Y+21, render.White)
		}
	})
}

// keyRect returns the on-screen cell of key i.
func (e *Entry) keyRect(s render.Surface, i int) image.Rectangle {
	w, h := s.Size()
	pad := w / 64
	grid := layout.Inset(image.Rect(0, h/2, w, h), pad/2)
	return layout.Inset(layout.GridCell(grid, e.cols, e.rows, i%e.cols, i/e.cols), pad/2)
}

func (e *Entry) drawKey(s render.Surface, i int, bg, fg color.Color) {
	r := e.keyRect(s, i)
	s.FillRect(r, bg)
	style := render.TextStyle{Color: fg, Size: render.FontSmall, Align: render.TextAlignCenter}
	metrics := s.MeasureText(e.keys[i], style)
	s.DrawText(e.keys[i], r.Min.X+r.Dx()/2, r.Min.Y+(r.Dy()-metrics.Height)/2, style)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
