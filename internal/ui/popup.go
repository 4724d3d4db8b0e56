package ui

import (
	"image"
	"strings"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
	"github.com/rook-computer/locopad/internal/render/layout"
)

// Popup shows a message box until OK, LEFT or RIGHT is pressed.
type Popup struct {
	Message string

	stack   *Stack
	onClose func()
	done    bool
}

func NewPopup(stack *Stack, message string, onClose func()) *Popup {
	return &Popup{Message: message, stack: stack, onClose: onClose}
}

func (p *Popup) Draw(d *render.Display) {
	d.Do(func(s render.Surface) {
		w, h := s.Size()
		box := layout.Centered(image.Rect(0, 0, w, h), w/16*14, h/3)
		s.FillRect(box, render.DarkGrey)
		s.DrawRect(box, render.White)

		style := render.TextStyle{Color: render.White, Align: render.TextAlignCenter}
		lines := wrapText(s, p.Message, style, box.Dx()-16)
		lineHeight := s.MeasureText("Ag", style).LineHeight
		y := box.Min.Y + (box.Dy()-len(lines)*lineHeight)/2
		if y < box.Min.Y+4 {
			y = box.Min.Y + 4
		}
		for _, line := range lines {
			if y+lineHeight > box.Max.Y {
				break
			}
			s.DrawText(line, w/2, y, style)
			y += lineHeight
		}
	})
}

func (p *Popup) HandleInput(keys buttons.Keys) {
	if p.done || !keys.Has(buttons.OK|buttons.Left|buttons.Right) {
		return
	}
	p.done = true
	p.stack.Clock().Sleep(InputDebounce)
	p.stack.Pop()
	if p.onClose != nil {
		p.onClose()
	}
}

// wrapText breaks text into lines no wider than maxWidth. Explicit newlines
// are kept; a single word wider than maxWidth gets a line of its own.
func wrapText(s render.Surface, text string, style render.TextStyle, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if s.MeasureText(candidate, style).Width > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
