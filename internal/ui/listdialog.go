package ui

import (
	"image"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
)

const (
	listTop        = 30
	listItemHeight = 20
	buttonWidth    = 80
	buttonHeight   = 24
	buttonSpacing  = 20
)

// ListDialog lets the user pick one item and then OK or Cancel.
//
// OK is two-stage: while browsing the list the first press moves focus to
// the buttons, and only a press with a button focused completes the dialog.
type ListDialog struct {
	Title string

	stack          *Stack
	items          []ListItem
	selected       int
	scroll         int
	focusOnButtons bool
	selectedButton int // 0 OK, 1 Cancel
	onResult       func(Result[ListItem])
	done           bool
}

func NewListDialog(stack *Stack, title string, items []ListItem, initial int, onResult func(Result[ListItem])) *ListDialog {
	l := &ListDialog{
		Title:    title,
		stack:    stack,
		items:    append([]ListItem(nil), items...),
		onResult: onResult,
	}
	if len(l.items) > 0 {
		l.selected = clamp(initial, 0, len(l.items)-1)
	}
	return l
}

func (l *ListDialog) Selected() int        { return l.selected }
func (l *ListDialog) FocusOnButtons() bool { return l.focusOnButtons }
func (l *ListDialog) SelectedButton() int  { return l.selectedButton }

func (l *ListDialog) HandleInput(keys buttons.Keys) {
	if l.done {
		return
	}
	switch {
	case keys.Has(buttons.Up):
		if !l.focusOnButtons {
			l.moveSelection(-1)
		}
	case keys.Has(buttons.Down):
		if !l.focusOnButtons {
			l.moveSelection(1)
		}
	case keys.Has(buttons.Left | buttons.Right):
		if l.focusOnButtons {
			l.selectedButton = (l.selectedButton + 1) % 2
		} else {
			l.focusOnButtons = true
		}
		l.Draw(l.stack.Display())
	case keys.Has(buttons.OK):
		if l.focusOnButtons {
			l.commit()
			return
		}
		l.focusOnButtons = true
		l.Draw(l.stack.Display())
	default:
		return
	}
	l.stack.Clock().Sleep(InputDebounce)
}

func (l *ListDialog) commit() {
	l.done = true
	res := Result[ListItem]{}
	if len(l.items) > 0 {
		res = Result[ListItem]{Accepted: l.selectedButton == 0, Value: l.items[l.selected]}
	}
	l.stack.Pop()
	if l.onResult != nil {
		l.onResult(res)
	}
}

func (l *ListDialog) moveSelection(delta int) {
	if len(l.items) == 0 {
		return
	}
	l.selected = clamp(l.selected+delta, 0, len(l.items)-1)
	l.Draw(l.stack.Display())
}

func (l *ListDialog) visibleRows(h int) int {
	rows := (h - buttonHeight - 10 - listTop) / listItemHeight
	if rows < 1 {
		return 1
	}
	return rows
}

func (l *ListDialog) Draw(d *render.Display) {
	_, h := d.Size()
	visible := l.visibleRows(h)
	if l.selected < l.scroll {
		l.scroll = l.selected
	}
	if l.selected >= l.scroll+visible {
		l.scroll = l.selected - visible + 1
	}

	d.Do(func(s render.Surface) {
		w, _ := s.Size()
		s.FillScreen(render.Black)
		s.DrawText(l.Title, w/2, 10, render.TextStyle{Color: render.White, Align: render.TextAlignCenter})
	})
	for i := 0; i < visible; i++ {
		idx := l.scroll + i
		if idx >= len(l.items) {
			break
		}
		d.Do(func(s render.Surface) {
			w, _ := s.Size()
			y := listTop + i*listItemHeight
			bg, fg := render.Black, render.White
			if idx == l.selected {
				if l.focusOnButtons {
					bg = render.DarkGrey
				} else {
					bg, fg = render.White, render.Black
				}
			}
			s.FillRect(image.Rect(0, y, w, y+listItemHeight), bg)
			s.DrawText(l.items[idx].Label, 10, y+4, render.TextStyle{Color: fg, Background: bg})
		})
	}
	d.Do(func(s render.Surface) {
		w, h := s.Size()
		y := h - 30
		xOK := w/2 - buttonWidth - buttonSpacing/2
		xCancel := w/2 + buttonSpacing/2
		l.drawButton(s, "OK", image.Rect(xOK, y, xOK+buttonWidth, y+buttonHeight), l.focusOnButtons && l.selectedButton == 0)
		l.drawButton(s, "Cancel", image.Rect(xCancel, y, xCancel+buttonWidth, y+buttonHeight), l.focusOnButtons && l.selectedButton == 1)
	})
}

func (l *ListDialog) drawButton(s render.Surface, label string, r image.Rectangle, active bool) {
	bg, fg := render.Blue, render.White
	if active {
		bg, fg = render.White, render.Black
	}
	s.FillRect(r, bg)
	s.DrawText(label, r.Min.X+r.Dx()/2, r.Min.Y+4, render.TextStyle{Color: fg, Background: bg, Align: render.TextAlignCenter})
}
