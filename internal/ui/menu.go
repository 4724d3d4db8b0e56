package ui

import (
	"image"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
)

const (
	MenuVisibleItems = 5
	menuItemHeight   = 20
	menuTop          = 20
	scrollbarWidth   = 6
)

// MenuItem either opens Submenu, runs OnSelect, or does nothing.
type MenuItem struct {
	Label    string
	Submenu  *Menu
	OnSelect func()
}

// Menu is a scrolling list of entries. A Menu built with Add is a template:
// entering a submenu pushes a Clone so every visit starts fresh.
type Menu struct {
	Title string
	Items []MenuItem

	stack    *Stack
	selected int
	scroll   int
}

func NewMenu(stack *Stack, title string) *Menu {
	return &Menu{Title: title, stack: stack}
}

// Add appends an entry and returns m for chaining.
func (m *Menu) Add(label string, submenu *Menu, onSelect func()) *Menu {
	m.Items = append(m.Items, MenuItem{Label: label, Submenu: submenu, OnSelect: onSelect})
	return m
}

// Clone deep-copies the entry tree. Selection and scroll start at zero.
func (m *Menu) Clone() *Menu {
	if m == nil {
		return nil
	}
	out := &Menu{Title: m.Title, stack: m.stack, Items: make([]MenuItem, len(m.Items))}
	for i, item := range m.Items {
		out.Items[i] = MenuItem{Label: item.Label, Submenu: item.Submenu.Clone(), OnSelect: item.OnSelect}
	}
	return out
}

func (m *Menu) Selected() int     { return m.selected }
func (m *Menu) ScrollOffset() int { return m.scroll }

func (m *Menu) HandleInput(keys buttons.Keys) {
	switch {
	case keys.Has(buttons.Up):
		m.moveUp()
	case keys.Has(buttons.Down):
		m.moveDown()
	case keys.Has(buttons.Right | buttons.OK):
		m.enter()
	case keys.Has(buttons.Left):
		m.stack.Pop()
	default:
		return
	}
	m.stack.Clock().Sleep(InputDebounce)
}

func (m *Menu) moveUp() {
	if m.selected <= 0 {
		return
	}
	m.selected--
	if m.selected < m.scroll {
		m.scroll = m.selected
	}
	m.Draw(m.stack.Display())
}

func (m *Menu) moveDown() {
	if m.selected >= len(m.Items)-1 {
		return
	}
	m.selected++
	if m.selected >= m.scroll+MenuVisibleItems {
		m.scroll = m.selected - MenuVisibleItems + 1
	}
	m.Draw(m.stack.Display())
}

func (m *Menu) enter() {
	if m.selected >= len(m.Items) {
		return
	}
	item := m.Items[m.selected]
	switch {
	case item.Submenu != nil:
		m.stack.Push(item.Submenu.Clone())
	case item.OnSelect != nil:
		item.OnSelect()
	}
}

func (m *Menu) Draw(d *render.Display) {
	d.Do(func(s render.Surface) {
		s.FillScreen(render.Black)
		if m.Title != "" {
			w, _ := s.Size()
			s.DrawText(m.Title, w/2, 3, render.TextStyle{Color: render.Cyan, Size: render.FontSmall, Align: render.TextAlignCenter})
		}
	})

	for i := 0; i < MenuVisibleItems; i++ {
		idx := m.scroll + i
		if idx >= len(m.Items) {
			break
		}
		label := m.Items[idx].Label
		selected := idx == m.selected
		y := menuTop + i*menuItemHeight
		d.Do(func(s render.Surface) {
			w, _ := s.Size()
			fg, bg := render.White, render.Black
			if selected {
				fg, bg = render.Black, render.White
			}
			s.FillRect(image.Rect(0, y, w-scrollbarWidth, y+menuItemHeight), bg)
			metrics := s.MeasureText(label, render.TextStyle{})
			s.DrawText(label, 10, y+(menuItemHeight-metrics.Height)/2, render.TextStyle{Color: fg, Background: bg})
		})
	}

	if len(m.Items) > MenuVisibleItems {
		total := len(m.Items)
		d.Do(func(s render.Surface) {
			w, _ := s.Size()
			trackHeight := MenuVisibleItems * menuItemHeight
			thumbHeight := MenuVisibleItems * trackHeight / total
			thumbY := min(menuTop+m.selected*trackHeight/total, menuTop+trackHeight-thumbHeight)
			x := w - scrollbarWidth
			s.FillRect(image.Rect(x, menuTop, w, menuTop+trackHeight), render.DarkGrey)
			s.FillRect(image.Rect(x, thumbY, w, thumbY+thumbHeight), render.White)
		})
	}
}
