package ui

import (
	"image"
	"time"
)

// ShowPopup pushes a message box; onClose runs once after it is dismissed.
func (s *Stack) ShowPopup(message string, onClose func()) *Popup {
	p := NewPopup(s, message, onClose)
	s.Push(p)
	return p
}

// ShowInput pushes a virtual keyboard prefilled with initial.
func (s *Stack) ShowInput(prompt string, mode InputMode, initial string, onComplete func(Result[string])) *Entry {
	e := NewEntry(s, prompt, mode, initial, onComplete)
	s.Push(e)
	return e
}

// ShowList pushes a list dialog with initial preselected.
func (s *Stack) ShowList(title string, items []ListItem, initial int, onResult func(Result[ListItem])) *ListDialog {
	l := NewListDialog(s, title, items, initial, onResult)
	s.Push(l)
	return l
}

// ShowLoading pushes a spinner. The caller owns it and must HideLoading.
func (s *Stack) ShowLoading(message string) *Loading {
	l := NewLoading(message)
	s.Push(l)
	return l
}

// HideLoading stops l and takes it off the stack.
func (s *Stack) HideLoading(l *Loading) {
	if l == nil {
		return
	}
	if !s.Remove(l) {
		l.Stop()
	}
}

// ShowSplash pushes img for duration; zero means the default.
func (s *Stack) ShowSplash(img image.Image, duration time.Duration) *Splash {
	p := NewSplash(s, img, duration)
	s.Push(p)
	return p
}
