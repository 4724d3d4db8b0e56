package ui

import (
	"io"
	"sync"

	"github.com/rook-computer/locopad/internal/buttons"
	"github.com/rook-computer/locopad/internal/render"
)

// Stack owns the pages in navigation order; the last one is active. Once a
// root page is pushed the stack never becomes empty again until Close.
//
// Push, Pop and Redraw may be called from inside a page's HandleInput.
// Code running on other goroutines should hand work to the polling loop
// with Post.
type Stack struct {
	Logger Logger

	display *render.Display
	clock   Clock

	mu    sync.Mutex
	pages []Page

	dispatchMu sync.Mutex

	postMu sync.Mutex
	posted []func()
}

func NewStack(display *render.Display, clock Clock) *Stack {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Stack{display: display, clock: clock}
}

func (s *Stack) Display() *render.Display { return s.display }
func (s *Stack) Clock() Clock             { return s.clock }

// Push renders page and makes it the only receiver of input.
func (s *Stack) Push(page Page) {
	if page == nil {
		return
	}
	if covered, ok := s.Current().(Pauser); ok {
		covered.Pause()
	}
	page.Draw(s.display)
	s.mu.Lock()
	s.pages = append(s.pages, page)
	depth := len(s.pages)
	s.mu.Unlock()
	s.infof("push %T depth=%d", page, depth)
}

// Pop removes and closes the active page, then renders the page below.
// It does nothing when only the root page remains.
func (s *Stack) Pop() {
	s.mu.Lock()
	if len(s.pages) <= 1 {
		s.mu.Unlock()
		return
	}
	top := s.pages[len(s.pages)-1]
	s.pages[len(s.pages)-1] = nil
	s.pages = s.pages[:len(s.pages)-1]
	next := s.pages[len(s.pages)-1]
	depth := len(s.pages)
	s.mu.Unlock()

	closePage(top)
	s.infof("pop %T depth=%d", top, depth)
	next.Draw(s.display)
}

// Remove takes page out of the stack wherever it is, except the root. The
// new top is rendered if page was active.
func (s *Stack) Remove(page Page) bool {
	s.mu.Lock()
	idx := -1
	for i := len(s.pages) - 1; i >= 1; i-- {
		if s.pages[i] == page {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	wasTop := idx == len(s.pages)-1
	s.pages = append(s.pages[:idx], s.pages[idx+1:]...)
	next := s.pages[len(s.pages)-1]
	s.mu.Unlock()

	closePage(page)
	s.infof("remove %T top=%t", page, wasTop)
	if wasTop {
		next.Draw(s.display)
	}
	return true
}

// Current returns the active page, or nil before the root is pushed.
func (s *Stack) Current() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pages) == 0 {
		return nil
	}
	return s.pages[len(s.pages)-1]
}

func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// HandleInput runs posted work, then forwards keys to the active page.
func (s *Stack) HandleInput(keys buttons.Keys) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.runPosted()
	if top := s.Current(); top != nil {
		top.HandleInput(keys)
	}
}

// Redraw renders the active page without changing the stack.
func (s *Stack) Redraw() {
	if top := s.Current(); top != nil {
		top.Draw(s.display)
	}
}

// Tick runs posted work and advances time-driven content of the active page.
func (s *Stack) Tick() {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.runPosted()
	if t, ok := s.Current().(Ticker); ok {
		t.Tick(s.clock.Now())
	}
}

// Post queues fn to run on the polling loop before the next dispatch.
func (s *Stack) Post(fn func()) {
	if fn == nil {
		return
	}
	s.postMu.Lock()
	s.posted = append(s.posted, fn)
	s.postMu.Unlock()
}

func (s *Stack) runPosted() {
	s.postMu.Lock()
	work := s.posted
	s.posted = nil
	s.postMu.Unlock()
	for _, fn := range work {
		fn()
	}
}

// Close tears the whole stack down, closing pages from the top.
func (s *Stack) Close() error {
	s.mu.Lock()
	pages := s.pages
	s.pages = nil
	s.mu.Unlock()
	for i := len(pages) - 1; i >= 0; i-- {
		closePage(pages[i])
	}
	s.infof("closed %d pages", len(pages))
	return nil
}

func closePage(p Page) {
	if c, ok := p.(io.Closer); ok {
		_ = c.Close()
	}
}

func (s *Stack) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("ui", format, args...)
	}
}
