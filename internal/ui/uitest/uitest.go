// Package uitest holds fakes for driving pages in tests.
package uitest

import (
	"fmt"
	"sync"
	"time"
)

// ManualClock only moves when told to. Sleep advances it instantly and
// records the requested duration.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.slept = append(c.slept, d)
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Slept returns every duration passed to Sleep.
func (c *ManualClock) Slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}

// Logger collects log lines.
type Logger struct {
	mu    sync.Mutex
	Lines []string
}

func (l *Logger) Infof(component, format string, args ...interface{}) {
	l.add("INFO", component, format, args...)
}

func (l *Logger) Errorf(component, format string, args ...interface{}) {
	l.add("ERROR", component, format, args...)
}

func (l *Logger) add(level, component, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Lines = append(l.Lines, level+" "+component+": "+fmt.Sprintf(format, args...))
}

func (l *Logger) All() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.Lines...)
}
