package ui

import "time"

// Clock supplies time to pages. Sleep blocks the polling loop for debounce
// and transient messages.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
