//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyEnter = 28
	keyZ     = 44
	keyX     = 45
	keyH     = 35
	keyB     = 48
	keySpace = 57
	keyF4    = 62
	keyUp    = 103
	keyLeft  = 105
	keyRight = 106
	keyDown  = 108
)

// DefaultKeyMap maps evdev key codes to logical keys.
var DefaultKeyMap = map[uint16]Keys{
	keyEnter: OK,
	keySpace: OK,
	keyUp:    Up,
	keyDown:  Down,
	keyLeft:  Left,
	keyRight: Right,
	keyZ:     TightenBrake,
	keyX:     ReleaseBrake,
	keyH:     Horn,
	keyB:     Bell,
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// EvdevSource tracks held keys of every /dev/input/event* device.
// One reader goroutine per device updates the mask; Poll only loads it.
type EvdevSource struct {
	Glob   string
	KeyMap map[uint16]Keys
	Logger Logger

	// OnExit is invoked once when F4 is pressed.
	OnExit func()

	held     [16]atomic.Int32
	exitOnce sync.Once
	wg       sync.WaitGroup
}

func NewEvdevSource(glob string, logger Logger) *EvdevSource {
	if glob == "" {
		glob = "/dev/input/event*"
	}
	return &EvdevSource{Glob: glob, KeyMap: DefaultKeyMap, Logger: logger}
}

// Poll returns the union of all keys currently held on any device.
func (s *EvdevSource) Poll() Keys {
	var keys Keys
	for bit := range s.held {
		if s.held[bit].Load() > 0 {
			keys |= 1 << bit
		}
	}
	return keys
}

// Start opens the input devices and begins reading until ctx is done.
func (s *EvdevSource) Start(ctx context.Context) error {
	paths, err := filepath.Glob(s.Glob)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no evdev devices found at " + s.Glob)
	}
	opened := 0
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			s.errorf("open %s: %v", path, err)
			continue
		}
		opened++
		s.wg.Add(1)
		go s.readDevice(ctx, fd, path)
	}
	if opened == 0 {
		return errors.New("no evdev device could be opened")
	}
	s.infof("reading %d input devices", opened)
	return nil
}

// Wait blocks until all reader goroutines have returned.
func (s *EvdevSource) Wait() { s.wg.Wait() }

func (s *EvdevSource) readDevice(ctx context.Context, fd int, path string) {
	defer s.wg.Done()
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	// Key codes held on this device, so a vanished device releases them.
	local := map[uint16]bool{}
	defer func() {
		for code := range local {
			s.apply(local, code, 0)
		}
	}()

	buf := make([]byte, eventSize*64)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			s.errorf("poll %s: %v", path, err)
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			s.errorf("read %s: %v", path, err)
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if typ != evKey {
				continue
			}
			if code == keyF4 && value == 1 {
				s.requestExit()
				continue
			}
			s.apply(local, code, value)
		}
	}
}

// apply updates the held mask; value 1 is press, 0 release, 2 autorepeat.
// Each logical bit counts the held codes mapped to it, so two codes for the
// same key (Enter and Space) keep it held until both are released.
func (s *EvdevSource) apply(local map[uint16]bool, code uint16, value int32) {
	key, ok := s.KeyMap[code]
	if !ok {
		return
	}
	var delta int32
	switch {
	case value == 1 && !local[code]:
		local[code] = true
		delta = 1
	case value == 0 && local[code]:
		delete(local, code)
		delta = -1
	default:
		return
	}
	for bit := range s.held {
		if key&(1<<bit) != 0 {
			s.held[bit].Add(delta)
		}
	}
}

func (s *EvdevSource) requestExit() {
	if s.OnExit == nil {
		return
	}
	s.exitOnce.Do(func() {
		s.infof("F4 pressed: exiting")
		s.OnExit()
	})
}

func (s *EvdevSource) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("input", format, args...)
	}
}

func (s *EvdevSource) errorf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Errorf("input", format, args...)
	}
}
