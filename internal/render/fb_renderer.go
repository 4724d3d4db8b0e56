package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	fb "github.com/gonutz/framebuffer"
)

// FBRenderer draws into an offscreen logical canvas and blits it to the
// Linux framebuffer.
type FBRenderer struct {
	Device   string
	Interval time.Duration
	Logger   Logger

	fbDev   *fb.Device
	canvas  *Canvas
	display *Display
	frame   *image.RGBA
	lastGen uint64
	frames  uint64
}

func NewFBRenderer(device string, logger Logger) *FBRenderer {
	return &FBRenderer{Device: device, Interval: time.Second / 30, Logger: logger}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	if r.Device == "" {
		r.Device = "/dev/fb0"
	}
	dev, err := fb.Open(r.Device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", r.Device, err)
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	r.infof("framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())

	faces, ferr := LoadFaces()
	if ferr != nil {
		r.errorf("font load incomplete, using fallbacks: %v", ferr)
	}
	r.canvas = NewCanvas(CanvasWidth, CanvasHeight, faces)
	r.frame = image.NewRGBA(r.canvas.Image().Bounds())
	r.display = NewDisplay(r.canvas)
	return nil
}

func (r *FBRenderer) Stop() error {
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

func (r *FBRenderer) Display() *Display { return r.display }

// RunLoop flushes changed frames at the configured rate until ctx is done.
func (r *FBRenderer) RunLoop(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second / 30
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Flush()
			if time.Since(lastLog) > time.Minute {
				r.infof("heartbeat, frames=%d", r.frames)
				lastLog = time.Now()
			}
		}
	}
}

// Flush copies the canvas under the render lock and pushes it to the
// device when anything was drawn since the previous flush.
func (r *FBRenderer) Flush() {
	if r.display == nil || r.fbDev == nil {
		return
	}
	gen := r.display.Generation()
	if gen == r.lastGen {
		return
	}
	r.display.View(func(Surface) {
		draw.Draw(r.frame, r.frame.Bounds(), r.canvas.Image(), image.Point{}, draw.Src)
	})
	r.lastGen = gen
	r.frames++
	blitToFB(r.fbDev, r.frame)
}

// blitToFB scales src to the device bounds with nearest-neighbor sampling.
func blitToFB(dst draw.Image, src *image.RGBA) {
	bounds := dst.Bounds()
	fbWidth, fbHeight := bounds.Dx(), bounds.Dy()
	srcWidth, srcHeight := src.Bounds().Dx(), src.Bounds().Dy()
	if fbWidth == 0 || fbHeight == 0 || srcWidth == 0 || srcHeight == 0 {
		return
	}
	for y := 0; y < fbHeight; y++ {
		sy := (y * srcHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * srcWidth) / fbWidth
			pixel := src.RGBAAt(sx, sy)
			dst.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}

func (r *FBRenderer) infof(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Infof("fb", format, args...)
	}
}

func (r *FBRenderer) errorf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Errorf("fb", format, args...)
	}
}
