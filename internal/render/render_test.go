package render

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	faces, err := LoadFaces()
	require.NoError(t, err)
	return NewCanvas(64, 48, faces)
}

func rgba(c *Canvas, x, y int) color.RGBA { return c.Image().RGBAAt(x, y) }

func TestCanvasFillRectClips(t *testing.T) {
	c := newTestCanvas(t)
	c.FillScreen(Black)
	c.FillRect(image.Rect(60, 40, 100, 100), Red)
	assert.Equal(t, Red, rgba(c, 63, 47))
	assert.Equal(t, Black, rgba(c, 59, 47))
}

func TestCanvasDrawRectBorderOnly(t *testing.T) {
	c := newTestCanvas(t)
	c.FillScreen(Black)
	c.DrawRect(image.Rect(10, 10, 20, 20), White)
	assert.Equal(t, White, rgba(c, 10, 10))
	assert.Equal(t, White, rgba(c, 19, 19))
	assert.Equal(t, White, rgba(c, 15, 10))
	assert.Equal(t, Black, rgba(c, 15, 15))
}

func TestCanvasLines(t *testing.T) {
	c := newTestCanvas(t)
	c.FillScreen(Black)
	c.DrawLine(5, 5, 5, 20, Green)
	assert.Equal(t, Green, rgba(c, 5, 12))
	assert.Equal(t, Black, rgba(c, 6, 12))

	c.DrawLine(0, 0, 40, 40, Green)
	assert.NotEqual(t, Black, rgba(c, 20, 20))
}

func TestCanvasCircles(t *testing.T) {
	c := newTestCanvas(t)
	c.FillScreen(Black)
	c.FillCircle(30, 24, 8, White)
	assert.Greater(t, rgba(c, 30, 24).R, uint8(200))
	assert.Equal(t, Black, rgba(c, 30, 40))

	c.FillScreen(Black)
	c.DrawCircle(30, 24, 10, White)
	assert.Less(t, rgba(c, 30, 24).R, uint8(50), "outline leaves the center empty")
	assert.Greater(t, rgba(c, 40, 24).R, uint8(100))
}

func TestCanvasText(t *testing.T) {
	c := newTestCanvas(t)
	c.FillScreen(Black)
	style := TextStyle{Color: White}
	m := c.MeasureText("Hello", style)
	assert.Greater(t, m.Width, 0)
	assert.Greater(t, m.Height, 0)

	short := c.MeasureText("Hi", style)
	assert.Less(t, short.Width, m.Width)

	c.DrawText("Hello", 2, 2, TextStyle{Color: White, Background: Blue})
	assert.Equal(t, Blue, rgba(c, 2, 2), "background fills the text box")

	c.FillScreen(Black)
	got := c.DrawText("Hello", 32, 10, TextStyle{Color: White, Align: TextAlignCenter})
	assert.Equal(t, m.Width, got.Width)
}

func TestCanvasDrawImageFit(t *testing.T) {
	c := newTestCanvas(t)
	c.FillScreen(Black)
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, Red)
	src.Set(1, 0, Red)
	c.DrawImage(src, image.Rect(0, 0, 40, 40), ScaleModeFit)
	assert.Equal(t, Red, rgba(c, 1, 15))
	assert.Equal(t, Black, rgba(c, 1, 2))
}

func TestFitRect(t *testing.T) {
	assert.Equal(t, image.Rect(0, 10, 40, 30), FitRect(image.Pt(2, 1), image.Rect(0, 0, 40, 40)))
	assert.Equal(t, image.Rect(10, 0, 30, 40), FitRect(image.Pt(1, 2), image.Rect(0, 0, 40, 40)))
	assert.Equal(t, image.Rectangle{}, FitRect(image.Pt(0, 2), image.Rect(0, 0, 40, 40)))
}

func TestDisplaySerializesAndCountsGenerations(t *testing.T) {
	c := newTestCanvas(t)
	d := NewDisplay(c)
	assert.Equal(t, uint64(0), d.Generation())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Do(func(s Surface) { s.FillRect(image.Rect(0, 0, 4, 4), Red) })
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(20), d.Generation())

	viewed := false
	d.View(func(Surface) { viewed = true })
	assert.True(t, viewed)
	assert.Equal(t, uint64(20), d.Generation())

	w, h := d.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
}

func TestDisplayNilSafe(t *testing.T) {
	var d *Display
	d.Do(func(Surface) { t.Fatal("must not run") })
	d.View(func(Surface) { t.Fatal("must not run") })
	w, h := d.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)

	empty := NewDisplay(nil)
	empty.Do(func(Surface) { t.Fatal("must not run") })
}

func TestBlitToFBScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 1, Red)
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	blitToFB(dst, src)
	assert.Equal(t, Red, dst.RGBAAt(3, 3))
	assert.Equal(t, Red, dst.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{A: 0xFF}, dst.RGBAAt(0, 0))
}

func TestMemoryRendererRunLoopStopsOnCancel(t *testing.T) {
	r := NewMemoryRenderer(32, 24)
	require.NotNil(t, r.Display())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = r.RunLoop(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunLoop did not return")
	}
}

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("", 0)
	assert.NoError(t, err)
	assert.Nil(t, img)

	img, err = GenerateQRCodeImage("http://192.168.4.1", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultQRCodeSizePx, img.Bounds().Dx())
}
