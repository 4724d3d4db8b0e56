package render

import "image/color"

// Palette of the handheld's 16-bit TFT, expressed as RGBA.
var (
	Black    = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	White    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Blue     = color.RGBA{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF}
	DarkGrey = color.RGBA{R: 0x7B, G: 0x7D, B: 0x7B, A: 0xFF}
	Red      = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	Green    = color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}
	Yellow   = color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
	Cyan     = color.RGBA{R: 0x00, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Logical canvas size; scaled to the physical framebuffer on flush.
const (
	CanvasWidth  = 320
	CanvasHeight = 240
)
