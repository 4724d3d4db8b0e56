package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// Canvas is an in-memory Surface backed by an RGBA image.
type Canvas struct {
	img   *image.RGBA
	faces Faces
}

func NewCanvas(width, height int, faces Faces) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: faces,
	}
}

// Image exposes the backing buffer. Callers must hold the Display lock.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) FillScreen(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	rect = rect.Canon().Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(c.img, rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// DrawRect strokes a one pixel border just inside rect.
func (c *Canvas) DrawRect(rect image.Rectangle, col color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	c.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), col)
	c.FillRect(image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), col)
	c.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), col)
	c.FillRect(image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.Color) {
	if x0 == x1 || y0 == y1 {
		c.FillRect(image.Rect(min(x0, x1), min(y0, y1), max(x0, x1)+1, max(y0, y1)+1), col)
		return
	}
	fx0, fy0 := float32(x0)+0.5, float32(y0)+0.5
	fx1, fy1 := float32(x1)+0.5, float32(y1)+0.5
	dx, dy := fx1-fx0, fy1-fy0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	nx, ny := -dy/length*0.5, dx/length*0.5

	z := c.rasterizer()
	z.MoveTo(fx0+nx, fy0+ny)
	z.LineTo(fx1+nx, fy1+ny)
	z.LineTo(fx1-nx, fy1-ny)
	z.LineTo(fx0-nx, fy0-ny)
	z.ClosePath()
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) DrawCircle(cx, cy, radius int, col color.Color) {
	if radius <= 0 {
		c.FillRect(image.Rect(cx, cy, cx+1, cy+1), col)
		return
	}
	fx, fy, r := float32(cx)+0.5, float32(cy)+0.5, float32(radius)
	z := c.rasterizer()
	circlePath(z, fx, fy, r+0.5, 1)
	// Opposite winding punches out the inside.
	circlePath(z, fx, fy, r-0.5, -1)
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) FillCircle(cx, cy, radius int, col color.Color) {
	if radius <= 0 {
		c.FillRect(image.Rect(cx, cy, cx+1, cy+1), col)
		return
	}
	z := c.rasterizer()
	circlePath(z, float32(cx)+0.5, float32(cy)+0.5, float32(radius)+0.5, 1)
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) rasterizer() *vector.Rasterizer {
	b := c.img.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

// circlePath adds a closed circle to z. dir 1 winds clockwise on screen,
// -1 counter-clockwise.
func circlePath(z *vector.Rasterizer, cx, cy, r, dir float32) {
	if r <= 0 {
		return
	}
	k := r * kappa
	s := dir
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+s*k, cx+k, cy+s*r, cx, cy+s*r)
	z.CubeTo(cx-k, cy+s*r, cx-r, cy+s*k, cx-r, cy)
	z.CubeTo(cx-r, cy-s*k, cx-k, cy-s*r, cx, cy-s*r)
	z.CubeTo(cx+k, cy-s*r, cx+r, cy-s*k, cx+r, cy)
	z.ClosePath()
}

func (c *Canvas) face(size FontSize) font.Face { return c.faces.Face(size) }

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.face(style.Size)
	m := face.Metrics()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     m.Ascent.Ceil() + m.Descent.Ceil(),
		Ascent:     m.Ascent.Ceil(),
		Descent:    m.Descent.Ceil(),
		LineHeight: m.Height.Ceil(),
	}
}

func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	metrics := c.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= metrics.Width / 2
	case TextAlignRight:
		x -= metrics.Width
	}
	if style.Background != nil {
		c.FillRect(image.Rect(x, y, x+metrics.Width, y+metrics.Height), style.Background)
	}
	fg := style.Color
	if fg == nil {
		fg = White
	}
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(fg),
		Face: c.face(style.Size),
		Dot:  fixed.P(x, y+metrics.Ascent),
	}
	drawer.DrawString(text)
	return metrics
}

func (c *Canvas) DrawImage(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil {
		return
	}
	rect = rect.Canon()
	src := img.Bounds()
	if rect.Empty() || src.Empty() {
		return
	}
	switch mode {
	case ScaleModeNone:
		dst := image.Rectangle{Min: rect.Min, Max: rect.Min.Add(src.Size())}.Intersect(rect)
		draw.Draw(c.img, dst, img, src.Min, draw.Over)
	case ScaleModeStretch:
		xdraw.NearestNeighbor.Scale(c.img, rect, img, src, xdraw.Over, nil)
	default:
		xdraw.NearestNeighbor.Scale(c.img, FitRect(src.Size(), rect), img, src, xdraw.Over, nil)
	}
}

// FitRect returns the largest rectangle with the aspect ratio of size that
// fits into bounds, centered.
func FitRect(size image.Point, bounds image.Rectangle) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}
	}
	w, h := bounds.Dx(), bounds.Dy()
	if w*size.Y > h*size.X {
		w = h * size.X / size.Y
	} else {
		h = w * size.Y / size.X
	}
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
