package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsetAndNormalize(t *testing.T) {
	assert.Equal(t, image.Rect(2, 2, 8, 8), Inset(image.Rect(0, 0, 10, 10), 2))
	assert.Equal(t, image.Rect(0, 0, 10, 10), Inset(image.Rect(0, 0, 10, 10), 0))
	assert.Equal(t, image.Rect(1, 2, 5, 6), Normalize(image.Rectangle{Min: image.Pt(5, 6), Max: image.Pt(1, 2)}))
}

func TestCentered(t *testing.T) {
	screen := image.Rect(0, 0, 320, 240)
	assert.Equal(t, image.Rect(20, 80, 300, 160), Centered(screen, 280, 80))
}

func TestSplits(t *testing.T) {
	left, right := SplitVertical(image.Rect(0, 0, 100, 50), 30)
	assert.Equal(t, image.Rect(0, 0, 30, 50), left)
	assert.Equal(t, image.Rect(30, 0, 100, 50), right)

	top, bottom := SplitHorizontal(image.Rect(0, 0, 100, 50), 80)
	assert.Equal(t, image.Rect(0, 0, 100, 50), top)
	assert.Equal(t, image.Rect(0, 50, 100, 50), bottom)
}

func TestGridCell(t *testing.T) {
	rect := image.Rect(0, 0, 100, 40)
	assert.Equal(t, image.Rect(0, 0, 33, 20), GridCell(rect, 3, 2, 0, 0))
	assert.Equal(t, image.Rect(66, 20, 100, 40), GridCell(rect, 3, 2, 2, 1))
	assert.Equal(t, image.Rectangle{}, GridCell(rect, 0, 2, 0, 0))
}

func TestFitSquare(t *testing.T) {
	assert.Equal(t, image.Rect(10, 10, 40, 40), FitSquare(image.Rect(10, 10, 60, 40)))
}
