package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Font bytes bundled with the binary.
var (
	FontRegular = goregular.TTF
	FontBold    = gobold.TTF
	FontMono    = gomono.TTF
)

// LoadSplash decodes a PNG, JPEG or BMP splash image from disk.
func LoadSplash(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open splash %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode splash %s: %w", path, err)
	}
	return img, nil
}
