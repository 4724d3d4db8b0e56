package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/locopad/internal/assets"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Faces maps each logical font size to a concrete face.
type Faces map[FontSize]font.Face

// Face returns the face for size, falling back to the medium face and then
// to basicfont.
func (f Faces) Face(size FontSize) font.Face {
	if face, ok := f[size]; ok && face != nil {
		return face
	}
	if face, ok := f[FontMedium]; ok && face != nil {
		return face
	}
	return basicfont.Face7x13
}

var (
	facesOnce sync.Once
	faces     Faces
	facesErr  error
)

// LoadFaces parses the bundled fonts once. Faces that fail to load are
// replaced by basicfont and reported in the returned error; the Faces value
// is always usable.
func LoadFaces() (Faces, error) {
	facesOnce.Do(func() {
		faces, facesErr = loadFaces()
	})
	return faces, facesErr
}

func loadFaces() (Faces, error) {
	out := Faces{}
	var errs []error

	regular, err := truetype.Parse(assets.FontRegular)
	if err != nil {
		errs = append(errs, fmt.Errorf("parse regular font: %w", err))
	} else {
		out[FontSmall] = truetype.NewFace(regular, &truetype.Options{Size: 10, DPI: 72, Hinting: font.HintingFull})
		out[FontMedium] = truetype.NewFace(regular, &truetype.Options{Size: 13, DPI: 72, Hinting: font.HintingFull})
	}

	bold, err := truetype.Parse(assets.FontBold)
	if err != nil {
		errs = append(errs, fmt.Errorf("parse bold font: %w", err))
	} else {
		out[FontLarge] = truetype.NewFace(bold, &truetype.Options{Size: 20, DPI: 72, Hinting: font.HintingFull})
	}

	mono, err := opentype.Parse(assets.FontMono)
	if err != nil {
		errs = append(errs, fmt.Errorf("parse mono font: %w", err))
	} else {
		face, ferr := opentype.NewFace(mono, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
		if ferr != nil {
			errs = append(errs, fmt.Errorf("mono face: %w", ferr))
		} else {
			out[FontMono] = face
		}
	}

	for _, size := range []FontSize{FontSmall, FontMedium, FontLarge, FontMono} {
		if out[size] == nil {
			out[size] = basicfont.Face7x13
		}
	}
	return out, errors.Join(errs...)
}
