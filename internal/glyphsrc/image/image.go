// Package image decodes glyphs drawn as raster images. Dark, opaque pixels
// are ink; everything else is paper.
package image

import (
	"fmt"
	"image"
	"image/color"
	"io"

	// registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/pbnjay/bdfgen/internal/bitfont"
)

// Extensions lists the file extensions handled by Decode.
var Extensions = []string{".png", ".gif", ".jpg", ".jpeg", ".bmp"}

func isInk(c color.Color) bool {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	if n.A < 0x8000 {
		return false
	}
	// same weights as color.GrayModel
	y := (19595*uint32(n.R) + 38470*uint32(n.G) + 7471*uint32(n.B) + 1<<15) >> 16
	return y < 0x8000
}

// Decode reads an image raster. The image bounds are the glyph cell.
func Decode(r io.Reader) (*bitfont.Glyph, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bitfont.ErrGlyphData, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image", bitfont.ErrGlyphData)
	}
	if bounds.Dx() > bitfont.MaxWidth {
		return nil, fmt.Errorf("%w: %d columns exceeds the %d pixel limit", bitfont.ErrGlyphData, bounds.Dx(), bitfont.MaxWidth)
	}

	g := &bitfont.Glyph{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Mask:   make([]uint32, bounds.Dy()),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		var line uint32
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if isInk(img.At(x, y)) {
				line |= 1 << uint(x-bounds.Min.X)
			}
		}
		g.Mask[y-bounds.Min.Y] = line
	}
	return g, nil
}
