// Package text decodes glyphs drawn as plain text, one line per pixel row.
//
//	 XX
//	X  X
//	XXXX
//	X  X
//
// X, #, @, * and 1 mark ink; space, '.', '-', '_' and 0 mark paper.
package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pbnjay/bdfgen/internal/bitfont"
)

func isInk(c byte) (ink bool, ok bool) {
	switch c {
	case 'X', '#', '@', '*', '1':
		return true, true
	case ' ', '.', '-', '_', '0':
		return false, true
	}
	return false, false
}

// Transforms a 0-32-character-long row of pixel characters into a uint32,
// leftmost pixel in the LSB.
func textRepresentationToBits(t string) (uint32, error) {
	var o uint32
	for i := 0; i < len(t); i++ {
		o >>= 1
		ink, ok := isInk(t[i])
		if !ok {
			return 0, fmt.Errorf("%w: unexpected character %q in column %d", bitfont.ErrGlyphData, t[i], i)
		}
		if ink {
			o |= 0x80000000
		}
	}
	if len(t) > 0 {
		o >>= 32 - len(t)
	}
	return o, nil
}

// Decode reads a text raster. Width is the column count of the first row and
// every other row must match it; trailing blank lines are ignored.
func Decode(r io.Reader) (*bitfont.Glyph, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty raster", bitfont.ErrGlyphData)
	}

	width := len(lines[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: first row is empty", bitfont.ErrGlyphData)
	}
	if width > bitfont.MaxWidth {
		return nil, fmt.Errorf("%w: %d columns exceeds the %d pixel limit", bitfont.ErrGlyphData, width, bitfont.MaxWidth)
	}

	g := &bitfont.Glyph{
		Width:  width,
		Height: len(lines),
		Mask:   make([]uint32, 0, len(lines)),
	}
	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", bitfont.ErrGlyphData, y, len(line), width)
		}
		bits, err := textRepresentationToBits(line)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		g.Mask = append(g.Mask, bits)
	}
	return g, nil
}
