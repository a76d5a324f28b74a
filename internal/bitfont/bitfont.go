// Package bitfont holds the in-memory form of a fixed-cell bitmap font: one
// mask per glyph, where each row is a uint32 with the leftmost pixel in the
// least significant bit.
package bitfont

import (
	"errors"
	"strings"
)

// MaxWidth is the widest glyph a mask row can hold.
const MaxWidth = 32

// ErrGlyphData is wrapped by every failure caused by the glyph sources
// themselves (empty directory, malformed raster, inconsistent cell size).
var ErrGlyphData = errors.New("glyph data error")

// Glyph is a single character raster.
type Glyph struct {
	Name     string // file name without extension, e.g. "U+0041"
	Encoding rune   // codepoint, or -1 when the name does not map to one
	Width    int
	Height   int
	Mask     []uint32 // [Height]
}

// Set reports whether the pixel at column x of row y is ink.
func (g *Glyph) Set(x, y int) bool {
	return g.Mask[y]&(1<<uint(x)) != 0
}

// String renders the glyph as rows of X and space, one row per line.
func (g *Glyph) String() string {
	var sb strings.Builder
	for y := range g.Mask {
		sb.WriteString(BitsToString(g.Mask[y], g.Width))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// GlyphSet is the ordered collection of glyphs making up a font. All glyphs
// share Width and Height.
type GlyphSet struct {
	Width, Height int
	Glyphs        []*Glyph
}

// Len returns the number of glyphs.
func (s *GlyphSet) Len() int {
	return len(s.Glyphs)
}

// BitsToString renders the low w bits of b as X and space, LSB first.
func BitsToString(b uint32, w int) string {
	s := make([]byte, w)
	for i := 0; i < w; i++ {
		if (b & 1) == 1 {
			s[i] = 'X'
		} else {
			s[i] = ' '
		}
		b >>= 1
	}
	return string(s)
}
