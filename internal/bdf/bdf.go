// Package bdf reads and writes Glyph Bitmap Distribution Format 2.1 fonts.
//
// https://www.adobe.com/content/dam/acom/en/devnet/font/pdfs/5005.BDF_Spec.pdf
package bdf

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/pbnjay/bdfgen/internal/bitfont"
)

// Version is the BDF version written by Writer.
const Version = "2.1"

// Char represents a single glyph in the BDF font definition.
type Char struct {
	Name     string // "SPACE"
	Encoding rune   // 32, or -1 when unencoded
	SWidth   int    // scalable width, 1/1000 of the point size
	Width    int    // device width in pixels, e.g. 5

	BoundingBox [4]int   // Width, Height, X offset, Y offset
	Bitmap      []uint32 // [Height], rows as they appear in the file
}

// Mask converts the bitmap rows to masks with the leftmost pixel in the LSB.
func (x *Char) Mask() []uint32 {
	m := make([]uint32, len(x.Bitmap))
	for i, b := range x.Bitmap {
		m[i] = DecodeRow(b, x.BoundingBox[0])
	}
	return m
}

func (x *Char) String() string {
	s := make([]string, 0, len(x.Bitmap))
	for _, m := range x.Mask() {
		s = append(s, fmt.Sprintf("%s  [%s]", x.Name, bitfont.BitsToString(m, x.BoundingBox[0])))
	}
	return strings.Join(s, "\n")
}

// Font represents a set of glyphs in the BDF font definition.
type Font struct {
	Version  string // "2.1"
	Comments []string
	FontName string

	PointSize   int // font point size e.g. 8
	ResolutionX int // display resolution e.g. 72
	ResolutionY int

	BoundingBox [4]int // Width, Height, X offset, Y offset

	Properties map[string]string

	NumGlyphs int
	Glyphs    []*Char
}

// rowBytes is the number of bytes a bitmap row of w pixels occupies.
func rowBytes(w int) int {
	return (w + 7) / 8
}

// EncodeRow converts a mask row (leftmost pixel in the LSB) of width w into
// its BDF form: leftmost pixel in the most significant bit, padded with zero
// bits to a whole number of bytes.
func EncodeRow(mask uint32, w int) uint32 {
	if w <= 0 {
		return 0
	}
	return bits.Reverse32(mask) >> uint(32-8*rowBytes(w))
}

// DecodeRow is the inverse of EncodeRow.
func DecodeRow(row uint32, w int) uint32 {
	if w <= 0 {
		return 0
	}
	return bits.Reverse32(row << uint(32-8*rowBytes(w)))
}

// FormatRow returns the hex digits for an encoded row of width w.
func FormatRow(row uint32, w int) string {
	return fmt.Sprintf("%0*X", 2*rowBytes(w), row)
}
