// Package bdfgen compiles a fixed-cell bitmap font from a directory of
// per-glyph raster files and an INI description into a BDF 2.1 file.
//
// Each file in the glyph directory holds one glyph, either as text (one line
// per pixel row, X for ink) or as an image. The file name without extension
// becomes the glyph name. The first glyph by name sets the cell size for the
// whole font.
//
// See the included bdfgen tool for the command line interface.
package bdfgen

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pbnjay/bdfgen/internal/bdf"
	"github.com/pbnjay/bdfgen/internal/bitfont"
	"github.com/pbnjay/bdfgen/internal/config"
	"github.com/pbnjay/bdfgen/internal/glyphsrc"
	"github.com/pbnjay/bdfgen/internal/xlfd"
)

// Error kinds returned by the compiler. Use errors.Is to classify.
var (
	ErrConfiguration = config.ErrConfiguration
	ErrGlyphData     = bitfont.ErrGlyphData
	ErrOutput        = errors.New("output error")
)

// scalableWidth converts a device width in pixels to BDF SWIDTH units
// (1/1000 of the point size), rounded to nearest:
//
//	swidth = dwidth * 1000 / (points * resX / 72)
//
// pointSize is in decipoints, hence the extra factor of 10.
func scalableWidth(dwidth, pointSize, resX int) int {
	den := pointSize * resX
	if den <= 0 {
		return 0
	}
	num := dwidth * 720000
	return (num + den/2) / den
}

func header(desc config.FontDescription, set *bitfont.GlyphSet) *bdf.Font {
	return &bdf.Font{
		FontName:    xlfd.Name(desc, set.Width),
		PointSize:   desc.Points(),
		ResolutionX: desc.ResolutionX(),
		ResolutionY: desc.ResolutionY(),
		BoundingBox: [4]int{set.Width, set.Height, 0, desc.BaselineOffset()},
		NumGlyphs:   set.Len(),
	}
}

// char builds the record for one glyph. The font is fixed-cell, so every
// glyph carries the font bounding box and advances by the cell width.
func char(desc config.FontDescription, set *bitfont.GlyphSet, g *bitfont.Glyph) *bdf.Char {
	c := &bdf.Char{
		Name:        g.Name,
		Encoding:    g.Encoding,
		SWidth:      scalableWidth(set.Width, desc.PointSize(), desc.ResolutionX()),
		Width:       set.Width,
		BoundingBox: [4]int{set.Width, set.Height, 0, desc.BaselineOffset()},
		Bitmap:      make([]uint32, len(g.Mask)),
	}
	for y, m := range g.Mask {
		c.Bitmap[y] = bdf.EncodeRow(m, set.Width)
	}
	return c
}

// Compile writes the font described by desc and set to w: the header, one
// record per glyph in set order, and the trailer.
func Compile(w io.Writer, desc config.FontDescription, set *bitfont.GlyphSet) error {
	if set == nil || set.Len() == 0 {
		return fmt.Errorf("%w: no glyphs", ErrGlyphData)
	}

	bw := bdf.NewWriter(w)
	hdr := header(desc, set)
	if err := bw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	logrus.WithFields(logrus.Fields{
		"font":  hdr.FontName,
		"chars": hdr.NumGlyphs,
	}).Debug("wrote header")

	for _, g := range set.Glyphs {
		if g.Width != set.Width || g.Height != set.Height || len(g.Mask) != set.Height {
			return fmt.Errorf("%w: glyph %s is %dx%d, expected %dx%d",
				ErrGlyphData, g.Name, g.Width, g.Height, set.Width, set.Height)
		}
		if err := bw.WriteChar(char(desc, set, g)); err != nil {
			return fmt.Errorf("%w: %v", ErrOutput, err)
		}
	}

	if err := bw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	return nil
}

// CompileFile resolves the configuration at configPath, reads the glyphs in
// glyphDir and writes the font to outPath. Configuration and glyph errors are
// reported before outPath is created or truncated. On any later error the
// file is closed and removed.
func CompileFile(configPath, glyphDir, outPath string) (err error) {
	desc, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	set, err := glyphsrc.ReadDir(glyphDir)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrOutput, cerr)
		}
		if err != nil {
			// a partial file must not pass for a compiled font
			os.Remove(outPath)
		}
	}()

	if err = Compile(f, desc, set); err != nil {
		return fmt.Errorf("%s: %w", outPath, err)
	}

	logrus.WithFields(logrus.Fields{
		"output": outPath,
		"glyphs": set.Len(),
		"cell":   fmt.Sprintf("%dx%d", set.Width, set.Height),
	}).Info("compiled font")
	return nil
}
