// Package glyphsrc reads a directory of per-glyph raster files into a
// fixed-cell glyph set.
package glyphsrc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/pbnjay/bdfgen/internal/bitfont"
	pimg "github.com/pbnjay/bdfgen/internal/glyphsrc/image"
	ptext "github.com/pbnjay/bdfgen/internal/glyphsrc/text"
)

// GlyphName strips the final extension from a glyph file name.
func GlyphName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// Encoding maps a glyph name to a codepoint. "U+0041", "uni0041", "u0041"
// and "A" all give 0x41; names that match none of these give -1.
func Encoding(name string) rune {
	for _, prefix := range []string{"U+", "u+", "uni", "u"} {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		hex := name[len(prefix):]
		if len(hex) < 4 || len(hex) > 6 {
			continue
		}
		if n, err := strconv.ParseUint(hex, 16, 32); err == nil && n <= utf8.MaxRune {
			return rune(n)
		}
	}
	if r, size := utf8.DecodeRuneInString(name); r != utf8.RuneError && size == len(name) {
		return r
	}
	return -1
}

func isImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range pimg.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadFile decodes a single glyph file, picking the decoder by extension.
func ReadFile(path string) (*bitfont.Glyph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bitfont.ErrGlyphData, err)
	}
	defer f.Close()

	var g *bitfont.Glyph
	if isImage(path) {
		g, err = pimg.Decode(f)
	} else {
		g, err = ptext.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	g.Name = GlyphName(filepath.Base(path))
	g.Encoding = Encoding(g.Name)
	return g, nil
}

// listGlyphFiles returns the glyph file names in dir sorted by name.
// Subdirectories and dot-files are skipped.
func listGlyphFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bitfont.ErrGlyphData, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	// os.ReadDir already sorts, but the output order must not depend on it
	sort.Strings(names)
	return names, nil
}

// ReadDir reads every glyph file in dir. The first file (by name) sets the
// cell size and every other glyph must match it.
func ReadDir(dir string) (*bitfont.GlyphSet, error) {
	names, err := listGlyphFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no glyphs in %s", bitfont.ErrGlyphData, dir)
	}

	set := &bitfont.GlyphSet{
		Glyphs: make([]*bitfont.Glyph, 0, len(names)),
	}
	for i, name := range names {
		path := filepath.Join(dir, name)
		g, err := ReadFile(path)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			set.Width, set.Height = g.Width, g.Height
			logrus.WithFields(logrus.Fields{
				"file":   path,
				"width":  set.Width,
				"height": set.Height,
			}).Debug("cell size")
		} else if g.Width != set.Width || g.Height != set.Height {
			return nil, fmt.Errorf("%w: %s is %dx%d, expected %dx%d",
				bitfont.ErrGlyphData, path, g.Width, g.Height, set.Width, set.Height)
		}

		logrus.WithFields(logrus.Fields{
			"file":     path,
			"name":     g.Name,
			"encoding": g.Encoding,
		}).Debug("read glyph")
		set.Glyphs = append(set.Glyphs, g)
	}
	return set, nil
}
