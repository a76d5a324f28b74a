package bdfgen

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gobdf "github.com/zachomedia/go-bdf"
	"golang.org/x/image/math/fixed"

	"github.com/pbnjay/bdfgen/internal/bdf"
	"github.com/pbnjay/bdfgen/internal/bitfont"
	"github.com/pbnjay/bdfgen/internal/config"
)

const testConfig = `[Description]
PointSize = 120

[Metrics]
BaselineOffset = -1
`

// 5x4 glyphs
var testGlyphs = map[string]string{
	"U+0041.txt": " XXX \nX   X\nXXXXX\nX   X\n",
	"U+0042.txt": "XXXX \nXXXX \nX   X\nXXXX \n",
	"space.txt":  "     \n     \n     \n     \n",
}

const expectedFont = `STARTFONT 2.1
FONT -Test-medium-r-normal--12-120-75-75-c-5-iso10646-1
SIZE 12 75 75
FONTBOUNDINGBOX 5 4 0 -1
CHARS 3
STARTCHAR U+0041
ENCODING 65
SWIDTH 400 0
DWIDTH 5 0
BBX 5 4 0 -1
BITMAP
70
88
F8
88
ENDCHAR
STARTCHAR U+0042
ENCODING 66
SWIDTH 400 0
DWIDTH 5 0
BBX 5 4 0 -1
BITMAP
F0
F0
88
F0
ENDCHAR
STARTCHAR space
ENCODING -1
SWIDTH 400 0
DWIDTH 5 0
BBX 5 4 0 -1
BITMAP
00
00
00
00
ENDCHAR
ENDFONT
`

type fixture struct {
	config, glyphs, out string
}

func newFixture(t *testing.T, cfg string, glyphs map[string]string) fixture {
	t.Helper()
	root := t.TempDir()
	fx := fixture{
		config: filepath.Join(root, "font.ini"),
		glyphs: filepath.Join(root, "glyphs"),
		out:    filepath.Join(root, "out.bdf"),
	}
	if err := os.WriteFile(fx.config, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(fx.glyphs, 0755); err != nil {
		t.Fatal(err)
	}
	for name, body := range glyphs {
		if err := os.WriteFile(filepath.Join(fx.glyphs, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return fx
}

func (fx fixture) compile(t *testing.T) []byte {
	t.Helper()
	if err := CompileFile(fx.config, fx.glyphs, fx.out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fx.out)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestCompileFile(t *testing.T) {
	fx := newFixture(t, testConfig, testGlyphs)
	if got := string(fx.compile(t)); got != expectedFont {
		t.Errorf("unexpected output\nExpected:\n%s\nGot:\n%s", expectedFont, got)
	}
}

func TestCompileDeterministic(t *testing.T) {
	fx := newFixture(t, testConfig, testGlyphs)
	first := fx.compile(t)
	second := fx.compile(t)
	if !bytes.Equal(first, second) {
		t.Error("compiling twice produced different output")
	}
}

func TestCompileTruncatesExisting(t *testing.T) {
	fx := newFixture(t, testConfig, testGlyphs)
	if err := os.WriteFile(fx.out, bytes.Repeat([]byte("stale\n"), 1000), 0644); err != nil {
		t.Fatal(err)
	}
	if got := string(fx.compile(t)); got != expectedFont {
		t.Error("existing output was not replaced")
	}
}

func TestFixedCellAndCount(t *testing.T) {
	fx := newFixture(t, testConfig, testGlyphs)
	f, err := bdf.Open(bytes.NewReader(fx.compile(t)))
	if err != nil {
		t.Fatal(err)
	}

	if f.NumGlyphs != len(f.Glyphs) {
		t.Errorf("CHARS %d but %d glyph records", f.NumGlyphs, len(f.Glyphs))
	}
	for _, c := range f.Glyphs {
		if c.BoundingBox[0] != f.BoundingBox[0] || c.BoundingBox[1] != f.BoundingBox[1] {
			t.Errorf("glyph %s: BBX %v does not match FONTBOUNDINGBOX %v", c.Name, c.BoundingBox, f.BoundingBox)
		}
		if c.Width != f.BoundingBox[0] {
			t.Errorf("glyph %s: DWIDTH %d does not match cell width %d", c.Name, c.Width, f.BoundingBox[0])
		}
	}

	if s := f.Glyphs[0].String(); !strings.HasPrefix(s, "U+0041  [ XXX ]\nU+0041  [X   X]") {
		t.Errorf("unexpected rendering of first glyph:\n%s", s)
	}
}

func TestConformance(t *testing.T) {
	fx := newFixture(t, testConfig, testGlyphs)
	f, err := gobdf.Parse(fx.compile(t))
	if err != nil {
		t.Fatal(err)
	}

	if len(f.Characters) != len(testGlyphs) {
		t.Fatal("unexpected character count", len(f.Characters))
	}

	face := f.NewFace()
	for _, r := range "AB" {
		advance, ok := face.GlyphAdvance(r)
		if !ok {
			t.Fatalf("face has no glyph for %q", r)
		}
		if advance != fixed.I(5) {
			t.Errorf("%q: unexpected advance %v", r, advance)
		}
	}
}

func TestCompileHeightMismatch(t *testing.T) {
	fx := newFixture(t, testConfig, map[string]string{
		"a.txt": "XX\nXX\n",
		"b.txt": "XX\nXX\nXX\n",
	})
	err := CompileFile(fx.config, fx.glyphs, fx.out)
	if !errors.Is(err, ErrGlyphData) {
		t.Fatalf("expected ErrGlyphData, got %v", err)
	}
	if _, err := os.Stat(fx.out); !os.IsNotExist(err) {
		t.Error("output file was created for invalid glyphs")
	}
}

func TestCompileEmptyDirectory(t *testing.T) {
	fx := newFixture(t, testConfig, nil)
	err := CompileFile(fx.config, fx.glyphs, fx.out)
	if !errors.Is(err, ErrGlyphData) {
		t.Fatalf("expected ErrGlyphData, got %v", err)
	}
	if _, err := os.Stat(fx.out); !os.IsNotExist(err) {
		t.Error("output file was created for an empty glyph directory")
	}
}

func TestCompileConfigurationError(t *testing.T) {
	fx := newFixture(t, "[Description]\nPointSize = big\n", testGlyphs)
	if err := os.WriteFile(fx.out, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}
	err := CompileFile(fx.config, fx.glyphs, fx.out)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if data, _ := os.ReadFile(fx.out); string(data) != "keep" {
		t.Error("existing output was truncated on a configuration error")
	}
}

func TestCompileOutputError(t *testing.T) {
	fx := newFixture(t, testConfig, testGlyphs)
	err := CompileFile(fx.config, fx.glyphs, filepath.Join(fx.out, "missing", "a.bdf"))
	if !errors.Is(err, ErrOutput) {
		t.Errorf("expected ErrOutput, got %v", err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCompileWriteError(t *testing.T) {
	set := &bitfont.GlyphSet{
		Width:  1,
		Height: 1,
		Glyphs: []*bitfont.Glyph{{Name: "dot", Encoding: '.', Width: 1, Height: 1, Mask: []uint32{1}}},
	}
	err := Compile(failWriter{}, config.Fallback(), set)
	if !errors.Is(err, ErrOutput) {
		t.Errorf("expected ErrOutput, got %v", err)
	}
}

func TestCompileRejectsInconsistentSet(t *testing.T) {
	set := &bitfont.GlyphSet{
		Width:  2,
		Height: 1,
		Glyphs: []*bitfont.Glyph{{Name: "a", Width: 1, Height: 1, Mask: []uint32{1}}},
	}
	var buf bytes.Buffer
	if err := Compile(&buf, config.Fallback(), set); !errors.Is(err, ErrGlyphData) {
		t.Errorf("expected ErrGlyphData, got %v", err)
	}
	if err := Compile(&buf, config.Fallback(), &bitfont.GlyphSet{}); !errors.Is(err, ErrGlyphData) {
		t.Errorf("expected ErrGlyphData for an empty set, got %v", err)
	}
}

func TestScalableWidth(t *testing.T) {
	cases := []struct {
		dwidth, pointSize, resX, want int
	}{
		{5, 120, 75, 400},
		{8, 120, 75, 640},
		{8, 12, 75, 6400},
		{6, 100, 100, 432},
		{7, 0, 75, 0},
		{7, 120, 0, 0},
	}
	for _, c := range cases {
		if got := scalableWidth(c.dwidth, c.pointSize, c.resX); got != c.want {
			t.Errorf("scalableWidth(%d, %d, %d): expected %d got %d", c.dwidth, c.pointSize, c.resX, c.want, got)
		}
	}
}
