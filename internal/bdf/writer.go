package bdf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Writer streams a font out one section at a time: WriteHeader once, WriteChar
// for each glyph, then Close. The first error sticks and is returned by every
// later call.
type Writer struct {
	bw  *bufio.Writer
	err error
}

// NewWriter returns a Writer buffering output to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

func (w *Writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.bw, format, args...)
}

func quoteProperty(v string) string {
	if _, err := strconv.Atoi(v); err == nil {
		return v
	}
	return strconv.Quote(v)
}

// WriteHeader writes everything up to and including the CHARS line. Comments
// and properties are only written when present.
func (w *Writer) WriteHeader(f *Font) error {
	version := f.Version
	if version == "" {
		version = Version
	}
	w.printf("STARTFONT %s\n", version)
	for _, c := range f.Comments {
		w.printf("COMMENT %s\n", c)
	}
	w.printf("FONT %s\n", f.FontName)
	w.printf("SIZE %d %d %d\n", f.PointSize, f.ResolutionX, f.ResolutionY)
	w.printf("FONTBOUNDINGBOX %d %d %d %d\n",
		f.BoundingBox[0], f.BoundingBox[1], f.BoundingBox[2], f.BoundingBox[3])

	if len(f.Properties) > 0 {
		keys := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		w.printf("STARTPROPERTIES %d\n", len(keys))
		for _, k := range keys {
			w.printf("%s %s\n", k, quoteProperty(f.Properties[k]))
		}
		w.printf("ENDPROPERTIES\n")
	}

	w.printf("CHARS %d\n", f.NumGlyphs)
	return w.err
}

// WriteChar writes one STARTCHAR..ENDCHAR record.
func (w *Writer) WriteChar(c *Char) error {
	w.printf("STARTCHAR %s\n", c.Name)
	w.printf("ENCODING %d\n", c.Encoding)
	w.printf("SWIDTH %d 0\n", c.SWidth)
	w.printf("DWIDTH %d 0\n", c.Width)
	w.printf("BBX %d %d %d %d\n",
		c.BoundingBox[0], c.BoundingBox[1], c.BoundingBox[2], c.BoundingBox[3])
	w.printf("BITMAP\n")
	for _, row := range c.Bitmap {
		w.printf("%s\n", FormatRow(row, c.BoundingBox[0]))
	}
	w.printf("ENDCHAR\n")
	return w.err
}

// Close writes the ENDFONT trailer and flushes. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	w.printf("ENDFONT\n")
	if w.err != nil {
		return w.err
	}
	w.err = w.bw.Flush()
	return w.err
}
