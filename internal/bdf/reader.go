package bdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrFormat is wrapped by every parse failure.
var ErrFormat = errors.New("bdf: malformed font")

func scanInts(line string, dst ...*int) error {
	fields := strings.Fields(line)
	if len(fields) < len(dst) {
		return fmt.Errorf("expected %d values, got %q", len(dst), line)
	}
	for i, d := range dst {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return err
		}
		*d = n
	}
	return nil
}

var charparsers = map[string]func(*Char, string) error{
	"ENCODING": func(f *Char, line string) error {
		var nc int
		if err := scanInts(line, &nc); err != nil {
			return err
		}
		f.Encoding = rune(nc)
		return nil
	},
	"SWIDTH": func(f *Char, line string) error {
		var y int
		return scanInts(line, &f.SWidth, &y)
	},
	"DWIDTH": func(f *Char, line string) error {
		var y int
		return scanInts(line, &f.Width, &y)
	},
	"BBX": func(f *Char, line string) error {
		// width, height, x-offset, y-offset
		return scanInts(line, &f.BoundingBox[0], &f.BoundingBox[1], &f.BoundingBox[2], &f.BoundingBox[3])
	},
}

var parsers = map[string]func(*Font, string) error{
	"STARTFONT": func(f *Font, line string) error {
		f.Version = line
		return nil
	},
	"COMMENT": func(f *Font, line string) error {
		f.Comments = append(f.Comments, line)
		return nil
	},
	"FONT": func(f *Font, line string) error {
		f.FontName = line
		return nil
	},
	"SIZE": func(f *Font, line string) error {
		return scanInts(line, &f.PointSize, &f.ResolutionX, &f.ResolutionY)
	},
	"FONTBOUNDINGBOX": func(f *Font, line string) error {
		return scanInts(line, &f.BoundingBox[0], &f.BoundingBox[1], &f.BoundingBox[2], &f.BoundingBox[3])
	},
	"CHARS": func(f *Font, line string) error {
		return scanInts(line, &f.NumGlyphs)
	},
}

// Open parses a BDF font. Glyphs are returned in file order. Bitmap rows
// wider than 32 pixels are not supported.
func Open(r io.Reader) (*Font, error) {
	fnt := &Font{}

	var (
		ch       *Char
		inBitmap bool
		numProps = -1
		ended    bool
		lineNo   int
	)
	fail := func(err error) (*Font, error) {
		return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, lineNo, err)
	}

	s := bufio.NewScanner(r)
	for !ended && s.Scan() {
		lineNo++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}
		parts := strings.SplitN(text, " ", 2)
		if len(parts) == 1 {
			parts = append(parts, "")
		}
		keyword, args := parts[0], strings.TrimSpace(parts[1])

		switch {
		case inBitmap:
			if keyword == "ENDCHAR" {
				if len(ch.Bitmap) != ch.BoundingBox[1] {
					return fail(fmt.Errorf("%s: %d bitmap rows, BBX height is %d", ch.Name, len(ch.Bitmap), ch.BoundingBox[1]))
				}
				fnt.Glyphs = append(fnt.Glyphs, ch)
				ch, inBitmap = nil, false
				continue
			}
			if len(keyword) > 8 {
				return fail(fmt.Errorf("%s: bitmap row %q is wider than 32 pixels", ch.Name, keyword))
			}
			row, err := strconv.ParseUint(keyword, 16, 32)
			if err != nil {
				return fail(err)
			}
			ch.Bitmap = append(ch.Bitmap, uint32(row))

		case numProps >= 0:
			if keyword == "ENDPROPERTIES" {
				numProps = -1
				continue
			}
			fnt.Properties[keyword] = strings.Trim(args, `"`)

		case ch != nil:
			if keyword == "BITMAP" {
				inBitmap = true
				continue
			}
			if cfunc, ok := charparsers[keyword]; ok {
				if err := cfunc(ch, args); err != nil {
					return fail(fmt.Errorf("%s: %s: %v", ch.Name, keyword, err))
				}
			}

		default:
			switch keyword {
			case "STARTCHAR":
				ch = &Char{Name: args, Encoding: -1}
			case "STARTPROPERTIES":
				if err := scanInts(args, &numProps); err != nil {
					return fail(err)
				}
				if numProps < 0 {
					return fail(fmt.Errorf("negative property count %d", numProps))
				}
				fnt.Properties = make(map[string]string, numProps)
			case "ENDFONT":
				ended = true
			default:
				if pfunc, ok := parsers[keyword]; ok {
					if err := pfunc(fnt, args); err != nil {
						return fail(fmt.Errorf("%s: %v", keyword, err))
					}
				}
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if fnt.Version == "" {
		return fail(errors.New("missing STARTFONT"))
	}
	if !ended {
		return fail(errors.New("missing ENDFONT"))
	}
	if len(fnt.Glyphs) != fnt.NumGlyphs {
		return fail(fmt.Errorf("CHARS is %d, found %d glyphs", fnt.NumGlyphs, len(fnt.Glyphs)))
	}
	return fnt, nil
}
