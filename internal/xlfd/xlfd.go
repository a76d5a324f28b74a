// Package xlfd composes X Logical Font Description names.
package xlfd

import (
	"strconv"
	"strings"

	"github.com/pbnjay/bdfgen/internal/config"
)

// Name returns the hyphen-delimited XLFD name for the font:
//
//	-Foundry-Family-Weight-Slant-Setwidth-AddStyle-Points-PointSize-ResX-ResY-Spacing-AverageWidth-Registry-Encoding
//
// Empty fields leave adjacent hyphens. AverageWidth is the cell width in
// pixels, as given.
func Name(d config.FontDescription, glyphWidth int) string {
	parts := []string{
		d.Foundry(),
		d.FamilyName(),
		d.WeightName(),
		d.Slant(),
		d.SetwidthName(),
		d.AddStyleName(),
		strconv.Itoa(d.Points()),
		strconv.Itoa(d.PointSize()),
		strconv.Itoa(d.ResolutionX()),
		strconv.Itoa(d.ResolutionY()),
		d.Spacing(),
		strconv.Itoa(glyphWidth),
		d.CharsetRegistry(),
		d.CharsetEncoding(),
	}
	return "-" + strings.Join(parts, "-")
}
