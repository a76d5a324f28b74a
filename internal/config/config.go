// Package config resolves the font description from an INI file.
//
//	[Description]
//	FamilyName = Terminus
//	PointSize = 120
//
//	[Metrics]
//	BaselineOffset = -2
//
// Every recognized key has a fallback, so an empty file is a valid
// configuration. Key names are matched case-insensitively.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrConfiguration is wrapped by every configuration failure.
var ErrConfiguration = errors.New("configuration error")

const (
	SectionDescription = "Description"
	SectionMetrics     = "Metrics"
)

const (
	KeyFoundry         = "Foundry"
	KeyFamilyName      = "FamilyName"
	KeyWeightName      = "WeightName"
	KeySlant           = "Slant"
	KeySetwidthName    = "SetwidthName"
	KeyAddStyleName    = "AddStyleName"
	KeyPointSize       = "PointSize"
	KeyResolutionX     = "ResolutionX"
	KeyResolutionY     = "ResolutionY"
	KeySpacing         = "Spacing"
	KeyCharsetRegistry = "CharsetRegistry"
	KeyCharsetEncoding = "CharsetEncoding"
	KeyBaselineOffset  = "BaselineOffset"
)

const (
	FallbackFoundry         = ""
	FallbackFamilyName      = "Test"
	FallbackWeightName      = "medium"
	FallbackSlant           = "r"
	FallbackSetwidthName    = "normal"
	FallbackAddStyleName    = ""
	FallbackPointSize       = 12
	FallbackResolutionX     = 75
	FallbackResolutionY     = 75
	FallbackSpacing         = "c"
	FallbackCharsetRegistry = "iso10646"
	FallbackCharsetEncoding = "1"
	FallbackBaselineOffset  = -3
)

// FontDescription is the resolved, read-only font configuration.
type FontDescription struct {
	foundry         string
	familyName      string
	weightName      string
	slant           string
	setwidthName    string
	addStyleName    string
	pointSize       int // decipoints
	resolutionX     int
	resolutionY     int
	spacing         string
	charsetRegistry string
	charsetEncoding string
	baselineOffset  int
}

func (d FontDescription) Foundry() string         { return d.foundry }
func (d FontDescription) FamilyName() string      { return d.familyName }
func (d FontDescription) WeightName() string      { return d.weightName }
func (d FontDescription) Slant() string           { return d.slant }
func (d FontDescription) SetwidthName() string    { return d.setwidthName }
func (d FontDescription) AddStyleName() string    { return d.addStyleName }
func (d FontDescription) PointSize() int          { return d.pointSize }
func (d FontDescription) ResolutionX() int        { return d.resolutionX }
func (d FontDescription) ResolutionY() int        { return d.resolutionY }
func (d FontDescription) Spacing() string         { return d.spacing }
func (d FontDescription) CharsetRegistry() string { return d.charsetRegistry }
func (d FontDescription) CharsetEncoding() string { return d.charsetEncoding }
func (d FontDescription) BaselineOffset() int     { return d.baselineOffset }

// Points returns the point size in whole points, floored.
func (d FontDescription) Points() int {
	p := d.pointSize / 10
	if d.pointSize < 0 && d.pointSize%10 != 0 {
		p--
	}
	return p
}

// Fallback returns the description used when the configuration is empty.
func Fallback() FontDescription {
	return FontDescription{
		foundry:         FallbackFoundry,
		familyName:      FallbackFamilyName,
		weightName:      FallbackWeightName,
		slant:           FallbackSlant,
		setwidthName:    FallbackSetwidthName,
		addStyleName:    FallbackAddStyleName,
		pointSize:       FallbackPointSize,
		resolutionX:     FallbackResolutionX,
		resolutionY:     FallbackResolutionY,
		spacing:         FallbackSpacing,
		charsetRegistry: FallbackCharsetRegistry,
		charsetEncoding: FallbackCharsetEncoding,
		baselineOffset:  FallbackBaselineOffset,
	}
}

// resolver reads keys out of a loaded file, remembering the first error so
// the field list in build stays flat.
type resolver struct {
	f   *ini.File
	err error
}

func (r *resolver) key(section, name string) (*ini.Key, bool) {
	s, err := r.f.GetSection(section)
	if err != nil || !s.HasKey(name) {
		return nil, false
	}
	return s.Key(name), true
}

func (r *resolver) text(section, name, fallback string) string {
	k, ok := r.key(section, name)
	if !ok {
		return fallback
	}
	v := k.String()
	if strings.Contains(v, "-") && r.err == nil {
		r.err = fmt.Errorf("%w: [%s] %s = %q: value must not contain '-'", ErrConfiguration, section, name, v)
	}
	return v
}

func (r *resolver) integer(section, name string, fallback int) int {
	k, ok := r.key(section, name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(k.String()))
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("%w: [%s] %s = %q is not an integer", ErrConfiguration, section, name, k.String())
		}
		return fallback
	}
	return n
}

func build(f *ini.File) (FontDescription, error) {
	r := &resolver{f: f}
	d := FontDescription{
		foundry:         r.text(SectionDescription, KeyFoundry, FallbackFoundry),
		familyName:      r.text(SectionDescription, KeyFamilyName, FallbackFamilyName),
		weightName:      r.text(SectionDescription, KeyWeightName, FallbackWeightName),
		slant:           r.text(SectionDescription, KeySlant, FallbackSlant),
		setwidthName:    r.text(SectionDescription, KeySetwidthName, FallbackSetwidthName),
		addStyleName:    r.text(SectionDescription, KeyAddStyleName, FallbackAddStyleName),
		pointSize:       r.integer(SectionDescription, KeyPointSize, FallbackPointSize),
		resolutionX:     r.integer(SectionDescription, KeyResolutionX, FallbackResolutionX),
		resolutionY:     r.integer(SectionDescription, KeyResolutionY, FallbackResolutionY),
		spacing:         r.text(SectionDescription, KeySpacing, FallbackSpacing),
		charsetRegistry: r.text(SectionDescription, KeyCharsetRegistry, FallbackCharsetRegistry),
		charsetEncoding: r.text(SectionDescription, KeyCharsetEncoding, FallbackCharsetEncoding),
		baselineOffset:  r.integer(SectionMetrics, KeyBaselineOffset, FallbackBaselineOffset),
	}
	if r.err != nil {
		return FontDescription{}, r.err
	}
	return d, nil
}

var loadOptions = ini.LoadOptions{
	InsensitiveKeys: true,
}

// Resolve loads the INI file at path.
func Resolve(path string) (FontDescription, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return FontDescription{}, fmt.Errorf("%w: %s: %v", ErrConfiguration, path, err)
	}
	return build(f)
}

// Parse resolves a description from INI text.
func Parse(data []byte) (FontDescription, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return FontDescription{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return build(f)
}
