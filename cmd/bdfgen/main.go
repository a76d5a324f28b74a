// bdfgen is a commandline tool for compiling a directory of glyph files into a
// BDF font. First draw each glyph in its own file, either as text:
//
//	 XXX
//	X   X
//	XXXXX
//	X   X
//
// or as a small image with dark pixels on a light background. Name each file
// after its glyph (U+0041.txt, uni0042.png, space.txt, ...) and make sure all
// glyphs have the same size. Then describe the font in an INI file:
//
//	[Description]
//	FamilyName = Blocky
//	PointSize = 120
//
//	[Metrics]
//	BaselineOffset = -2
//
// and simply run:
//
//	./bdfgen blocky.ini glyphs/ blocky.bdf
//
// The output filename defaults to a.bdf.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pbnjay/bdfgen"
)

const defaultOutput = "a.bdf"

const (
	exitOK = iota
	exitUsage
	exitMissingInput
	exitConfiguration
	exitGlyphData
	exitOutput
)

const (
	errWrongNumberOfArguments = "Usage Error: Incorrect number of arguments provided."
	errMissingConfigFile      = "Usage Error: The config file specified cannot be found."
	errMissingGlyphDirectory  = "Usage Error: The glyph directory specified cannot be found."
)

func isFile(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && fi.Mode().IsRegular()
}

func isDir(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && fi.IsDir()
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, bdfgen.ErrConfiguration):
		return exitConfiguration
	case errors.Is(err, bdfgen.ErrGlyphData):
		return exitGlyphData
	}
	return exitOutput
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("bdfgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log each glyph as it is read")
	usage := func() {
		fmt.Fprintf(stderr, "%s [-v] config_file glyph_dir [output_filename]\n", fs.Name())
		fs.PrintDefaults()
	}
	fs.Usage = usage

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if fs.NArg() != 2 && fs.NArg() != 3 {
		fmt.Fprintln(stderr, errWrongNumberOfArguments)
		usage()
		return exitUsage
	}

	configFile := fs.Arg(0)
	if !isFile(configFile) {
		fmt.Fprintln(stderr, errMissingConfigFile)
		usage()
		return exitMissingInput
	}

	glyphDir := fs.Arg(1)
	if !isDir(glyphDir) {
		fmt.Fprintln(stderr, errMissingGlyphDirectory)
		usage()
		return exitMissingInput
	}

	outputFile := defaultOutput
	if fs.NArg() == 3 {
		outputFile = fs.Arg(2)
	}

	if err := bdfgen.CompileFile(configFile, glyphDir, outputFile); err != nil {
		logrus.WithError(err).Error("compile failed")
		return exitCode(err)
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
