// Command bdfdump opens a BDF format font and prints every glyph as text, one
// bracketed row per line, in file order. Useful for checking the output of
// bdfgen by eye.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pbnjay/bdfgen/internal/bdf"
)

func dump(w io.Writer, r io.Reader) error {
	f, err := bdf.Open(r)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"font":  f.FontName,
		"chars": len(f.Glyphs),
	}).Debug("opened font")

	for _, c := range f.Glyphs {
		if _, err := fmt.Fprintf(w, "%s\n\n", c); err != nil {
			return err
		}
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if len(args) != 1 {
		fmt.Fprintln(stderr, "USAGE: bdfdump filename.bdf")
		return 1
	}
	f, err := os.Open(args[0])
	if err != nil {
		logrus.WithError(err).Error("open failed")
		return 1
	}
	defer f.Close()

	if err := dump(stdout, f); err != nil {
		logrus.WithError(err).WithField("file", args[0]).Error("read failed")
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
