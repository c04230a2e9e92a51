// Command dropshade reads an image from a file or stdin, rounds its
// corners, composites a soft drop shadow behind it, and writes the result
// as a PNG to a file or stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/erinpentecost/dropshade/internal/imgio"
	"github.com/erinpentecost/dropshade/internal/shade"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
	"golang.org/x/term"
)

type rootCmd struct {
	input    string
	output   string
	radius   int
	offset   string
	alpha    int
	spread   int
	edgeFade bool
	threads  int
	verbose  bool
}

func (c *rootCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "dropshade",
		Usage: "[flags]",
		Desc:  "Round an image's corners and composite a soft drop shadow behind it.",
	}
}

func (c *rootCmd) RegisterFlags(fl *pflag.FlagSet) {
	fl.StringVarP(&c.input, "input", "i", "", "input image file (default: read from stdin)")
	fl.StringVarP(&c.output, "output", "o", "", "output PNG file (default: write to stdout)")
	fl.IntVarP(&c.radius, "radius", "r", 8, "corner radius for rounding")
	fl.StringVarP(&c.offset, "offset", "e", "-20,-20", "shadow offset in x,y format")
	fl.IntVarP(&c.alpha, "alpha", "a", 150, "shadow alpha (0-255)")
	fl.IntVarP(&c.spread, "spread", "s", 26, "shadow spread distance")
	fl.BoolVar(&c.edgeFade, "edge-fade", false, "fade the shadow toward its bounding box edge")
	fl.IntVarP(&c.threads, "threads", "t", 4, "worker limit for the blur passes")
	fl.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose output")
}

func (c *rootCmd) Run(fl *pflag.FlagSet) {
	if err := c.run(); err != nil {
		fmt.Fprintf(os.Stderr, "dropshade: %v\n", err)
		os.Exit(1)
	}
}

// flagError is a parse failure for a specific flag. Bad numeric input
// never silently falls back to a default.
type flagError struct {
	flag   string
	value  string
	reason string
}

func (e *flagError) Error() string {
	return fmt.Sprintf("invalid value %q for --%s: %s", e.value, e.flag, e.reason)
}

func parseOffset(value string) (x, y int, err error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, &flagError{flag: "offset", value: value, reason: "expected x,y"}
	}
	x, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, &flagError{flag: "offset", value: value, reason: "x is not an integer"}
	}
	y, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, &flagError{flag: "offset", value: value, reason: "y is not an integer"}
	}
	return x, y, nil
}

func (c *rootCmd) params() (shade.Params, error) {
	offsetX, offsetY, err := parseOffset(c.offset)
	if err != nil {
		return shade.Params{}, err
	}
	if c.alpha < 0 || c.alpha > 255 {
		return shade.Params{}, &flagError{flag: "alpha", value: strconv.Itoa(c.alpha), reason: "must be between 0 and 255"}
	}
	if c.radius < 0 {
		return shade.Params{}, &flagError{flag: "radius", value: strconv.Itoa(c.radius), reason: "must not be negative"}
	}
	if c.spread < 0 {
		return shade.Params{}, &flagError{flag: "spread", value: strconv.Itoa(c.spread), reason: "must not be negative"}
	}
	if c.threads < 1 {
		return shade.Params{}, &flagError{flag: "threads", value: strconv.Itoa(c.threads), reason: "must be at least 1"}
	}

	p := shade.DefaultParams()
	p.Radius = c.radius
	p.OffsetX = offsetX
	p.OffsetY = offsetY
	p.Alpha = uint8(c.alpha)
	p.Spread = c.spread
	p.EdgeFade = c.edgeFade
	p.Workers = c.threads
	return p, nil
}

func (c *rootCmd) run() error {
	params, err := c.params()
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	source := "stdin"
	if c.input != "" {
		f, err := os.Open(c.input)
		if err != nil {
			return fmt.Errorf("open %q: %w", c.input, err)
		}
		defer f.Close()
		in, source = f, c.input
	}

	src, format, err := imgio.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", source, err)
	}
	c.logf("decoded %s image from %s (%dx%d)", format, source, src.Bounds().Dx(), src.Bounds().Dy())

	out, err := shade.Apply(src, params)
	if err != nil {
		return fmt.Errorf("process image: %w", err)
	}
	c.logf("composed %dx%d canvas", out.Bounds().Dx(), out.Bounds().Dy())

	if c.output == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("refusing to write binary PNG to a terminal; pass --output or redirect stdout")
		}
		return imgio.EncodePNG(os.Stdout, out)
	}

	f, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("create %q: %w", c.output, err)
	}
	if err := imgio.EncodePNG(f, out); err != nil {
		f.Close()
		return fmt.Errorf("write %q: %w", c.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", c.output, err)
	}
	c.logf("saved %q", c.output)
	return nil
}

func (c *rootCmd) logf(format string, args ...any) {
	if !c.verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func main() {
	cli.RunRoot(&rootCmd{})
}
