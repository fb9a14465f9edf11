package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KasperskyLab/CaptchaMixer-sub000"
	"github.com/KasperskyLab/CaptchaMixer-sub000/rasterizer"
	"github.com/KasperskyLab/CaptchaMixer-sub000/skeleton"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

type Skeletonize struct {
	Quality     float64 `short:"q" default:"4" desc:"Raster pixels per path unit"`
	Threshold   int     `default:"128" desc:"Minimum coverage (0-255) of a set pixel"`
	Margin      int     `default:"1" desc:"Empty pixels around the rasterized shape"`
	Iterations  int     `default:"0" desc:"Thinning sweep limit, 0 derives it from the raster size"`
	Primitivize float64 `default:"0" desc:"Simplify the skeleton, keeping points further than this distance from the base line"`
	Scale       int     `default:"4" desc:"Pixel scale of image previews"`
	Verbose     bool    `short:"v" desc:"Log thinning and tracing progress"`
	Output      string  `short:"o" desc:"Output file (.svg, .png, .jpg, .gif or .tiff), path data is written to stdout otherwise"`
	Input       string  `index:"0" desc:"SVG path data or file containing it"`
}

type Edit struct {
	Granulate   float64 `short:"g" default:"0" desc:"Subdivide lines and curves to this maximum length"`
	Straighten  float64 `short:"s" default:"0" desc:"Pull control points and joints towards a straight shape by this ratio"`
	MaxDistance float64 `default:"10" desc:"Maximum distance of points moved by straightening"`
	Primitivize float64 `short:"p" default:"0" desc:"Replace contours by polylines, keeping points further than this distance from the base line"`
	Output      string  `short:"o" desc:"Output file (.svg), path data is written to stdout otherwise"`
	Input       string  `index:"0" desc:"SVG path data or file containing it"`
}

func main() {
	root := argp.NewCmd(&Skeletonize{}, "Skeletonization toolkit for CAPTCHA glyph paths")
	root.AddCmd(&Edit{}, "edit", "Granulate, straighten or primitivize a path")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Skeletonize) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	} else if cmd.Threshold < 0 || 255 < cmd.Threshold {
		return fmt.Errorf("threshold must be between 0 and 255")
	}
	if cmd.Verbose {
		captcha.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	p, err := readPath(cmd.Input)
	if err != nil {
		return err
	}

	opts := skeleton.Options{
		Quality:       cmd.Quality,
		Threshold:     uint8(cmd.Threshold),
		Margin:        cmd.Margin,
		MaxIterations: cmd.Iterations,
	}
	skel, err := skeleton.Skeletonize(p, opts)
	if err != nil {
		return err
	}
	if 0.0 < cmd.Primitivize {
		skel.Primitivize(cmd.Primitivize)
	}

	switch ext := strings.ToLower(filepath.Ext(cmd.Output)); {
	case cmd.Output == "" || cmd.Output == "-":
		fmt.Println(skel.String())
		return nil
	case ext == ".svg":
		return writeSVG(cmd.Output, p, skel)
	default:
		enc, err := rasterizer.EncoderFor(cmd.Output)
		if err != nil {
			return err
		}
		m, w, h := opts.Raster(p.Bounds())
		img := rasterizer.Preview(rasterizer.Rasterize(p, w, h, m), skel, m, cmd.Scale)

		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		if err := enc(f, img); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}

func (cmd *Edit) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	p, err := readPath(cmd.Input)
	if err != nil {
		return err
	}
	orig := p.Copy()
	if 0.0 < cmd.Granulate {
		if err := p.Granulate(cmd.Granulate); err != nil {
			return err
		}
	}
	if cmd.Straighten != 0.0 {
		p.Straighten(cmd.Straighten, cmd.MaxDistance)
	}
	if 0.0 < cmd.Primitivize {
		p.Primitivize(cmd.Primitivize)
	}

	if cmd.Output == "" || cmd.Output == "-" {
		fmt.Println(p.String())
		return nil
	} else if ext := strings.ToLower(filepath.Ext(cmd.Output)); ext != ".svg" {
		return fmt.Errorf("unknown output format '%s'", ext)
	}
	return writeSVG(cmd.Output, orig, p)
}

// readPath parses the input as a file containing path data, or as path data itself.
func readPath(input string) (*captcha.Path, error) {
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		b, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		input = string(b)
	}
	return captcha.ParseSVGPath(strings.TrimSpace(input))
}

// writeSVG writes a minified SVG image showing the result over the original path.
func writeSVG(filename string, orig, result *captcha.Path) error {
	bounds := orig.Bounds().Add(result.Bounds())
	stroke := max(bounds.W, bounds.H) / 200.0
	if stroke <= 0.0 {
		stroke = 1.0
	}
	pad := 4.0 * stroke

	sb := strings.Builder{}
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`, bounds.X-pad, bounds.Y-pad, bounds.W+2.0*pad, bounds.H+2.0*pad)
	sb.WriteString(orig.ToSVG("#999999", stroke))
	sb.WriteString(result.ToSVG("#dc1e1e", 2.0*stroke))
	sb.WriteString(`</svg>`)

	m := minify.New()
	m.AddFunc("image/svg+xml", svg.Minify)
	out, err := m.String("image/svg+xml", sb.String())
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(out), 0644)
}
