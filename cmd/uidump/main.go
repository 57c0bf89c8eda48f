// Command uidump runs the UI quad transform over a YAML scene and prints the
// resulting vertex stream.
//
// Usage:
//
//	uidump -scene scene.yaml                 # table on stdout
//	uidump -scene scene.yaml -format binary  # 56-byte vertex records
//	uidump -scene scene.yaml -format instances -output inst.bin
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/config"
	"github.com/gogpu/ggui/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var errUsage = errors.New("uidump: -scene is required")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("uidump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		scenePath = fs.String("scene", "", "scene YAML file")
		format    = fs.String("format", "table", "output format: table, binary or instances")
		output    = fs.String("output", "", "output file (default stdout)")
		fontPath  = fs.String("font", "", "TTF/OTF font for labels (default 7x13 bitmap)")
		fontSize  = fs.Float64("size", 16, "font size in pixels when -font is set")
		workers   = fs.Int("workers", 0, "transform workers (0 = GOMAXPROCS)")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenePath == "" {
		fs.Usage()
		return errUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	ggui.SetLogger(logger)
	defer ggui.SetLogger(nil)

	scene, err := config.LoadFile(*scenePath)
	if err != nil {
		return err
	}

	atlas, err := loadAtlas(*fontPath, *fontSize)
	if err != nil {
		return err
	}
	instances := scene.Instances(atlas)
	logger.Debug("scene loaded", "path", *scenePath, "instances", len(instances))

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("uidump: %w", err)
		}
		defer f.Close()
		out = f
	}

	view := scene.ViewArgs()
	switch *format {
	case "instances":
		_, err = out.Write(ggui.AppendInstances(nil, instances))
		return err
	case "binary", "table":
	default:
		return fmt.Errorf("uidump: unknown format %q", *format)
	}

	var opts []ggui.TransformerOption
	if *workers > 0 {
		opts = append(opts, ggui.WithWorkers(*workers))
	}
	tr := ggui.NewTransformer(opts...)
	defer tr.Close()
	vertices := tr.Transform(nil, view, instances)

	if *format == "binary" {
		_, err = out.Write(ggui.AppendOutputVertices(nil, vertices))
		return err
	}
	return writeTable(out, vertices)
}

func loadAtlas(path string, size float64) (*text.Atlas, error) {
	var face font.Face = basicfont.Face7x13
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("uidump: %w", err)
		}
		if face, err = text.LoadFace(data, size); err != nil {
			return nil, err
		}
	}
	atlas, err := text.NewAtlas(face, text.ASCII)
	if err != nil {
		return nil, err
	}
	w, h := atlas.Size()
	ggui.Logger().Debug("glyph atlas built", "width", w, "height", h, "runes", atlas.Len())
	return atlas, nil
}

func writeTable(w io.Writer, vertices []ggui.OutputVertex) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "inst\tcorner\tx\ty\tu\tv\tcolor\tbias\t")
	for i, v := range vertices {
		c := v.ClipPosition
		fmt.Fprintf(tw, "%d\t%v\t%.5f\t%.5f\t%.4f\t%.4f\t%.3g\t%.3g\t\n",
			i/ggui.CornerCount, ggui.Corner(i%ggui.CornerCount),
			c.X, c.Y, v.TexCoords.X, v.TexCoords.Y, v.Color, v.ColorBias)
	}
	return tw.Flush()
}
