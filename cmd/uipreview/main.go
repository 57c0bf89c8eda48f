// Command uipreview draws a YAML UI scene in a window.
//
// The scene goes through the same transform as the GPU path; the resulting
// clip-space quads are mapped back to window pixels and drawn with
// ebiten's DrawTriangles. Press R to reload the scene file, Esc to quit.
//
// Usage:
//
//	uipreview -scene scene.yaml
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/text"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "scene YAML file")
		fontPath  = flag.String("font", "", "TTF/OTF font for labels (default 7x13 bitmap)")
		fontSize  = flag.Float64("size", 16, "font size in pixels when -font is set")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	if *scenePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	ggui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var face font.Face = basicfont.Face7x13
	if *fontPath != "" {
		data, err := os.ReadFile(*fontPath)
		if err != nil {
			log.Fatalf("Failed to read font: %v", err)
		}
		if face, err = text.LoadFace(data, *fontSize); err != nil {
			log.Fatalf("Failed to load font: %v", err)
		}
	}
	atlas, err := text.NewAtlas(face, text.ASCII)
	if err != nil {
		log.Fatalf("Failed to build glyph atlas: %v", err)
	}

	g, err := newGame(*scenePath, atlas)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	defer g.Close()

	ebiten.SetWindowTitle("uipreview - " + *scenePath)
	ebiten.SetWindowSize(g.Layout(0, 0))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
