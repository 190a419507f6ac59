// Command tileplay runs the demo tile map in an Ebitengine window.
//
// Keys: B toggles borders, C toggles grid debug points, +/- zoom, Esc quits.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/tiles"
	"github.com/gogpu/tiles/backend/ebitengine"
	"github.com/gogpu/tiles/internal/demo"
)

var errQuit = errors.New("quit")

type game struct {
	dev   *ebitengine.Device
	scene *demo.Scene
	state tiles.PostRenderState
	zoom  float32
	w, h  int
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return errQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		r := g.scene.Renderer
		r.SetRenderBorders(!r.RenderBorders())
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		r := g.scene.Renderer
		r.SetRenderCollisionShapes(!r.RenderCollisionShapes())
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.zoom *= 1.25
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.zoom /= 1.25
	}
	g.scene.Update(1 / float32(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.dev.SetTarget(screen)
	g.dev.LoadMatrix(g.scene.View(g.w, g.h, g.zoom))
	g.scene.Renderer.OnRender(g.scene.Context(g.dev, g.w, g.h, g.zoom), &g.state)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	width := flag.Int("width", 800, "window width")
	height := flag.Int("height", 600, "window height")
	images := flag.String("images", "", "directory of tile images (default: generated swatches)")
	cols := flag.Int("cols", 24, "map columns")
	rows := flag.Int("rows", 18, "map rows")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		tiles.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := demo.DefaultOptions()
	opts.Cols, opts.Rows = *cols, *rows
	if *images != "" {
		opts.Images = os.DirFS(*images)
	}

	dev := ebitengine.NewDevice(nil)
	scene, err := demo.Build(dev, opts)
	if err != nil {
		log.Fatalf("tileplay: %v", err)
	}
	defer scene.Close()

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("tileplay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{dev: dev, scene: scene, zoom: 1, w: *width, h: *height}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Printf("tileplay: %v", err)
	}
}
