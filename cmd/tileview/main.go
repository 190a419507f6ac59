// Command tileview renders the demo tile map, either headless into a PNG
// with the software device or in an OpenGL window.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles"
	"github.com/gogpu/tiles/backend"
	_ "github.com/gogpu/tiles/backend/opengl"
	"github.com/gogpu/tiles/internal/demo"
	"github.com/gogpu/tiles/render"
)

// matrixLoader is implemented by every device in this module.
type matrixLoader interface {
	LoadMatrix(m mgl32.Mat4)
}

type config struct {
	backend       string
	width, height int
	output        string
	images        string
	cols, rows    int
	tileSize      float64
	zoom          float64
	borders       bool
	shapes        bool
	frames        int
	mipmaps       bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.backend, "backend", backend.BackendSoftware, "device backend: software or opengl")
	flag.IntVar(&cfg.width, "width", 800, "framebuffer width")
	flag.IntVar(&cfg.height, "height", 600, "framebuffer height")
	flag.StringVar(&cfg.output, "output", "tiles.png", "output file (software backend)")
	flag.StringVar(&cfg.images, "images", "", "directory of tile images (default: generated swatches)")
	flag.IntVar(&cfg.cols, "cols", 24, "map columns")
	flag.IntVar(&cfg.rows, "rows", 18, "map rows")
	flag.Float64Var(&cfg.tileSize, "tile", 32, "tile size in world units")
	flag.Float64Var(&cfg.zoom, "zoom", 1, "camera zoom")
	flag.BoolVar(&cfg.borders, "borders", false, "draw tag-coloured tile borders")
	flag.BoolVar(&cfg.shapes, "shapes", false, "draw grid debug points")
	flag.IntVar(&cfg.frames, "frames", 0, "frames to show before exiting, 0 runs until closed (opengl backend)")
	flag.BoolVar(&cfg.mipmaps, "mipmaps", true, "build mipmaps for tile textures")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		tiles.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var err error
	switch cfg.backend {
	case backend.BackendSoftware:
		err = renderPNG(cfg)
	case backend.BackendOpenGL:
		err = runWindow(cfg)
	default:
		log.Fatalf("unknown backend %q", cfg.backend)
	}
	if err != nil {
		log.Fatalf("tileview: %v", err)
	}
}

func sceneOptions(cfg config) demo.Options {
	opts := demo.DefaultOptions()
	opts.Cols, opts.Rows = cfg.cols, cfg.rows
	opts.TileSize = float32(cfg.tileSize)
	opts.Mipmaps = cfg.mipmaps
	if cfg.images != "" {
		opts.Images = os.DirFS(cfg.images)
	}
	return opts
}

func configure(s *demo.Scene, cfg config) {
	s.Renderer.SetRenderBorders(cfg.borders)
	s.Renderer.SetRenderCollisionShapes(cfg.shapes)
}

// renderFrame draws one frame of s through dev.
func renderFrame(s *demo.Scene, dev render.Device, cfg config, state *tiles.PostRenderState) {
	zoom := float32(cfg.zoom)
	if ml, ok := dev.(matrixLoader); ok {
		ml.LoadMatrix(s.View(cfg.width, cfg.height, zoom))
	}
	s.Renderer.OnRender(s.Context(dev, cfg.width, cfg.height, zoom), state)
}

func renderPNG(cfg config) error {
	b, err := backend.Open(backend.BackendSoftware)
	if err != nil {
		return err
	}
	defer b.Close()

	dev, err := b.NewDevice(cfg.width, cfg.height)
	if err != nil {
		return err
	}
	s, err := demo.Build(dev, sceneOptions(cfg))
	if err != nil {
		return err
	}
	defer s.Close()
	configure(s, cfg)

	sd := dev.(*render.SoftwareDevice)
	sd.ResetStats()

	var state tiles.PostRenderState
	renderFrame(s, dev, cfg, &state)
	if err := sd.Err(); err != nil {
		return err
	}
	if err := sd.Target().SavePNG(cfg.output); err != nil {
		return err
	}

	st := sd.Stats()
	log.Printf("saved %s (%dx%d): %d tiles, %d draws, %d texture binds, %d buffer binds",
		cfg.output, cfg.width, cfg.height, s.Storage.Len(), st.DrawCalls, st.TextureBinds, st.BufferBinds)
	return nil
}
