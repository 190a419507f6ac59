// Package demo builds the sample map shared by the tileview and tileplay
// commands.
package demo

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles"
	"github.com/gogpu/tiles/render"
	"github.com/gogpu/tiles/texture"
	"github.com/gogpu/tiles/tileset"
)

// ErrNoImages is returned when an image directory holds no usable files.
var ErrNoImages = errors.New("demo: no images")

// missingIdx is a kind index nothing is registered at.
const missingIdx = 99

// Options configures Build.
type Options struct {
	// Images holds tile images. Nil generates swatches instead.
	Images fs.FS

	Cols, Rows int

	// TileSize is the side of a tile in world units.
	TileSize float32

	// Mipmaps requests mipmapped textures.
	Mipmaps bool
}

// DefaultOptions returns a 16×12 map of 32-unit tiles.
func DefaultOptions() Options {
	return Options{Cols: 16, Rows: 12, TileSize: 32, Mipmaps: true}
}

// Scene is a populated map ready to render.
type Scene struct {
	Manager  *texture.Manager
	Tileset  *tileset.Tileset
	Storage  *tiles.Storage
	Renderer *tiles.TileRenderer

	Wave   *WaveGrid
	Glow   *tiles.EffectData
	Ripple *tiles.EffectData

	// Width and Height are the map extent in world units.
	Width, Height float32

	clock float32
}

// Build uploads the tile textures to dev and lays out the map.
func Build(dev render.TextureDevice, opts Options) (*Scene, error) {
	if opts.Cols <= 0 || opts.Rows <= 0 || opts.TileSize <= 0 {
		return nil, fmt.Errorf("demo: map %dx%d of %v: %w", opts.Cols, opts.Rows, opts.TileSize, texture.ErrInvalidDimensions)
	}
	mgr := texture.NewManager(dev, opts.Images, texture.WithMipmaps(opts.Mipmaps))
	ts := tileset.New()

	names, err := imageNames(opts.Images)
	if err != nil {
		return nil, err
	}
	if opts.Images == nil {
		names, err = addSwatches(mgr)
		if err != nil {
			return nil, err
		}
	}
	for i, name := range names {
		if err := ts.Add(tileset.NewKind(i, name)); err != nil {
			return nil, err
		}
	}
	if err := ts.LoadTextures(mgr, nil); err != nil {
		tiles.Logger().Warn("demo: some textures failed", "err", err)
	}

	wave := NewWaveGrid(4, 4, 0.08)
	s := &Scene{
		Manager: mgr,
		Tileset: ts,
		Storage: &tiles.Storage{},
		Wave:    wave,
		Glow:    &tiles.EffectData{Blend: render.BlendAdd, Alpha: 0.75},
		Ripple:  &tiles.EffectData{Blend: render.BlendDefault, Alpha: 1, Grid: wave},
		Width:   float32(opts.Cols) * opts.TileSize,
		Height:  float32(opts.Rows) * opts.TileSize,
	}
	s.layout(opts)
	s.Renderer = tiles.NewTileRenderer(s.Storage)
	return s, nil
}

func (s *Scene) layout(opts Options) {
	n := max(s.Tileset.Len(), 1)
	size := opts.TileSize
	for r := range opts.Rows {
		for c := range opts.Cols {
			i := r*opts.Cols + c
			idx := (c / 2) % n
			if r == opts.Rows-1 && c == opts.Cols-1 {
				idx = missingIdx
			}
			kind := s.Tileset.ByIdx(idx).Kind()

			t := tiles.NewTile(kind, (float32(c)+0.5)*size, (float32(r)+0.5)*size)
			if kind.W > 0 && kind.H > 0 {
				t.ScaleX, t.ScaleY = size/kind.W, size/kind.H
			} else {
				kind.W, kind.H = size, size
			}
			t.Tag = idx
			switch {
			case i%7 == 3:
				t.Flags |= tiles.FlagFlipH
			case i%11 == 5:
				t.Rotation = 90
			case i%13 == 8:
				t.Flags |= tiles.FlagFlipH | tiles.FlagFlipV
			}
			switch r % 6 {
			case 2:
				t.Effect = s.Glow
			case 4:
				t.Effect = s.Ripple
			}
			at := s.Storage.Add(t)
			if r == 0 {
				s.Storage.SetRepeat(at, true)
				rd := s.Storage.Tiles[at].Repeat
				rd.TexScaleX, rd.TexScaleY = 2, 2
				rd.Refresh(kind, t.ScaleX, t.ScaleY)
			}
		}
	}
}

// Update advances effects by dt seconds.
func (s *Scene) Update(dt float32) {
	s.clock += dt
	s.Wave.Update(dt)
	s.Glow.Alpha = 0.5 + 0.25*float32(math.Sin(float64(s.clock)*3))
	s.Renderer.OnUpdate(dt)
}

// View returns the camera transform showing the map centre in the middle
// of a width×height framebuffer at zoom.
func (s *Scene) View(width, height int, zoom float32) mgl32.Mat4 {
	return mgl32.Translate3D(float32(width)/2, float32(height)/2, 0).
		Mul4(mgl32.Scale3D(zoom, zoom, 1)).
		Mul4(mgl32.Translate3D(-s.Width/2, -s.Height/2, 0))
}

// Context returns the render context matching View.
func (s *Scene) Context(dev render.Device, width, height int, zoom float32) *tiles.RenderContext {
	center := mgl32.Vec2{s.Width / 2, s.Height / 2}
	w, h := float32(width)/zoom, float32(height)/zoom
	return &tiles.RenderContext{
		Device:            dev,
		ScreenCenter:      center,
		CullCenter:        center,
		CullRadiusSqr:     (w*w + h*h) / 4,
		InvGlobalScaleSqr: 1 / (zoom * zoom),
		Color:             mgl32.Vec3{1, 1, 1},
		Alpha:             1,
	}
}

// Close releases every texture.
func (s *Scene) Close() {
	s.Tileset.Clear()
	s.Manager.Close()
}

var imageExts = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tif", ".tiff"}

// imageNames lists the images at the root of fsys in name order.
func imageNames(fsys fs.FS) ([]string, error) {
	if fsys == nil {
		return nil, nil
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("demo: read images: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(imageExts, strings.ToLower(path.Ext(e.Name()))) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoImages
	}
	return names, nil
}

// swatch describes a generated tile image.
type swatch struct {
	name     string
	channels int
	a, b     [4]byte
}

var swatches = []swatch{
	{"grass", 4, [4]byte{70, 140, 60, 255}, [4]byte{90, 170, 70, 255}},
	{"sand", 3, [4]byte{210, 190, 130, 255}, [4]byte{230, 210, 150, 255}},
	{"stone", 1, [4]byte{110, 110, 110, 255}, [4]byte{150, 150, 150, 255}},
	{"water", 4, [4]byte{40, 90, 200, 200}, [4]byte{60, 120, 230, 160}},
	{"smoke", 2, [4]byte{200, 200, 200, 90}, [4]byte{240, 240, 240, 40}},
}

// addSwatches uploads checkered 32×32 images in every channel layout.
func addSwatches(mgr *texture.Manager) ([]string, error) {
	const size, cell = 32, 8
	names := make([]string, 0, len(swatches))
	for _, sw := range swatches {
		px := make([]byte, 0, size*size*sw.channels)
		for y := range size {
			for x := range size {
				c := sw.a
				if (x/cell+y/cell)%2 == 1 {
					c = sw.b
				}
				switch sw.channels {
				case 1:
					px = append(px, c[0])
				case 2:
					px = append(px, c[0], c[3])
				case 3:
					px = append(px, c[0], c[1], c[2])
				default:
					px = append(px, c[:]...)
				}
			}
		}
		img := &texture.ImageData{Pixels: px, Width: size, Height: size, Channels: sw.channels}
		if _, err := mgr.Add(sw.name, img); err != nil {
			return nil, err
		}
		names = append(names, sw.name)
	}
	return names, nil
}
