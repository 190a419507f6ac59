// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"bytes"
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"io/fs"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/gogpu/tiles/render"
)

func pngFile(t *testing.T, w, h int, c color.NRGBA) *fstest.MapFile {
	t.Helper()
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return &fstest.MapFile{Data: buf.Bytes()}
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"gfx/rock.png":   pngFile(t, 8, 4, color.NRGBA{100, 90, 80, 255}),
		"gfx/weed.png":   pngFile(t, 2, 2, color.NRGBA{0, 200, 0, 128}),
		"gfx/broken.png": &fstest.MapFile{Data: []byte("not a png")},
	}
}

func TestManagerAcquireShares(t *testing.T) {
	dev := render.NewSoftwareDevice()
	m := NewManager(dev, testFS(t))

	a, err := m.Acquire("gfx/rock.png")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	b, err := m.Acquire("gfx/rock.png")
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}

	if a != b {
		t.Error("Acquire() should share the handle")
	}
	if a.Refs() != 2 {
		t.Errorf("Refs() = %d, want 2", a.Refs())
	}
	if dev.TextureCount() != 1 {
		t.Errorf("TextureCount() = %d, want 1", dev.TextureCount())
	}
	if tex := a.Texture(); tex.Width() != 8 || tex.Height() != 4 || !tex.Mipmapped() {
		t.Errorf("texture = %dx%d mipmapped=%v, want 8x4 mipmapped", tex.Width(), tex.Height(), tex.Mipmapped())
	}
}

func TestManagerAcquireWithoutExtension(t *testing.T) {
	m := NewManager(render.NewSoftwareDevice(), testFS(t), WithMipmaps(false))

	h, err := m.Acquire("gfx/weed")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if h.Name() != "gfx/weed" {
		t.Errorf("Name() = %q, want gfx/weed", h.Name())
	}
	if h.Texture().Mipmapped() {
		t.Error("WithMipmaps(false) texture is mipmapped")
	}
}

func TestManagerAcquireErrors(t *testing.T) {
	m := NewManager(render.NewSoftwareDevice(), testFS(t))

	if _, err := m.Acquire("gfx/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Acquire(missing) error = %v, want %v", err, fs.ErrNotExist)
	}
	if _, err := m.Acquire("gfx/broken.png"); err == nil {
		t.Error("Acquire(broken) should fail")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after failures, want 0", m.Len())
	}

	noFS := NewManager(render.NewSoftwareDevice(), nil)
	if _, err := noFS.Acquire("x"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Acquire() without fs error = %v, want %v", err, fs.ErrNotExist)
	}
}

func TestManagerRelease(t *testing.T) {
	dev := render.NewSoftwareDevice()
	m := NewManager(dev, testFS(t))

	h, _ := m.Acquire("gfx/rock.png")
	_, _ = m.Acquire("gfx/rock.png")

	h.Release()
	if h.Texture().ID() == 0 {
		t.Fatal("texture unloaded while still referenced")
	}

	h.Release()
	if h.Texture().ID() != 0 {
		t.Error("texture still loaded after last Release")
	}
	if _, ok := m.Lookup("gfx/rock.png"); ok {
		t.Error("released texture still managed")
	}
	if dev.TextureCount() != 0 {
		t.Errorf("TextureCount() = %d, want 0", dev.TextureCount())
	}

	h.Release()
	if h.Refs() != 0 {
		t.Errorf("Refs() = %d, want 0", h.Refs())
	}
}

func TestManagerAdd(t *testing.T) {
	dev := render.NewSoftwareDevice()
	m := NewManager(dev, nil)

	h, err := m.Add("swatch", solid(4, 4, 3, 255, 0, 0))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	again, err := m.Add("swatch", solid(2, 2, 3, 0, 255, 0))
	if err != nil {
		t.Fatalf("second Add() error = %v", err)
	}
	if again != h || h.Refs() != 2 {
		t.Errorf("Add() should share and re-upload, refs = %d", h.Refs())
	}
	if h.Texture().Width() != 2 {
		t.Errorf("Width() = %d, want re-uploaded 2", h.Texture().Width())
	}

	if _, err := m.Add("bad", &ImageData{}); !errors.Is(err, ErrNilPixels) {
		t.Errorf("Add(bad) error = %v, want %v", err, ErrNilPixels)
	}

	if got := m.Names(); !reflect.DeepEqual(got, []string{"swatch"}) {
		t.Errorf("Names() = %v, want [swatch]", got)
	}

	m.Close()
	if m.Len() != 0 || dev.TextureCount() != 0 {
		t.Errorf("Close() left %d managed, %d device textures", m.Len(), dev.TextureCount())
	}
}
