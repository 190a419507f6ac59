// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewPixmapTarget(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"small", 16, 16},
		{"wide", 64, 4},
		{"tall", 4, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewPixmapTarget(tt.width, tt.height)
			if target.Width() != tt.width || target.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", target.Width(), target.Height(), tt.width, tt.height)
			}
			if target.Stride() != tt.width*4 {
				t.Errorf("Stride() = %d, want %d", target.Stride(), tt.width*4)
			}
			if len(target.Pixels()) != tt.width*tt.height*4 {
				t.Errorf("len(Pixels()) = %d, want %d", len(target.Pixels()), tt.width*tt.height*4)
			}
		})
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	target := NewPixmapTargetFromImage(img)
	target.SetPixel(1, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	if got := img.NRGBAAt(1, 2); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("shared image pixel = %v", got)
	}
	if target.Image() != img {
		t.Error("Image() does not return the wrapped image")
	}
}

func TestPixmapTargetClear(t *testing.T) {
	target := NewPixmapTarget(4, 3)
	want := color.NRGBA{R: 255, G: 128, B: 0, A: 200}
	target.Clear(want)

	for y := range 3 {
		for x := range 4 {
			if got := target.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPixmapTargetResize(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	target.Clear(color.White)
	target.Resize(8, 2)

	if target.Width() != 8 || target.Height() != 2 {
		t.Fatalf("size = %dx%d, want 8x2", target.Width(), target.Height())
	}
	if got := target.GetPixel(0, 0); got.A != 0 {
		t.Errorf("resized target not cleared: %v", got)
	}
}

func TestPixmapTargetSavePNG(t *testing.T) {
	target := NewPixmapTarget(3, 2)
	target.SetPixel(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := target.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 1 || g>>8 != 2 || b>>8 != 3 {
		t.Errorf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestPixmapTargetSavePNGError(t *testing.T) {
	target := NewPixmapTarget(1, 1)
	if err := target.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}
