// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// RenderTarget is the framebuffer the software device draws into.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Pixels returns direct access to pixel data, 4 bytes per pixel
	// (R, G, B, A, non-premultiplied).
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixmapTarget is a CPU-backed render target using *image.NRGBA.
//
// Example:
//
//	dev := render.NewSoftwareDevice(render.WithFramebuffer(800, 600))
//	// ... draw ...
//	err := dev.Target().SavePNG("frame.png")
type PixmapTarget struct {
	img *image.NRGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.NRGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.NRGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.NRGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.NRGBA {
	return t.img
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	pix := t.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = n.R, n.G, n.B, n.A
	}
}

// SetPixel sets a single pixel at the given coordinates.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.img.Set(x, y, c)
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.NRGBA {
	return t.img.NRGBAAt(x, y)
}

// Resize creates a new target with the given dimensions.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewNRGBA(image.Rect(0, 0, width, height))
}

// SavePNG writes the target contents to a PNG file.
func (t *PixmapTarget) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, t.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var _ RenderTarget = (*PixmapTarget)(nil)
