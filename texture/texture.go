// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"errors"
	"fmt"

	"github.com/gogpu/tiles/internal/image"
	"github.com/gogpu/tiles/render"
)

// Errors returned by texture operations.
var (
	// ErrNilPixels is returned when an upload has no pixel data.
	ErrNilPixels = errors.New("texture: nil pixels")

	// ErrInvalidChannels is returned for channel counts outside 1-4.
	ErrInvalidChannels = errors.New("texture: invalid channel count")

	// ErrInvalidDimensions is returned for non-positive width or height.
	ErrInvalidDimensions = errors.New("texture: invalid dimensions")

	// ErrNotLoaded is returned when the texture holds no device handle.
	ErrNotLoaded = errors.New("texture: not loaded")

	// ErrAllocation is returned when a readback buffer cannot be allocated.
	ErrAllocation = errors.New("texture: allocation failed")
)

// ImageData is a tightly packed 8-bit pixel buffer with 1 (luminance),
// 2 (luminance+alpha), 3 (RGB) or 4 (RGBA) channels. Row 0 is the top row.
type ImageData struct {
	Pixels   []byte
	Width    int
	Height   int
	Channels int
}

// Pixels is an RGBA8 readback result owned by the caller.
type Pixels struct {
	Data   []byte
	Width  int
	Height int
	Bytes  int
}

// Texture is one device-resident image.
//
// The device handle is non-zero exactly while a successful upload has not
// been followed by Unload. A Texture is used from the goroutine owning the
// device only.
type Texture struct {
	dev  render.TextureDevice
	opts options

	id            render.TextureID
	width, height int

	// lastWidth and lastHeight survive Unload; -1 until the first unload.
	lastWidth, lastHeight int

	mipmapped bool
	success   bool
	repeat    bool
}

// New creates an empty texture bound to dev. No device resource is
// allocated until the first successful Upload.
func New(dev render.TextureDevice, opts ...Option) *Texture {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Texture{
		dev:        dev,
		opts:       o,
		lastWidth:  -1,
		lastHeight: -1,
	}
}

// ID returns the device handle, 0 when nothing is loaded.
func (t *Texture) ID() render.TextureID { return t.id }

// Width returns the width of the uploaded base level.
func (t *Texture) Width() int { return t.width }

// Height returns the height of the uploaded base level.
func (t *Texture) Height() int { return t.height }

// LastSize returns the size held when the texture was last unloaded, or
// (-1, -1) if it never was.
func (t *Texture) LastSize() (int, int) { return t.lastWidth, t.lastHeight }

// Mipmapped reports whether the last upload produced a mip chain.
func (t *Texture) Mipmapped() bool { return t.mipmapped }

// Loaded reports whether an upload has succeeded.
func (t *Texture) Loaded() bool { return t.success }

// Upload sends img to the device as level 0 and, if mipmap is set, builds
// the mip chain.
//
// Invalid input returns an error before any device call, leaving a held
// handle untouched. Mipmap generation failures are not errors: the texture
// falls back to linear filtering over the levels already uploaded.
func (t *Texture) Upload(img *ImageData, mipmap bool) error {
	if img == nil || img.Pixels == nil {
		return ErrNilPixels
	}
	f, ok := formatFor(img.Channels)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, img.Channels)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, img.Width, img.Height)
	}
	base, err := image.FromRaw(img.Pixels, img.Width, img.Height, f.buf)
	if err != nil {
		return fmt.Errorf("texture: upload: %w", err)
	}

	dev := t.dev
	if t.id == 0 {
		t.id = dev.GenTexture()
	}
	dev.BindTexture(t.id)
	dev.TexParameter(render.TexWrapS, render.WrapRepeat)
	dev.TexParameter(render.TexWrapT, render.WrapRepeat)
	t.repeat = true

	gen, _ := dev.(render.MipmapGenerator)
	hasGen := gen != nil && gen.CanGenerateMipmap()

	// Device generation is preferred over the legacy parameter, which must
	// be set before level 0 arrives.
	mipmapped := false
	if mipmap && !hasGen {
		if auto, ok := dev.(render.AutoMipmapper); ok {
			mipmapped = auto.RequestAutoMipmap()
		}
	}

	// The base level goes up first so it is usable whatever happens to the
	// mip chain.
	dev.TexImage2D(0, f.internal, img.Width, img.Height, f.transfer, f.typ, base.Data())

	if mipmap && !mipmapped {
		if hasGen && gen.GenerateMipmap() {
			mipmapped = true
		} else {
			mipmapped = t.softwareMipmaps(base, f)
		}
	}

	minFilter := render.FilterLinear
	if mipmapped {
		minFilter = render.FilterLinearMipmapLinear
	}
	dev.TexParameter(render.TexMinFilter, minFilter)
	dev.TexParameter(render.TexMagFilter, render.FilterLinear)

	t.width = img.Width
	t.height = img.Height
	t.mipmapped = mipmapped
	t.success = true

	slogger().Debug("texture: uploaded",
		"id", t.id, "w", img.Width, "h", img.Height,
		"channels", img.Channels, "mipmapped", mipmapped)
	return nil
}

// softwareMipmaps uploads levels 1 and up, each box filtered from the one
// before it. On failure MaxLevel is clamped to the last uploaded level and
// false is returned.
func (t *Texture) softwareMipmaps(base *image.ImageBuf, f pixelFormat) bool {
	slogger().Warn("texture: hardware mipmaps unavailable, using software fallback",
		"w", base.Width(), "h", base.Height())

	last, err := image.WalkMipmaps(base, t.opts.resampler, func(level int, lvl *image.ImageBuf) error {
		t.dev.TexImage2D(level, f.internal, lvl.Width(), lvl.Height(), f.transfer, f.typ, lvl.Data())
		return nil
	})
	t.dev.TexParameter(render.TexMaxLevel, last)
	if err != nil {
		slogger().Warn("texture: software mipmap failed", "level", last+1, "err", err)
		return false
	}
	return true
}

// Unload releases the device resource, remembering the current size.
// It does nothing if no handle is held.
func (t *Texture) Unload() {
	if t.id == 0 {
		return
	}
	t.lastWidth = t.width
	t.lastHeight = t.height
	t.dev.DeleteTexture(t.id)
	t.id = 0
	t.success = false
}

// Apply binds the texture for subsequent draws. An unloaded texture binds
// handle 0, which is "no texture".
func (t *Texture) Apply() {
	t.dev.BindTexture(t.id)
}

// ApplyRepeat binds the texture and selects repeating or edge-clamped
// addressing. The wrap mode is only sent when it changes.
func (t *Texture) ApplyRepeat(repeat bool) {
	t.dev.BindTexture(t.id)
	if t.id == 0 || repeat == t.repeat {
		return
	}
	mode := render.WrapClampToEdge
	if repeat {
		mode = render.WrapRepeat
	}
	t.dev.TexParameter(render.TexWrapS, mode)
	t.dev.TexParameter(render.TexWrapT, mode)
	t.repeat = repeat
}

// ReadPixels reads level 0 back as tightly packed RGBA8, row 0 first,
// whatever format it was uploaded in. The buffer belongs to the caller.
func (t *Texture) ReadPixels() (*Pixels, error) {
	if t.id == 0 {
		return nil, ErrNotLoaded
	}
	n := t.width * t.height * 4
	if limit := t.opts.readbackLimit; limit > 0 && n > limit {
		slogger().Warn("texture: readback allocation failure", "bytes", n, "limit", limit)
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocation, n)
	}
	data := make([]byte, n)

	t.dev.BindTexture(t.id)
	t.dev.GetTexImage(data)
	t.dev.BindTexture(0)

	return &Pixels{Data: data, Width: t.width, Height: t.height, Bytes: n}, nil
}

// WriteRegion overwrites the w×h rectangle at (x, y) of level 0 with RGBA8
// pixels, using the same row order as ReadPixels. The rectangle is not
// validated beyond what the device enforces.
func (t *Texture) WriteRegion(x, y, w, h int, pixels []byte) error {
	if t.id == 0 {
		return ErrNotLoaded
	}
	t.dev.BindTexture(t.id)
	t.dev.TexSubImage2D(x, y, w, h, pixels)
	t.dev.BindTexture(0)
	return nil
}
