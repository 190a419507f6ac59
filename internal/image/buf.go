package image

import (
	"errors"
	"fmt"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is a tightly packed pixel buffer (no row padding).
//
// ImageBuf is not safe for concurrent mutation; textures are only touched
// from the goroutine owning the GPU context.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	format Format
}

// NewImageBuf creates a new zeroed image buffer with the given dimensions
// and format.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	return &ImageBuf{
		data:   make([]byte, format.ImageBytes(width, height)),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromRaw wraps existing tightly packed data without copying.
// The caller must keep data valid and unmodified for the lifetime of the
// ImageBuf.
func FromRaw(data []byte, width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	required := format.ImageBytes(width, height)
	if len(data) < required {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrDataTooSmall, len(data), required)
	}

	return &ImageBuf{
		data:   data[:required],
		width:  width,
		height: height,
		format: format,
	}, nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &ImageBuf{
		data:   newData,
		width:  b.width,
		height: b.height,
		format: b.format,
	}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row.
func (b *ImageBuf) Stride() int {
	return b.format.RowBytes(b.width)
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	start := y * stride
	return b.data[start : start+stride]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.Stride() + x*b.format.BytesPerPixel()
}

// PixelBytes returns a slice of the raw bytes for pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (b *ImageBuf) PixelBytes(x, y int) []byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	return b.data[offset : offset+b.format.BytesPerPixel()]
}

// GetRGBA returns the color at (x, y) as (r, g, b, a) in 0-255 range.
// Luminance expands to r=g=b; formats without alpha report a=255.
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	pixel := b.PixelBytes(x, y)
	if pixel == nil {
		return 0, 0, 0, 0
	}

	switch b.format {
	case FormatGray8:
		v := pixel[0]
		return v, v, v, 255
	case FormatGrayAlpha8:
		v := pixel[0]
		return v, v, v, pixel[1]
	case FormatRGB8:
		return pixel[0], pixel[1], pixel[2], 255
	case FormatRGBA8:
		return pixel[0], pixel[1], pixel[2], pixel[3]
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y) from (r, g, b, a) in 0-255 range.
// Luminance formats use standard luminance weights; alpha is dropped by
// formats that do not store it.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return ErrOutOfBounds
	}
	b.setAt(offset, r, g, bl, a)
	return nil
}

func (b *ImageBuf) setAt(offset int, r, g, bl, a uint8) {
	switch b.format {
	case FormatGray8:
		b.data[offset] = luminance(r, g, bl)
	case FormatGrayAlpha8:
		b.data[offset] = luminance(r, g, bl)
		b.data[offset+1] = a
	case FormatRGB8:
		b.data[offset] = r
		b.data[offset+1] = g
		b.data[offset+2] = bl
	case FormatRGBA8:
		b.data[offset] = r
		b.data[offset+1] = g
		b.data[offset+2] = bl
		b.data[offset+3] = a
	}
}

// luminance uses the standard 0.299/0.587/0.114 weights.
func luminance(r, g, b uint8) uint8 {
	if r == g && g == b {
		return r
	}
	return uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}

// Clear sets all pixels to zero.
func (b *ImageBuf) Clear() {
	clear(b.data)
}

// Fill sets all pixels to the given RGBA color.
func (b *ImageBuf) Fill(r, g, bl, a uint8) {
	bpp := b.format.BytesPerPixel()
	for off := 0; off < len(b.data); off += bpp {
		b.setAt(off, r, g, bl, a)
	}
}

// ByteSize returns the total size of the image data in bytes.
func (b *ImageBuf) ByteSize() int {
	return len(b.data)
}

// IsEmpty returns true if the image has zero dimensions.
func (b *ImageBuf) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

// ToRGBA8 returns the pixels expanded to tightly packed RGBA8.
// An RGBA8 buffer is copied, never aliased.
func (b *ImageBuf) ToRGBA8() []byte {
	out := make([]byte, b.width*b.height*4)
	b.ReadRGBA8(0, 0, b.width, b.height, out)
	return out
}

// ReadRGBA8 copies the w×h region at (x, y) into dst as RGBA8.
// Pixels outside the buffer are left untouched in dst.
func (b *ImageBuf) ReadRGBA8(x, y, w, h int, dst []byte) {
	for j := range h {
		for i := range w {
			off := (j*w + i) * 4
			if off+4 > len(dst) {
				return
			}
			if b.PixelOffset(x+i, y+j) < 0 {
				continue
			}
			dst[off], dst[off+1], dst[off+2], dst[off+3] = b.GetRGBA(x+i, y+j)
		}
	}
}

// WriteRGBA8 stores the w×h RGBA8 pixels at (x, y), converting to the
// buffer's format. Pixels falling outside the buffer are skipped.
func (b *ImageBuf) WriteRGBA8(x, y, w, h int, src []byte) {
	for j := range h {
		for i := range w {
			off := (j*w + i) * 4
			if off+4 > len(src) {
				return
			}
			dst := b.PixelOffset(x+i, y+j)
			if dst < 0 {
				continue
			}
			b.setAt(dst, src[off], src[off+1], src[off+2], src[off+3])
		}
	}
}
