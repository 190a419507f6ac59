package image

import (
	"bytes"
	"errors"
	"fmt"
	stdimage "image"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Decode decodes an image from r, auto-detecting PNG, JPEG, BMP, TIFF or
// WebP. Grayscale sources decode to Gray8; everything else to RGBA8.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := stdimage.Decode(r)
	if err != nil {
		if errors.Is(err, stdimage.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return fromDecoded(img), nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// LoadImage loads an image from the given file path.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadFS loads the named image from fsys.
func LoadFS(fsys fs.FS, name string) (*ImageBuf, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("image: open %q: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// fromDecoded keeps single-channel images single-channel so they upload as
// luminance textures.
func fromDecoded(img stdimage.Image) *ImageBuf {
	if gray, ok := img.(*stdimage.Gray); ok {
		b := gray.Bounds()
		buf, err := NewImageBuf(b.Dx(), b.Dy(), FormatGray8)
		if err != nil {
			return &ImageBuf{format: FormatGray8}
		}
		for y := range b.Dy() {
			start := gray.PixOffset(b.Min.X, b.Min.Y+y)
			copy(buf.RowBytes(y), gray.Pix[start:start+b.Dx()])
		}
		return buf
	}
	return FromStdImage(img)
}

// EncodePNG encodes the image as PNG to the given writer.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the image as a PNG file.
func (b *ImageBuf) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
