package image

import (
	"errors"
	"fmt"
	stdimage "image"

	"golang.org/x/image/draw"
)

// ErrResample is returned when a buffer cannot be resampled.
var ErrResample = errors.New("image: resample failed")

// Resampler scales a pixel buffer to new dimensions, keeping its format.
type Resampler interface {
	Resample(src *ImageBuf, width, height int) (*ImageBuf, error)
}

// ResamplerFunc adapts a function to the Resampler interface.
type ResamplerFunc func(src *ImageBuf, width, height int) (*ImageBuf, error)

// Resample implements Resampler.
func (f ResamplerFunc) Resample(src *ImageBuf, width, height int) (*ImageBuf, error) {
	return f(src, width, height)
}

// boxKernel averages every source texel covered by a destination texel with
// equal weight. Support is widened by the scale factor when downscaling, so
// a 2:1 reduction averages exactly 2×2 texels.
var boxKernel = &draw.Kernel{
	Support: 0.5,
	At:      func(float64) float64 { return 1 },
}

// BoxResampler is a fast, low quality box-filter Resampler. Edges are
// clamped. Colour channels are weighted by the format's alpha channel, so
// fully transparent texels do not bleed their colour into the result.
//
// Destination buffers come from the default Pool; release them with
// PutToDefault once no longer needed.
type BoxResampler struct{}

// Resample implements Resampler.
func (BoxResampler) Resample(src *ImageBuf, width, height int) (*ImageBuf, error) {
	if src == nil || src.IsEmpty() {
		return nil, fmt.Errorf("%w: empty source", ErrResample)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrResample, ErrInvalidDimensions)
	}
	if !src.format.IsValid() {
		return nil, fmt.Errorf("%w: %w", ErrResample, ErrInvalidFormat)
	}

	dst := GetFromDefault(width, height, src.format)
	if dst == nil {
		return nil, fmt.Errorf("%w: no buffer for %dx%d", ErrResample, width, height)
	}

	srcImg := toDrawable(src)
	dstImg := newDrawable(width, height, src.format)
	boxKernel.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
	fromDrawable(dstImg, dst)

	return dst, nil
}

// toDrawable exposes a buffer as a standard image. Gray8 shares the
// buffer's memory; the other formats are premultiplied into RGBA64 with
// rounding, so a uniform colour survives the kernel unchanged.
func toDrawable(b *ImageBuf) stdimage.Image {
	rect := stdimage.Rect(0, 0, b.width, b.height)
	if b.format == FormatGray8 {
		return &stdimage.Gray{Pix: b.data, Stride: b.Stride(), Rect: rect}
	}

	img := stdimage.NewRGBA64(rect)
	px := b.ToRGBA8()
	for i := 0; i+3 < len(px); i += 4 {
		a := uint32(px[i+3]) * 0x101
		out := img.Pix[i*2 : i*2+8]
		for c := range 3 {
			put16(out[c*2:], premul(uint32(px[i+c])*0x101, a))
		}
		put16(out[6:], a)
	}
	return img
}

// newDrawable allocates the standard image matching toDrawable's choice.
func newDrawable(width, height int, format Format) draw.Image {
	rect := stdimage.Rect(0, 0, width, height)
	if format == FormatGray8 {
		return stdimage.NewGray(rect)
	}
	return stdimage.NewRGBA64(rect)
}

// fromDrawable copies a standard image produced by newDrawable into dst,
// un-premultiplying and rounding to 8 bits per channel.
func fromDrawable(img draw.Image, dst *ImageBuf) {
	switch m := img.(type) {
	case *stdimage.Gray:
		copy(dst.data, m.Pix)
	case *stdimage.RGBA64:
		px := make([]byte, len(m.Pix)/2)
		for i := 0; i+3 < len(px); i += 4 {
			in := m.Pix[i*2 : i*2+8]
			a := get16(in[6:])
			if a == 0 {
				continue
			}
			for c := range 3 {
				px[i+c] = unpremul(get16(in[c*2:]), a)
			}
			px[i+3] = uint8((a*0xff + 0x7fff) / 0xffff)
		}
		dst.WriteRGBA8(0, 0, dst.width, dst.height, px)
	}
}

// premul scales the 16-bit colour c by alpha a, rounding to nearest.
func premul(c, a uint32) uint32 {
	return (c*a + 0x7fff) / 0xffff
}

// unpremul returns the 8-bit straight colour of the premultiplied 16-bit
// value c at alpha a, rounding to nearest.
func unpremul(c, a uint32) uint8 {
	v := (c*0xff + a/2) / a
	return uint8(min(v, 0xff))
}

func put16(b []byte, v uint32) {
	b[0], b[1] = uint8(v>>8), uint8(v)
}

func get16(b []byte) uint32 {
	return uint32(b[0])<<8 | uint32(b[1])
}

// FromStdImage creates an RGBA8 ImageBuf from a standard library image.
func FromStdImage(img stdimage.Image) *ImageBuf {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf, err := NewImageBuf(width, height, FormatRGBA8)
	if err != nil {
		return &ImageBuf{format: FormatRGBA8}
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*stdimage.NRGBA); ok {
		for y := range height {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), nrgba.Pix[srcStart:srcStart+width*4])
		}
		return buf
	}

	dst := &stdimage.NRGBA{Pix: buf.data, Stride: buf.Stride(), Rect: stdimage.Rect(0, 0, width, height)}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return buf
}

// ToStdImage converts the ImageBuf to a standard library image.
// Returns *image.Gray for Gray8 and *image.NRGBA otherwise.
func (b *ImageBuf) ToStdImage() stdimage.Image {
	rect := stdimage.Rect(0, 0, b.width, b.height)
	if b.format == FormatGray8 {
		gray := stdimage.NewGray(rect)
		copy(gray.Pix, b.data)
		return gray
	}
	nrgba := stdimage.NewNRGBA(rect)
	b.ReadRGBA8(0, 0, b.width, b.height, nrgba.Pix)
	return nrgba
}
