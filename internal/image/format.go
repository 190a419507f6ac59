// Package image provides CPU-side pixel buffers for texture ingestion and
// software mipmap generation.
//
// Buffers are tightly packed, row-major, 8 bits per channel. Row 0 is the
// first row of the source image as decoded (its top row).
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit luminance (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatGrayAlpha8 is 8-bit luminance followed by 8-bit alpha
	// (2 bytes per pixel).
	FormatGrayAlpha8

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel).
	FormatRGBA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// NoAlpha is the AlphaIndex of formats without an alpha channel.
const NoAlpha = -1

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of channels, alpha included.
	Channels int

	// AlphaIndex is the byte index of the alpha channel inside a pixel,
	// or NoAlpha. Resampling weights colour channels by this channel.
	AlphaIndex int

	// IsGrayscale indicates if colour is stored as a single luminance value.
	IsGrayscale bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {
		BytesPerPixel: 1,
		Channels:      1,
		AlphaIndex:    NoAlpha,
		IsGrayscale:   true,
	},
	FormatGrayAlpha8: {
		BytesPerPixel: 2,
		Channels:      2,
		AlphaIndex:    1,
		IsGrayscale:   true,
	},
	FormatRGB8: {
		BytesPerPixel: 3,
		Channels:      3,
		AlphaIndex:    NoAlpha,
	},
	FormatRGBA8: {
		BytesPerPixel: 4,
		Channels:      4,
		AlphaIndex:    3,
	},
}

// FormatForChannels returns the format storing the given number of 8-bit
// channels: 1 luminance, 2 luminance+alpha, 3 RGB, 4 RGBA.
// The second result is false for any other channel count.
func FormatForChannels(channels int) (Format, bool) {
	if channels < 1 || channels > int(formatCount) {
		return 0, false
	}
	return Format(channels - 1), true
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{AlphaIndex: NoAlpha}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Channels returns the number of channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// AlphaIndex returns the byte index of alpha inside a pixel, or NoAlpha.
func (f Format) AlphaIndex() int {
	return f.Info().AlphaIndex
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.AlphaIndex() != NoAlpha
}

// IsGrayscale returns true if this is a luminance format.
func (f Format) IsGrayscale() bool {
	return f.Info().IsGrayscale
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatGrayAlpha8:
		return "GrayAlpha8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
