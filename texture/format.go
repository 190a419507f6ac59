// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"github.com/gogpu/tiles/internal/image"
	"github.com/gogpu/tiles/render"
)

// pixelFormat describes how an image with a given channel count is stored
// on the device and resampled on the CPU.
type pixelFormat struct {
	internal render.Format
	transfer render.Format
	typ      render.ComponentType

	// alphaIndex is the alpha channel inside a pixel, or image.NoAlpha.
	alphaIndex int

	// buf is the CPU buffer format used for software mip levels.
	buf image.Format
}

// formatTable is indexed by channel count.
var formatTable = [5]pixelFormat{
	1: {render.FormatLuminance, render.FormatLuminance, render.TypeUnsignedByte, image.NoAlpha, image.FormatGray8},
	2: {render.FormatLuminanceAlpha, render.FormatLuminanceAlpha, render.TypeUnsignedByte, 1, image.FormatGrayAlpha8},
	3: {render.FormatRGB, render.FormatRGB, render.TypeUnsignedByte, image.NoAlpha, image.FormatRGB8},
	4: {render.FormatRGBA, render.FormatRGBA, render.TypeUnsignedByte, 3, image.FormatRGBA8},
}

// formatFor returns the format for 1 to 4 channels.
func formatFor(channels int) (pixelFormat, bool) {
	if channels < 1 || channels >= len(formatTable) {
		return pixelFormat{}, false
	}
	return formatTable[channels], true
}
