//go:build !nogl

package opengl

import (
	"github.com/go-gl/gl/v3.2-compatibility/gl"

	"github.com/gogpu/tiles/render"
)

// glFormat maps a pixel format to its GL enum, 0 if unknown.
func glFormat(f render.Format) uint32 {
	switch f {
	case render.FormatLuminance:
		return gl.LUMINANCE
	case render.FormatLuminanceAlpha:
		return gl.LUMINANCE_ALPHA
	case render.FormatRGB:
		return gl.RGB
	case render.FormatRGBA:
		return gl.RGBA
	}
	return 0
}

func glType(render.ComponentType) uint32 {
	return gl.UNSIGNED_BYTE
}

// glParam maps a texture parameter to its GL enum.
func glParam(p render.TexParam) uint32 {
	switch p {
	case render.TexWrapS:
		return gl.TEXTURE_WRAP_S
	case render.TexWrapT:
		return gl.TEXTURE_WRAP_T
	case render.TexMinFilter:
		return gl.TEXTURE_MIN_FILTER
	case render.TexMagFilter:
		return gl.TEXTURE_MAG_FILTER
	case render.TexMaxLevel:
		return gl.TEXTURE_MAX_LEVEL
	}
	return 0
}

// glParamValue maps a parameter value to GL. Wrap and filter values are
// translated; anything else, such as a max level, passes through.
func glParamValue(p render.TexParam, v int) int32 {
	switch p {
	case render.TexWrapS, render.TexWrapT:
		if v == render.WrapClampToEdge {
			return gl.CLAMP_TO_EDGE
		}
		return gl.REPEAT
	case render.TexMinFilter, render.TexMagFilter:
		switch v {
		case render.FilterNearest:
			return gl.NEAREST
		case render.FilterLinearMipmapLinear:
			return gl.LINEAR_MIPMAP_LINEAR
		}
		return gl.LINEAR
	}
	return int32(v)
}

func glPrimitive(p render.Primitive) uint32 {
	switch p {
	case render.PrimPoints:
		return gl.POINTS
	case render.PrimLineStrip:
		return gl.LINE_STRIP
	}
	return gl.TRIANGLE_FAN
}

// blendFactors returns the source and destination factors of mode.
func blendFactors(mode render.BlendMode) (src, dst uint32) {
	switch mode {
	case render.BlendAdd:
		return gl.SRC_ALPHA, gl.ONE
	case render.BlendSub:
		return gl.ZERO, gl.ONE_MINUS_SRC_COLOR
	case render.BlendMult:
		return gl.ZERO, gl.SRC_COLOR
	case render.BlendNone:
		return gl.ONE, gl.ZERO
	}
	return gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA
}
