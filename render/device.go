// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/go-gl/mathgl/mgl32"

// TextureID is an opaque device texture handle. Zero means "no texture";
// binding it unbinds any texture.
type TextureID uint32

// Format is a device pixel format. Textures are stored in an internal
// format and uploaded from a transfer format.
type Format uint8

const (
	// FormatLuminance stores one luminance channel.
	FormatLuminance Format = iota + 1

	// FormatLuminanceAlpha stores luminance followed by alpha.
	FormatLuminanceAlpha

	// FormatRGB stores red, green and blue.
	FormatRGB

	// FormatRGBA stores red, green, blue and alpha.
	FormatRGBA
)

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatLuminance:
		return "Luminance"
	case FormatLuminanceAlpha:
		return "LuminanceAlpha"
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	default:
		return "Unknown"
	}
}

// Channels returns the number of 8-bit channels of the format.
func (f Format) Channels() int {
	switch f {
	case FormatLuminance:
		return 1
	case FormatLuminanceAlpha:
		return 2
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	default:
		return 0
	}
}

// ComponentType is the storage type of a single channel in transfers.
type ComponentType uint8

const (
	// TypeUnsignedByte is one byte per channel.
	TypeUnsignedByte ComponentType = iota
)

// TexParam selects a texture parameter of the bound texture.
type TexParam uint8

const (
	TexWrapS     TexParam = iota // Horizontal addressing mode
	TexWrapT                     // Vertical addressing mode
	TexMinFilter                 // Minification filter
	TexMagFilter                 // Magnification filter
	TexMaxLevel                  // Highest mip level sampled
)

// Values for TexWrapS and TexWrapT.
const (
	WrapRepeat = iota
	WrapClampToEdge
)

// Values for TexMinFilter and TexMagFilter.
const (
	FilterNearest = iota
	FilterLinear
	FilterLinearMipmapLinear
)

// BlendMode selects how drawn fragments combine with the target.
type BlendMode uint8

const (
	// BlendDefault is straight alpha blending (source over).
	BlendDefault BlendMode = iota

	// BlendAdd adds the alpha-weighted source to the target.
	BlendAdd

	// BlendSub subtracts the alpha-weighted source from the target.
	BlendSub

	// BlendMult multiplies the target by the source.
	BlendMult

	// BlendNone overwrites the target.
	BlendNone
)

// String returns a string representation of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendDefault:
		return "Default"
	case BlendAdd:
		return "Add"
	case BlendSub:
		return "Sub"
	case BlendMult:
		return "Mult"
	case BlendNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Primitive is the topology of a draw call.
type Primitive uint8

const (
	PrimPoints Primitive = iota
	PrimLineStrip
	PrimTriangleFan
)

// TextureDevice is the texture half of the device: allocation, parameters,
// level uploads and readback. All calls act on the bound texture except
// GenTexture and DeleteTexture.
type TextureDevice interface {
	// GenTexture allocates a new texture handle. Never returns 0.
	GenTexture() TextureID

	// DeleteTexture releases a texture. Deleting the bound texture unbinds it.
	DeleteTexture(id TextureID)

	// BindTexture makes id the active 2D texture. 0 unbinds.
	BindTexture(id TextureID)

	// TexParameter sets a parameter of the bound texture.
	TexParameter(p TexParam, value int)

	// TexImage2D replaces mip level of the bound texture. pixels are tightly
	// packed rows in the transfer format, row 0 first.
	TexImage2D(level int, internal Format, width, height int, transfer Format, typ ComponentType, pixels []byte)

	// TexSubImage2D overwrites a rectangle of level 0 with RGBA8 pixels.
	TexSubImage2D(x, y, width, height int, pixels []byte)

	// GetTexImage reads level 0 of the bound texture into pixels as tightly
	// packed RGBA8, row 0 first.
	GetTexImage(pixels []byte)
}

// MipmapGenerator is implemented by devices able to build mip levels from
// level 0 of the bound texture themselves. The capability may be missing at
// runtime, so callers check CanGenerateMipmap before relying on it.
type MipmapGenerator interface {
	CanGenerateMipmap() bool

	// GenerateMipmap rebuilds all levels below level 0 and reports
	// whether it succeeded.
	GenerateMipmap() bool
}

// AutoMipmapper is implemented by devices offering the legacy "regenerate
// mipmaps whenever level 0 changes" texture parameter. It must be requested
// before level 0 is uploaded and reports whether the request was honoured.
type AutoMipmapper interface {
	RequestAutoMipmap() bool
}

// Device is the immediate-mode style GPU binding abstraction the tile
// renderer draws through.
//
// The transform stack starts from whatever the host loaded (camera and
// projection); the renderer only pushes, composes and pops on top of it.
type Device interface {
	TextureDevice

	// SetBlend selects the blend function for subsequent draws.
	SetBlend(mode BlendMode)

	// SetColor sets the constant colour multiplied into subsequent draws.
	SetColor(r, g, b, a float32)

	// PushMatrix duplicates the current transform.
	PushMatrix()

	// PopMatrix restores the transform saved by the matching PushMatrix.
	PopMatrix()

	// Translate post-multiplies the current transform by a translation.
	Translate(x, y, z float32)

	// Rotate post-multiplies the current transform by a rotation of angle
	// degrees about the axis (x, y, z).
	Rotate(angle, x, y, z float32)

	// Scale post-multiplies the current transform by a scale.
	Scale(x, y, z float32)

	// BindVertexBuffer makes vb the source of DrawArrays.
	BindVertexBuffer(vb *VertexBuffer)

	// UnbindVertexBuffer resets the vertex buffer binding to none.
	UnbindVertexBuffer()

	// DrawArrays draws count vertices of the bound vertex buffer.
	DrawArrays(mode Primitive, first, count int)

	// SetPointSize sets the diameter of points in pixels.
	SetPointSize(size float32)

	// SetLineWidth sets the width of lines in pixels.
	SetLineWidth(width float32)

	// DrawImmediate draws untextured geometry given in local coordinates.
	DrawImmediate(mode Primitive, points []mgl32.Vec2)
}
