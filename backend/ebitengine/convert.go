package ebitengine

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/tiles/render"
)

var (
	blendSubtract = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorZero,
		BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
	blendMultiply = ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorZero,
		BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
		BlendFactorDestinationRGB:   ebiten.BlendFactorSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
)

// ebitenBlend maps a blend mode. Sources are premultiplied, so additive
// blending is plain lighter.
func ebitenBlend(mode render.BlendMode) ebiten.Blend {
	switch mode {
	case render.BlendAdd:
		return ebiten.BlendLighter
	case render.BlendSub:
		return blendSubtract
	case render.BlendMult:
		return blendMultiply
	case render.BlendNone:
		return ebiten.BlendCopy
	}
	return ebiten.BlendSourceOver
}

// ebitenFilter maps a magnification filter parameter.
func ebitenFilter(v int) ebiten.Filter {
	if v == render.FilterNearest {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}

// ebitenAddress maps a wrap parameter. Edge clamping has no exact match;
// texture coordinates of clamped quads stay inside the image anyway.
func ebitenAddress(v int) ebiten.Address {
	if v == render.WrapClampToEdge {
		return ebiten.AddressUnsafe
	}
	return ebiten.AddressRepeat
}

// fanIndices returns triangle indices covering a fan of n vertices.
func fanIndices(dst []uint16, n int) []uint16 {
	dst = dst[:0]
	for i := 1; i+1 < n; i++ {
		dst = append(dst, 0, uint16(i), uint16(i+1))
	}
	return dst
}

// premultiply returns RGBA8 pixels with colour scaled by alpha, the layout
// ebiten.Image.WritePixels expects.
func premultiply(dst, src []byte) []byte {
	dst = append(dst[:0], src...)
	for i := 0; i+3 < len(dst); i += 4 {
		a := uint16(dst[i+3])
		if a == 255 {
			continue
		}
		dst[i] = uint8((uint16(dst[i])*a + 127) / 255)
		dst[i+1] = uint8((uint16(dst[i+1])*a + 127) / 255)
		dst[i+2] = uint8((uint16(dst[i+2])*a + 127) / 255)
	}
	return dst
}
