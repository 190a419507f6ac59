// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import "math"

// TexCoordBox is a texture coordinate rectangle. (U1, V1) maps to the top
// left corner of a quad, (U2, V2) to the bottom right.
type TexCoordBox struct {
	U1, V1, U2, V2 float32
}

// StandardTexCoords maps the whole texture once.
var StandardTexCoords = TexCoordBox{U1: 0, V1: 0, U2: 1, V2: 1}

// IsStandard reports whether the box maps the whole texture once.
func (b TexCoordBox) IsStandard() bool {
	return b == StandardTexCoords
}

// SetStandard resets the box to the whole texture.
func (b *TexCoordBox) SetStandard() {
	*b = StandardTexCoords
}

// FixFlip shifts both V values towards the next integer by the part of a
// repeat that is left over.
//
// Partially repeated tile textures are anchored at the far end of the V
// axis: a repeat factor of 0.4 samples 0.6 to 1, not 0 to 0.4. Maps are
// authored against this, so the bias must be applied to every repeat box.
func (b *TexCoordBox) FixFlip() {
	span := b.V2 - b.V1
	rem := 1 - float32(math.Mod(float64(span), 1))
	b.V1 += rem
	b.V2 += rem
}
