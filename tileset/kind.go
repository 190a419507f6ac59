// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tileset

import (
	"github.com/gogpu/tiles/render"
	"github.com/gogpu/tiles/texture"
)

// Kind describes one category of placeable tile: its texture, logical size,
// base texture coordinates and quad. Many tiles share one Kind.
//
// A Kind is filled in by the loader, finalized once and treated as read-only
// afterwards, except that its texture may be assigned later.
type Kind struct {
	// Idx identifies the kind within its Tileset, -1 if unassigned.
	Idx int

	// Gfx names the texture image.
	Gfx string

	// W and H override the texture size when non-zero.
	W, H float32

	// TexCoords is the part of the texture the quad maps.
	TexCoords texture.TexCoordBox

	tex    *texture.Handle
	vb     *render.VertexBuffer
	ownsVB bool
}

// NewKind creates a kind mapping the whole of the gfx texture.
func NewKind(idx int, gfx string) *Kind {
	return &Kind{
		Idx:       idx,
		Gfx:       gfx,
		TexCoords: texture.StandardTexCoords,
	}
}

// SetTexture assigns the shared texture. The kind takes over the caller's
// reference; a previously held one is released.
func (k *Kind) SetTexture(h *texture.Handle) {
	if k.tex == h {
		return
	}
	k.tex.Release()
	k.tex = h
}

// Handle returns the shared texture handle, or nil.
func (k *Kind) Handle() *texture.Handle {
	return k.tex
}

// Texture returns the texture, or nil if it failed to load or is not loaded
// yet.
func (k *Kind) Texture() *texture.Texture {
	return k.tex.Texture()
}

// Finalize fixes the kind's size and geometry. A zero W or H takes the
// texture's size. Standard texture coordinates share the default quad;
// anything else gets a quad of its own.
func (k *Kind) Finalize() {
	if tex := k.Texture(); tex != nil {
		if k.W == 0 {
			k.W = float32(tex.Width())
		}
		if k.H == 0 {
			k.H = float32(tex.Height())
		}
	}

	tc := k.TexCoords
	switch {
	case tc.IsStandard():
		k.vb = render.DefaultQuad()
		k.ownsVB = false
	case k.ownsVB:
		k.vb.SetQuad(tc.U1, tc.V1, tc.U2, tc.V2)
	default:
		k.vb = render.NewQuad(tc.U1, tc.V1, tc.U2, tc.V2)
		k.ownsVB = true
	}
}

// VertexBuffer returns the kind's quad. It is never nil: an unfinalized
// kind reports the default quad.
func (k *Kind) VertexBuffer() *render.VertexBuffer {
	if k.vb == nil {
		return render.DefaultQuad()
	}
	return k.vb
}

// OwnsVertexBuffer reports whether the quad belongs to this kind alone.
func (k *Kind) OwnsVertexBuffer() bool {
	return k.ownsVB
}

// release drops the texture reference.
func (k *Kind) release() {
	k.tex.Release()
	k.tex = nil
}
