// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// screenVertex is a vertex after the model-view transform.
type screenVertex struct {
	pos  mgl32.Vec2
	u, v float32
}

// rasterFan fills a textured triangle fan into the framebuffer.
func (d *SoftwareDevice) rasterFan(verts []Vertex) {
	if len(verts) < 3 {
		return
	}
	var tex *softTexture
	if d.bound != 0 {
		tex = d.textures[d.bound]
		if tex != nil {
			d.resolveMipmaps(tex)
		}
	}

	m := d.matrices.Top()
	sv := make([]screenVertex, len(verts))
	for i, v := range verts {
		sv[i] = screenVertex{
			pos: TransformPoint(m, mgl32.Vec2{v.X, v.Y}),
			u:   v.U,
			v:   v.V,
		}
	}
	for i := 1; i+1 < len(sv); i++ {
		d.rasterTriangle(sv[0], sv[i], sv[i+1], tex)
	}
}

// rasterFanUntextured fills an untextured fan given in local coordinates.
func (d *SoftwareDevice) rasterFanUntextured(verts []Vertex) {
	saved := d.bound
	d.bound = 0
	d.rasterFan(verts)
	d.bound = saved
}

// rasterTriangle scan-converts one triangle by testing pixel centres
// against its edge functions.
func (d *SoftwareDevice) rasterTriangle(a, b, c screenVertex, tex *softTexture) {
	area := edge(a.pos, b.pos, c.pos)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}

	w, h := d.target.Width(), d.target.Height()
	minX := clampInt(int(math.Floor(float64(min(a.pos.X(), b.pos.X(), c.pos.X())))), 0, w)
	maxX := clampInt(int(math.Ceil(float64(max(a.pos.X(), b.pos.X(), c.pos.X())))), 0, w)
	minY := clampInt(int(math.Floor(float64(min(a.pos.Y(), b.pos.Y(), c.pos.Y())))), 0, h)
	maxY := clampInt(int(math.Ceil(float64(max(a.pos.Y(), b.pos.Y(), c.pos.Y())))), 0, h)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			p := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
			e0 := edge(b.pos, c.pos, p)
			e1 := edge(c.pos, a.pos, p)
			e2 := edge(a.pos, b.pos, p)
			if !covers(e0, b.pos, c.pos) || !covers(e1, c.pos, a.pos) || !covers(e2, a.pos, b.pos) {
				continue
			}
			w0, w1, w2 := e0/area, e1/area, e2/area

			src := d.color
			if tex != nil {
				u := w0*a.u + w1*b.u + w2*c.u
				v := w0*a.v + w1*b.v + w2*c.v
				t := sampleTexture(tex, u, v)
				src = mgl32.Vec4{src[0] * t[0], src[1] * t[1], src[2] * t[2], src[3] * t[3]}
			}
			d.blendPixel(x, y, src)
		}
	}
}

// rasterPoint fills a square point centred on p.
func (d *SoftwareDevice) rasterPoint(p mgl32.Vec2) {
	half := max(d.pointSize, 1) / 2
	d.fillRect(p.X()-half, p.Y()-half, p.X()+half, p.Y()+half)
}

// rasterLine draws a line of the current width from a to b.
func (d *SoftwareDevice) rasterLine(a, b mgl32.Vec2) {
	half := max(d.lineWidth, 1) / 2
	seg := b.Sub(a)
	segLen2 := seg.Dot(seg)

	w, h := d.target.Width(), d.target.Height()
	minX := clampInt(int(math.Floor(float64(min(a.X(), b.X())-half))), 0, w)
	maxX := clampInt(int(math.Ceil(float64(max(a.X(), b.X())+half))), 0, w)
	minY := clampInt(int(math.Floor(float64(min(a.Y(), b.Y())-half))), 0, h)
	maxY := clampInt(int(math.Ceil(float64(max(a.Y(), b.Y())+half))), 0, h)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			p := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
			var t float32
			if segLen2 > 0 {
				t = mgl32.Clamp(p.Sub(a).Dot(seg)/segLen2, 0, 1)
			}
			if p.Sub(a.Add(seg.Mul(t))).Len() <= half {
				d.blendPixel(x, y, d.color)
			}
		}
	}
}

func (d *SoftwareDevice) fillRect(x0, y0, x1, y1 float32) {
	w, h := d.target.Width(), d.target.Height()
	minX := clampInt(int(math.Round(float64(x0))), 0, w)
	maxX := clampInt(int(math.Round(float64(x1))), 0, w)
	minY := clampInt(int(math.Round(float64(y0))), 0, h)
	maxY := clampInt(int(math.Round(float64(y1))), 0, h)
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			d.blendPixel(x, y, d.color)
		}
	}
}

// blendPixel combines src (non-premultiplied, 0-1) with the framebuffer
// pixel at (x, y) using the current blend mode.
func (d *SoftwareDevice) blendPixel(x, y int, src mgl32.Vec4) {
	pix := d.target.Pixels()
	off := y*d.target.Stride() + x*4
	dst := mgl32.Vec4{
		float32(pix[off]) / 255,
		float32(pix[off+1]) / 255,
		float32(pix[off+2]) / 255,
		float32(pix[off+3]) / 255,
	}

	sa := mgl32.Clamp(src[3], 0, 1)
	var out mgl32.Vec4
	switch d.blend {
	case BlendAdd:
		for i := range 3 {
			out[i] = dst[i] + src[i]*sa
		}
		out[3] = dst[3] + sa*(1-dst[3])
	case BlendSub:
		for i := range 3 {
			out[i] = dst[i] * (1 - src[i])
		}
		out[3] = dst[3]
	case BlendMult:
		for i := range 3 {
			out[i] = dst[i] * src[i]
		}
		out[3] = dst[3]
	case BlendNone:
		out = src
	default:
		outA := sa + dst[3]*(1-sa)
		if outA > 0 {
			for i := range 3 {
				out[i] = (src[i]*sa + dst[i]*dst[3]*(1-sa)) / outA
			}
		}
		out[3] = outA
	}

	for i := range 4 {
		pix[off+i] = uint8(mgl32.Clamp(out[i], 0, 1)*255 + 0.5)
	}
}

// sampleTexture samples level 0 at (u, v) honouring the wrap and
// magnification parameters.
func sampleTexture(t *softTexture, u, v float32) mgl32.Vec4 {
	if len(t.levels) == 0 || t.levels[0] == nil {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	lvl := t.levels[0]
	w, h := lvl.Bounds()

	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5
	if t.params[TexMagFilter] == FilterNearest {
		return texel(t, lvl.GetRGBA, int(math.Floor(float64(fx+0.5))), int(math.Floor(float64(fy+0.5))), w, h)
	}

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := texel(t, lvl.GetRGBA, x0, y0, w, h)
	c10 := texel(t, lvl.GetRGBA, x0+1, y0, w, h)
	c01 := texel(t, lvl.GetRGBA, x0, y0+1, w, h)
	c11 := texel(t, lvl.GetRGBA, x0+1, y0+1, w, h)

	top := c00.Mul(1 - tx).Add(c10.Mul(tx))
	bottom := c01.Mul(1 - tx).Add(c11.Mul(tx))
	return top.Mul(1 - ty).Add(bottom.Mul(ty))
}

func texel(t *softTexture, get func(x, y int) (r, g, b, a uint8), x, y, w, h int) mgl32.Vec4 {
	x = wrapCoord(x, w, t.params[TexWrapS])
	y = wrapCoord(y, h, t.params[TexWrapT])
	r, g, b, a := get(x, y)
	return mgl32.Vec4{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

func wrapCoord(c, size, mode int) int {
	if mode == WrapClampToEdge {
		return clampInt(c, 0, size-1)
	}
	c %= size
	if c < 0 {
		c += size
	}
	return c
}

// edge is the signed doubled area of (a, b, p).
func edge(a, b, p mgl32.Vec2) float32 {
	return (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
}

// covers applies the top-left fill rule: pixel centres exactly on an edge
// belong to the triangle only for top and left edges, so fans sharing a
// diagonal never blend a pixel twice.
func covers(e float32, from, to mgl32.Vec2) bool {
	if e != 0 {
		return e > 0
	}
	dy := to.Y() - from.Y()
	return dy < 0 || (dy == 0 && to.X() > from.X())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
