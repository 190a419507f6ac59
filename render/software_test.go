// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func uploadSolid(d *SoftwareDevice, w, h int, rgba [4]byte) TextureID {
	id := d.GenTexture()
	d.BindTexture(id)
	pix := bytes.Repeat(rgba[:], w*h)
	d.TexImage2D(0, FormatRGBA, w, h, FormatRGBA, TypeUnsignedByte, pix)
	return id
}

func TestSoftwareDeviceUploadReadback(t *testing.T) {
	d := NewSoftwareDevice()
	id := d.GenTexture()
	if id == 0 {
		t.Fatal("GenTexture() returned 0")
	}
	d.BindTexture(id)

	// Luminance+alpha, 2x1, expands to RGBA8 on readback.
	d.TexImage2D(0, FormatLuminanceAlpha, 2, 1, FormatLuminanceAlpha, TypeUnsignedByte, []byte{10, 20, 30, 40})

	got := make([]byte, 8)
	d.GetTexImage(got)
	want := []byte{10, 10, 10, 20, 30, 30, 30, 40}
	if !bytes.Equal(got, want) {
		t.Errorf("GetTexImage() = %v, want %v", got, want)
	}

	info, ok := d.Texture(id)
	if !ok {
		t.Fatal("Texture() not found")
	}
	if info.Width != 2 || info.Height != 1 || info.Format != FormatLuminanceAlpha {
		t.Errorf("Texture() = %+v, want 2x1 LuminanceAlpha", info)
	}
	if err := d.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestSoftwareDeviceSubImage(t *testing.T) {
	d := NewSoftwareDevice()
	uploadSolid(d, 3, 3, [4]byte{0, 0, 0, 255})

	d.TexSubImage2D(1, 1, 2, 1, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	got := make([]byte, 3*3*4)
	d.GetTexImage(got)
	row1 := got[3*4 : 6*4]
	want := []byte{0, 0, 0, 255, 1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(row1, want) {
		t.Errorf("row 1 = %v, want %v", row1, want)
	}
}

func TestSoftwareDeviceGenerateMipmap(t *testing.T) {
	tests := []struct {
		name       string
		hardware   bool
		wantOK     bool
		wantLevels int
	}{
		{"hardware available", true, true, 4},
		{"hardware missing", false, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSoftwareDevice(WithHardwareMipmaps(tt.hardware))
			id := uploadSolid(d, 8, 4, [4]byte{9, 8, 7, 255})

			if got := d.GenerateMipmap(); got != tt.wantOK {
				t.Fatalf("GenerateMipmap() = %v, want %v", got, tt.wantOK)
			}
			info, _ := d.Texture(id)
			if info.Levels != tt.wantLevels {
				t.Errorf("Levels = %d, want %d", info.Levels, tt.wantLevels)
			}
		})
	}
}

func TestSoftwareDeviceAutoMipmap(t *testing.T) {
	d := NewSoftwareDevice(WithLegacyAutoMipmap(true))
	id := d.GenTexture()
	d.BindTexture(id)
	if !d.RequestAutoMipmap() {
		t.Fatal("RequestAutoMipmap() = false, want true")
	}
	d.TexImage2D(0, FormatRGB, 4, 4, FormatRGB, TypeUnsignedByte, bytes.Repeat([]byte{50, 60, 70}, 16))

	info, _ := d.Texture(id)
	if !info.AutoMipmap || info.Levels != 3 {
		t.Errorf("Texture() = %+v, want auto mipmap with 3 levels", info)
	}

	pix, w, h, ok := d.Level(id, 2)
	if !ok || w != 1 || h != 1 {
		t.Fatalf("Level(2) = %dx%d ok=%v, want 1x1", w, h, ok)
	}
	if !bytes.Equal(pix, []byte{50, 60, 70, 255}) {
		t.Errorf("Level(2) texel = %v, want [50 60 70 255]", pix)
	}

	if NewSoftwareDevice().RequestAutoMipmap() {
		t.Error("RequestAutoMipmap() should be refused by default")
	}
}

func TestSoftwareDeviceUnknownTexture(t *testing.T) {
	d := NewSoftwareDevice()
	d.BindTexture(42)
	if err := d.Err(); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("Err() = %v, want %v", err, ErrUnknownTexture)
	}

	d.TexParameter(TexWrapS, WrapRepeat)
	if err := d.Err(); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("Err() after unbound TexParameter = %v, want %v", err, ErrUnknownTexture)
	}
	if err := d.Err(); err != nil {
		t.Errorf("Err() should clear, got %v", err)
	}
}

func TestSoftwareDeviceDeleteUnbinds(t *testing.T) {
	d := NewSoftwareDevice()
	id := uploadSolid(d, 1, 1, [4]byte{1, 1, 1, 1})
	d.DeleteTexture(id)

	if d.BoundTexture() != 0 {
		t.Errorf("BoundTexture() = %d, want 0", d.BoundTexture())
	}
	if d.TextureCount() != 0 {
		t.Errorf("TextureCount() = %d, want 0", d.TextureCount())
	}
	if _, ok := d.Texture(id); ok {
		t.Error("deleted texture should be gone")
	}
}

func TestSoftwareDeviceRecordsDraws(t *testing.T) {
	d := NewSoftwareDevice()
	d.SetBlend(BlendAdd)
	d.SetColor(1, 0.5, 0.25, 1)
	d.PushMatrix()
	d.Translate(3, 4, 0)
	d.BindVertexBuffer(DefaultQuad())
	d.DrawArrays(PrimTriangleFan, 0, 4)
	d.PopMatrix()
	d.DrawImmediate(PrimPoints, []mgl32.Vec2{{0, 0}})

	stats := d.Stats()
	if stats.DrawCalls != 1 || stats.ImmediateDraws != 1 || stats.BufferBinds != 1 {
		t.Errorf("Stats() = %+v", stats)
	}

	draws := d.Draws()
	if len(draws) != 2 {
		t.Fatalf("len(Draws()) = %d, want 2", len(draws))
	}
	if draws[0].Blend != BlendAdd || draws[0].Buffer != DefaultQuad() || draws[0].Count != 4 {
		t.Errorf("draw 0 = %+v", draws[0])
	}
	if pos := TransformPoint(draws[0].Transform, mgl32.Vec2{}); !vecNear(pos, mgl32.Vec2{3, 4}) {
		t.Errorf("draw 0 origin = %v, want (3, 4)", pos)
	}
	if draws[1].Transform != mgl32.Ident4() {
		t.Error("draw 1 should see the popped transform")
	}

	d.ResetStats()
	if d.Stats() != (Stats{}) || len(d.Draws()) != 0 {
		t.Error("ResetStats() should clear counters and draws")
	}
	if d.Blend() != BlendAdd {
		t.Error("ResetStats() must keep binding state")
	}
}

func TestSoftwareDeviceRasterTexturedQuad(t *testing.T) {
	d := NewSoftwareDevice(WithFramebuffer(4, 4))
	uploadSolid(d, 2, 2, [4]byte{200, 10, 20, 255})

	d.Translate(2, 2, 0)
	d.Scale(4, 4, 1)
	d.BindVertexBuffer(DefaultQuad())
	d.DrawArrays(PrimTriangleFan, 0, 4)

	target := d.Target()
	for y := range 4 {
		for x := range 4 {
			if got := target.GetPixel(x, y); got != (color.NRGBA{200, 10, 20, 255}) {
				t.Fatalf("pixel (%d,%d) = %v, want {200 10 20 255}", x, y, got)
			}
		}
	}
}

func TestSoftwareDeviceRasterBlend(t *testing.T) {
	tests := []struct {
		name  string
		mode  BlendMode
		color mgl32.Vec4
		want  color.NRGBA
	}{
		{"default half alpha", BlendDefault, mgl32.Vec4{1, 1, 1, 0.5}, color.NRGBA{128, 128, 128, 255}},
		{"add", BlendAdd, mgl32.Vec4{0, 0, 1, 1}, color.NRGBA{0, 0, 255, 255}},
		{"mult", BlendMult, mgl32.Vec4{0.5, 0.5, 0.5, 1}, color.NRGBA{0, 0, 0, 255}},
		{"none", BlendNone, mgl32.Vec4{1, 0, 0, 0.25}, color.NRGBA{255, 0, 0, 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSoftwareDevice(WithFramebuffer(2, 2))
			d.Target().Clear(color.NRGBA{0, 0, 0, 255})
			d.SetBlend(tt.mode)
			d.SetColor(tt.color[0], tt.color[1], tt.color[2], tt.color[3])
			d.DrawImmediate(PrimTriangleFan, []mgl32.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}})

			if got := d.Target().GetPixel(1, 1); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSoftwareDeviceRasterPointsAndLines(t *testing.T) {
	d := NewSoftwareDevice(WithFramebuffer(8, 8))
	d.SetColor(0, 1, 0, 1)
	d.SetPointSize(2)
	d.DrawImmediate(PrimPoints, []mgl32.Vec2{{1, 1}})

	if got := d.Target().GetPixel(0, 0); got.G != 255 {
		t.Errorf("point pixel (0,0) = %v, want green", got)
	}
	if got := d.Target().GetPixel(3, 3); got.A != 0 {
		t.Errorf("pixel (3,3) = %v, want untouched", got)
	}

	d.SetLineWidth(1)
	d.DrawImmediate(PrimLineStrip, []mgl32.Vec2{{0, 6.5}, {8, 6.5}})
	for x := range 8 {
		if got := d.Target().GetPixel(x, 6); got.G != 255 {
			t.Fatalf("line pixel (%d,6) = %v, want green", x, got)
		}
	}
}
