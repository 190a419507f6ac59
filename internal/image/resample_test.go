package image

import (
	"errors"
	"testing"
)

func TestBoxResamplerSolid(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"Gray8", FormatGray8},
		{"GrayAlpha8", FormatGrayAlpha8},
		{"RGB8", FormatRGB8},
		{"RGBA8", FormatRGBA8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _ := NewImageBuf(8, 4, tt.format)
			src.Fill(90, 90, 90, 255)

			dst, err := BoxResampler{}.Resample(src, 4, 2)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}
			if dst.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", dst.Format(), tt.format)
			}
			for y := range 2 {
				for x := range 4 {
					r, g, b, a := dst.GetRGBA(x, y)
					if r != 90 || g != 90 || b != 90 || a != 255 {
						t.Fatalf("texel (%d,%d) = (%d,%d,%d,%d), want (90,90,90,255)", x, y, r, g, b, a)
					}
				}
			}
			PutToDefault(dst)
		})
	}
}

func TestBoxResamplerTranslucentSolid(t *testing.T) {
	tests := []struct {
		name       string
		format     Format
		r, g, b, a uint8
	}{
		{"RGBA8 faint", FormatRGBA8, 255, 0, 7, 3},
		{"RGBA8 alpha 1", FormatRGBA8, 1, 254, 128, 1},
		{"RGBA8 half", FormatRGBA8, 200, 100, 50, 128},
		{"GrayAlpha8 faint", FormatGrayAlpha8, 77, 77, 77, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _ := NewImageBuf(16, 8, tt.format)
			src.Fill(tt.r, tt.g, tt.b, tt.a)

			cur := src
			for _, size := range MipSizes(16, 8) {
				next, err := BoxResampler{}.Resample(cur, size[0], size[1])
				if err != nil {
					t.Fatalf("Resample(%v) error = %v", size, err)
				}
				for y := range size[1] {
					for x := range size[0] {
						r, g, b, a := next.GetRGBA(x, y)
						if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
							t.Fatalf("%dx%d texel (%d,%d) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
								size[0], size[1], x, y, r, g, b, a, tt.r, tt.g, tt.b, tt.a)
						}
					}
				}
				cur = next
			}
		})
	}
}

func TestBoxResamplerAverages(t *testing.T) {
	src, _ := NewImageBuf(2, 2, FormatGray8)
	copy(src.Data(), []byte{0, 255, 0, 255})

	dst, err := BoxResampler{}.Resample(src, 1, 1)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if v := dst.Data()[0]; v < 127 || v > 128 {
		t.Errorf("averaged texel = %d, want 127 or 128", v)
	}
}

func TestBoxResamplerWeightsByAlpha(t *testing.T) {
	src, _ := NewImageBuf(2, 1, FormatRGBA8)
	copy(src.Data(), []byte{
		255, 0, 0, 255, // opaque red
		0, 0, 255, 0, // transparent blue
	})

	dst, err := BoxResampler{}.Resample(src, 1, 1)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	r, _, b, a := dst.GetRGBA(0, 0)
	if r < 250 || b != 0 {
		t.Errorf("colour = r %d b %d, want red without blue bleeding", r, b)
	}
	if a < 127 || a > 128 {
		t.Errorf("alpha = %d, want ~128", a)
	}
}

func TestBoxResamplerErrors(t *testing.T) {
	src, _ := NewImageBuf(2, 2, FormatRGBA8)

	tests := []struct {
		name string
		src  *ImageBuf
		w, h int
	}{
		{"nil source", nil, 1, 1},
		{"zero width", src, 0, 1},
		{"negative height", src, 1, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BoxResampler{}.Resample(tt.src, tt.w, tt.h)
			if !errors.Is(err, ErrResample) {
				t.Errorf("Resample() error = %v, want %v", err, ErrResample)
			}
		})
	}
}
