package image

import (
	"bytes"
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, img stdimage.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestDecodeBytesRGBA(t *testing.T) {
	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	buf, err := DecodeBytes(encodePNG(t, src))
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if buf.Format() != FormatRGBA8 {
		t.Errorf("Format() = %v, want RGBA8", buf.Format())
	}
	if buf.Width() != 3 || buf.Height() != 2 {
		t.Errorf("Bounds() = %dx%d, want 3x2", buf.Width(), buf.Height())
	}
	r, g, b, a := buf.GetRGBA(2, 1)
	if r != 10 || g != 20 || b != 30 || a != 40 {
		t.Errorf("GetRGBA(2, 1) = (%d,%d,%d,%d), want (10,20,30,40)", r, g, b, a)
	}
}

func TestDecodeBytesGray(t *testing.T) {
	src := stdimage.NewGray(stdimage.Rect(0, 0, 2, 2))
	src.SetGray(1, 0, color.Gray{Y: 77})

	buf, err := DecodeBytes(encodePNG(t, src))
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if buf.Format() != FormatGray8 {
		t.Fatalf("Format() = %v, want Gray8", buf.Format())
	}
	if got := buf.Data()[1]; got != 77 {
		t.Errorf("texel (1,0) = %d, want 77", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeBytes(nil) error = %v, want %v", err, ErrEmptyData)
	}
	if _, err := DecodeBytes([]byte("definitely not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeBytes(garbage) error = %v, want %v", err, ErrUnsupportedFormat)
	}
}

func TestLoadFS(t *testing.T) {
	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, 4, 4))
	fsys := fstest.MapFS{
		"gfx/rock.png": &fstest.MapFile{Data: encodePNG(t, src)},
	}

	buf, err := LoadFS(fsys, "gfx/rock.png")
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if buf.Width() != 4 {
		t.Errorf("Width() = %d, want 4", buf.Width())
	}

	if _, err := LoadFS(fsys, "gfx/missing.png"); err == nil {
		t.Error("LoadFS(missing) should fail")
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	buf, _ := NewImageBuf(2, 2, FormatRGBA8)
	buf.Fill(1, 2, 3, 255)

	var out bytes.Buffer
	if err := buf.EncodePNG(&out); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	back, err := Decode(&out)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(back.Data(), buf.Data()) {
		t.Errorf("round trip = %v, want %v", back.Data(), buf.Data())
	}
}
