package image

import "testing"

func TestFormatForChannels(t *testing.T) {
	tests := []struct {
		channels  int
		want      Format
		wantOK    bool
		wantAlpha int
	}{
		{1, FormatGray8, true, NoAlpha},
		{2, FormatGrayAlpha8, true, 1},
		{3, FormatRGB8, true, NoAlpha},
		{4, FormatRGBA8, true, 3},
		{0, 0, false, NoAlpha},
		{5, 0, false, NoAlpha},
		{-1, 0, false, NoAlpha},
	}

	for _, tt := range tests {
		got, ok := FormatForChannels(tt.channels)
		if ok != tt.wantOK {
			t.Errorf("FormatForChannels(%d) ok = %v, want %v", tt.channels, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got != tt.want {
			t.Errorf("FormatForChannels(%d) = %v, want %v", tt.channels, got, tt.want)
		}
		if got.Channels() != tt.channels {
			t.Errorf("%v.Channels() = %d, want %d", got, got.Channels(), tt.channels)
		}
		if got.BytesPerPixel() != tt.channels {
			t.Errorf("%v.BytesPerPixel() = %d, want %d", got, got.BytesPerPixel(), tt.channels)
		}
		if got.AlphaIndex() != tt.wantAlpha {
			t.Errorf("%v.AlphaIndex() = %d, want %d", got, got.AlphaIndex(), tt.wantAlpha)
		}
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatGray8, "Gray8"},
		{FormatGrayAlpha8, "GrayAlpha8"},
		{FormatRGB8, "RGB8"},
		{FormatRGBA8, "RGBA8"},
		{Format(200), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormatInvalid(t *testing.T) {
	f := Format(99)
	if f.IsValid() {
		t.Error("Format(99).IsValid() = true")
	}
	if f.BytesPerPixel() != 0 {
		t.Errorf("Format(99).BytesPerPixel() = %d, want 0", f.BytesPerPixel())
	}
	if f.HasAlpha() {
		t.Error("Format(99).HasAlpha() = true")
	}
}

func TestFormatImageBytes(t *testing.T) {
	if got := FormatRGB8.ImageBytes(5, 3); got != 45 {
		t.Errorf("RGB8.ImageBytes(5, 3) = %d, want 45", got)
	}
	if got := FormatGrayAlpha8.RowBytes(7); got != 14 {
		t.Errorf("GrayAlpha8.RowBytes(7) = %d, want 14", got)
	}
}
