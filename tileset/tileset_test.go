// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tileset

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/gogpu/tiles/render"
	"github.com/gogpu/tiles/texture"
)

func newTileset(t *testing.T, indices ...int) *Tileset {
	t.Helper()
	ts := New()
	for _, idx := range indices {
		if err := ts.Add(NewKind(idx, "")); err != nil {
			t.Fatalf("Add(%d) error = %v", idx, err)
		}
	}
	return ts
}

func TestByIdx(t *testing.T) {
	ts := newTileset(t, 0, 2)

	e := ts.ByIdx(2)
	if e.Placeholder() || e.Kind().Idx != 2 {
		t.Errorf("ByIdx(2) = %+v, want registered kind 2", e)
	}

	tests := []struct {
		name string
		idx  int
	}{
		{"gap", 1},
		{"past end", 10},
		{"negative", -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ts.ByIdx(tt.idx)
			if !e.Placeholder() {
				t.Fatalf("ByIdx(%d) is not a placeholder", tt.idx)
			}
			if e.Kind() == nil {
				t.Fatalf("ByIdx(%d) returned a nil kind", tt.idx)
			}
			if again := ts.ByIdx(tt.idx); again.Kind() != e.Kind() {
				t.Error("placeholder is not stable across lookups")
			}
			if e.Kind().VertexBuffer() == nil {
				t.Error("placeholder has no quad")
			}
		})
	}

	if ts.ByIdx(10).Kind() == ts.ByIdx(11).Kind() {
		t.Error("placeholders are cached per index")
	}
}

func TestAddReplacesPlaceholder(t *testing.T) {
	ts := New()
	if !ts.ByIdx(3).Placeholder() {
		t.Fatal("ByIdx(3) on empty tileset should be a placeholder")
	}
	k := NewKind(3, "")
	_ = ts.Add(k)
	if e := ts.ByIdx(3); e.Placeholder() || e.Kind() != k {
		t.Error("registered kind should replace the placeholder")
	}

	if err := ts.Add(NewKind(-1, "")); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Add(-1) error = %v, want %v", err, ErrInvalidIndex)
	}
	if err := ts.Add(nil); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Add(nil) error = %v, want %v", err, ErrInvalidIndex)
	}
}

func TestAdjacent(t *testing.T) {
	ts := newTileset(t, 1, 2, 5, 7)
	ts.ByIdx(3) // placeholders never take part

	tests := []struct {
		name string
		idx  int
		dir  int
		wrap bool
		want int // -1 for nil
	}{
		{"next", 2, 1, false, 5},
		{"previous", 5, -1, false, 2},
		{"large step sign only", 1, 10, false, 2},
		{"end without wrap", 7, 1, false, -1},
		{"start without wrap", 1, -1, false, -1},
		{"end with wrap", 7, 1, true, 1},
		{"start with wrap", 1, -1, true, 7},
		{"from gap", 3, 1, false, 5},
		{"from past end", 20, -1, false, 7},
		{"zero direction", 2, 0, true, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ts.Adjacent(tt.idx, tt.dir, tt.wrap)
			switch {
			case tt.want < 0 && got != nil:
				t.Errorf("Adjacent() = kind %d, want nil", got.Idx)
			case tt.want >= 0 && got == nil:
				t.Errorf("Adjacent() = nil, want kind %d", tt.want)
			case tt.want >= 0 && got.Idx != tt.want:
				t.Errorf("Adjacent() = kind %d, want %d", got.Idx, tt.want)
			}
		})
	}

	if got := ts.Adjacent(7, 1, true); got != nil && ts.ByIdx(got.Idx).Placeholder() {
		t.Error("Adjacent() returned a placeholder")
	}
	if got := New().Adjacent(0, 1, true); got != nil {
		t.Error("Adjacent() on empty tileset should be nil")
	}
}

func TestAdjacentSingleWraps(t *testing.T) {
	ts := newTileset(t, 4)
	if got := ts.Adjacent(4, 1, true); got == nil || got.Idx != 4 {
		t.Errorf("Adjacent() = %v, want the only kind", got)
	}
}

func TestKindFinalize(t *testing.T) {
	dev := render.NewSoftwareDevice()
	mgr := texture.NewManager(dev, nil)
	h, err := mgr.Add("rock", &texture.ImageData{Pixels: make([]byte, 32*16), Width: 32, Height: 16, Channels: 1})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	k := NewKind(0, "rock")
	if k.Idx != 0 || !k.TexCoords.IsStandard() || k.W != 0 {
		t.Fatalf("NewKind() = %+v", k)
	}
	k.SetTexture(h)
	k.Finalize()

	if k.W != 32 || k.H != 16 {
		t.Errorf("size = %vx%v, want texture size 32x16", k.W, k.H)
	}
	if k.VertexBuffer() != render.DefaultQuad() || k.OwnsVertexBuffer() {
		t.Error("standard texcoords should share the default quad")
	}

	sized := NewKind(1, "rock")
	sized.W, sized.H = 100, 50
	sized.TexCoords = texture.TexCoordBox{U1: 0, V1: 0, U2: 0.5, V2: 0.5}
	sized.Finalize()
	if sized.W != 100 || sized.H != 50 {
		t.Errorf("explicit size overwritten: %vx%v", sized.W, sized.H)
	}
	if !sized.OwnsVertexBuffer() || sized.VertexBuffer() == render.DefaultQuad() {
		t.Fatal("custom texcoords should get an owned quad")
	}
	if v := sized.VertexBuffer().Vertices()[2]; v.U != 0.5 || v.V != 0.5 {
		t.Errorf("quad texcoords = %+v, want 0.5/0.5", v)
	}

	vb := sized.VertexBuffer()
	sized.Finalize()
	if sized.VertexBuffer() != vb {
		t.Error("re-finalizing should reuse the owned quad")
	}

	if NewKind(2, "").VertexBuffer() == nil {
		t.Error("VertexBuffer() must never be nil")
	}
}

func TestLoadTextures(t *testing.T) {
	dev := render.NewSoftwareDevice()
	mgr := texture.NewManager(dev, nil)
	px := bytes.Repeat([]byte{1, 2, 3, 4}, 4)
	if _, err := mgr.Add("shared", &texture.ImageData{Pixels: px, Width: 2, Height: 2, Channels: 4}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	ts := New()
	_ = ts.Add(NewKind(0, "shared"))
	_ = ts.Add(NewKind(1, "shared"))
	_ = ts.Add(NewKind(2, "missing"))
	_ = ts.Add(NewKind(3, "shared"))

	err := ts.LoadTextures(mgr, []bool{true, true, true, false})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadTextures() error = %v, want %v", err, fs.ErrNotExist)
	}

	a, b := ts.ByIdx(0).Kind(), ts.ByIdx(1).Kind()
	if a.Texture() == nil || a.Texture() != b.Texture() {
		t.Fatal("kinds with the same gfx should share a texture")
	}
	if a.W != 2 || a.H != 2 {
		t.Errorf("size = %vx%v, want 2x2", a.W, a.H)
	}
	if ts.ByIdx(2).Kind().Texture() != nil {
		t.Error("failed kind should keep no texture")
	}
	if ts.ByIdx(3).Kind().Texture() != nil {
		t.Error("unused kind should not be loaded")
	}

	h, _ := mgr.Lookup("shared")
	if h.Refs() != 3 {
		t.Errorf("Refs() = %d, want 3 (manager + two kinds)", h.Refs())
	}

	ts.Clear()
	if ts.Len() != 0 || h.Refs() != 1 {
		t.Errorf("after Clear: Len() = %d, Refs() = %d, want 0 and 1", ts.Len(), h.Refs())
	}
}
