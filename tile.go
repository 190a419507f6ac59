package tiles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles/render"
	"github.com/gogpu/tiles/texture"
	"github.com/gogpu/tiles/tileset"
)

// Flags is the per-tile flag set.
type Flags uint32

const (
	// FlagHidden excludes the tile from rendering.
	FlagHidden Flags = 1 << iota

	// FlagEditorHidden excludes the tile from rendering while editing.
	FlagEditorHidden

	// FlagFlipH mirrors the tile horizontally.
	FlagFlipH

	// FlagFlipV mirrors the tile vertically.
	FlagFlipV

	// FlagRepeat tiles the texture over the tile instead of stretching it.
	// A tile with this flag must carry RepeatData.
	FlagRepeat

	// FlagSelected highlights the tile's debug border.
	FlagSelected
)

// Has reports whether all flags in m are set.
func (f Flags) Has(m Flags) bool {
	return f&m == m
}

// Grid is a deforming mesh that replaces a tile's quad. It is owned by the
// effect system; the renderer only hands it the texture rectangle and the
// render context, whose Alpha holds the composed tile alpha.
type Grid interface {
	Render(rc *RenderContext, uvTopLeft, uvBottomRight mgl32.Vec2)
	RenderDebugPoints(rc *RenderContext)
}

// EffectData is a visual effect shared by many tiles. The renderer compares
// effects by pointer, so tiles meant to batch together must share the same
// *EffectData.
type EffectData struct {
	Blend render.BlendMode
	Alpha float32
	Grid  Grid
}

// RepeatData holds the geometry of a tile whose texture repeats across it.
type RepeatData struct {
	// TexScaleX and TexScaleY scale the texture on the tile; 1 is the
	// texture's natural size.
	TexScaleX, TexScaleY float32

	// TexOffX and TexOffY shift the texture in texture coordinates.
	TexOffX, TexOffY float32

	// TexCoords is the rectangle computed by Refresh.
	TexCoords texture.TexCoordBox

	vb *render.VertexBuffer
}

// NewRepeatData creates repeat data at the texture's natural scale.
func NewRepeatData() *RepeatData {
	return &RepeatData{TexScaleX: 1, TexScaleY: 1}
}

// Refresh recomputes the texture rectangle and quad for a tile of kind
// scaled by (scaleX, scaleY).
func (rd *RepeatData) Refresh(kind *tileset.Kind, scaleX, scaleY float32) {
	tw, th := kind.W, kind.H
	if tex := kind.Texture(); tex != nil && tex.Width() > 0 && tex.Height() > 0 {
		tw, th = float32(tex.Width()), float32(tex.Height())
	}
	if tw == 0 {
		tw = 1
	}
	if th == 0 {
		th = 1
	}

	tc := texture.TexCoordBox{
		U1: rd.TexOffX,
		V1: rd.TexOffY,
		U2: kind.W*scaleX*rd.TexScaleX/tw + rd.TexOffX,
		V2: kind.H*scaleY*rd.TexScaleY/th + rd.TexOffY,
	}
	tc.FixFlip()
	rd.TexCoords = tc

	if rd.vb == nil {
		rd.vb = render.NewQuad(tc.U1, tc.V1, tc.U2, tc.V2)
	} else {
		rd.vb.SetQuad(tc.U1, tc.V1, tc.U2, tc.V2)
	}
}

// VertexBuffer returns the repeat quad, nil before the first Refresh.
func (rd *RepeatData) VertexBuffer() *render.VertexBuffer {
	return rd.vb
}

// Tile is one placed tile.
type Tile struct {
	X, Y, Z        float32
	ScaleX, ScaleY float32

	// Rotation is in degrees.
	Rotation float32

	Flags Flags

	// Kind is never nil for a rendered tile; tileset.Tileset.ByIdx
	// provides a placeholder for unknown indices.
	Kind *tileset.Kind

	// Repeat must be set when Flags has FlagRepeat.
	Repeat *RepeatData

	// Effect is optional and may be shared between tiles.
	Effect *EffectData

	// Tag colours the debug border.
	Tag int
}

// NewTile creates a visible, unscaled tile of kind at (x, y).
func NewTile(kind *tileset.Kind, x, y float32) Tile {
	return Tile{X: x, Y: y, ScaleX: 1, ScaleY: 1, Kind: kind}
}

// Storage is an ordered tile collection. Render order is slice order;
// tiles sharing texture and effect should be adjacent to batch well.
type Storage struct {
	Tiles []Tile
}

// Len returns the number of tiles.
func (s *Storage) Len() int {
	return len(s.Tiles)
}

// Add appends a tile and returns its index.
func (s *Storage) Add(t Tile) int {
	s.Tiles = append(s.Tiles, t)
	return len(s.Tiles) - 1
}

// SetRepeat switches texture repetition for tile i. Turning it on creates
// or refreshes the tile's RepeatData, so a repeating tile always has it.
func (s *Storage) SetRepeat(i int, on bool) {
	t := &s.Tiles[i]
	if !on {
		t.Flags &^= FlagRepeat
		return
	}
	if t.Repeat == nil {
		t.Repeat = NewRepeatData()
	}
	t.Repeat.Refresh(t.Kind, t.ScaleX, t.ScaleY)
	t.Flags |= FlagRepeat
	Logger().Debug("tiles: repeat refreshed", "tile", i,
		"v1", t.Repeat.TexCoords.V1, "v2", t.Repeat.TexCoords.V2)
}

// RefreshRepeats recomputes the repeat geometry of every repeating tile,
// after kinds were finalized or tiles rescaled.
func (s *Storage) RefreshRepeats() {
	for i := range s.Tiles {
		t := &s.Tiles[i]
		if t.Flags.Has(FlagRepeat) && t.Repeat != nil {
			t.Repeat.Refresh(t.Kind, t.ScaleX, t.ScaleY)
		}
	}
}
