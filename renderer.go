package tiles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles/render"
)

// TileRenderer draws a Storage through a render.Device, eliding redundant
// texture, effect and vertex buffer changes between consecutive tiles.
//
// TileRenderer is not safe for concurrent use. It holds no per-frame state
// between calls to OnRender.
type TileRenderer struct {
	storage *Storage
	opts    rendererOptions
}

// NewTileRenderer creates a renderer for storage.
func NewTileRenderer(storage *Storage, opts ...RendererOption) *TileRenderer {
	r := &TileRenderer{storage: storage}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// Storage returns the rendered tiles.
func (r *TileRenderer) Storage() *Storage {
	return r.storage
}

// SetRenderBorders toggles the tag-coloured debug outline.
func (r *TileRenderer) SetRenderBorders(on bool) {
	r.opts.borders = on
}

// RenderBorders reports whether the debug outline is drawn.
func (r *TileRenderer) RenderBorders() bool {
	return r.opts.borders
}

// SetRenderCollisionShapes toggles drawing of grid debug points.
func (r *TileRenderer) SetRenderCollisionShapes(on bool) {
	r.opts.collisionShapes = on
}

// RenderCollisionShapes reports whether grid debug points are drawn.
func (r *TileRenderer) RenderCollisionShapes() bool {
	return r.opts.collisionShapes
}

// OnUpdate advances per-frame state. Tiles have none; effects are updated
// by their owner.
func (r *TileRenderer) OnUpdate(float32) {}

// OnRender draws every visible tile in storage order. When at least one
// tile was traversed, the texture and repeat mode left bound are written to
// state if it is non-nil; an empty storage leaves state untouched.
//
// The device's transform stack and vertex buffer binding are the same after
// the pass as before it, except that no vertex buffer is bound.
func (r *TileRenderer) OnRender(rc *RenderContext, state *PostRenderState) {
	tiles := r.storage.Tiles
	if len(tiles) == 0 {
		return
	}

	dev := rc.Device
	par := newParallax(rc)
	extras := r.opts.borders || r.opts.collisionShapes
	gridCtx := *rc

	var (
		lastTex    render.TextureID
		lastRepeat bool
		lastVB     *render.VertexBuffer

		// effValid is false until an effect has been applied and again
		// after the overlay, so the next tile re-applies its effect.
		effValid bool
		prevEff  *EffectData
		grid     Grid
		alpha    = rc.Alpha
	)

	for i := range tiles {
		t := &tiles[i]
		if t.Flags&(FlagHidden|FlagEditorHidden) != 0 {
			continue
		}

		kind := t.Kind
		pos := par.apply(mgl32.Vec2{t.X, t.Y})
		sw := kind.W * t.ScaleX
		sh := kind.H * t.ScaleY
		if rc.culled(pos, sw, sh) {
			continue
		}

		rep := t.Flags.Has(FlagRepeat)
		if tex := kind.Texture(); tex != nil {
			if id := tex.ID(); id != lastTex || rep != lastRepeat {
				lastTex, lastRepeat = id, rep
				tex.ApplyRepeat(rep)
			}
		} else {
			lastTex = 0
			dev.BindTexture(0)
		}

		if !effValid || t.Effect != prevEff {
			effValid = true
			prevEff = t.Effect
			blend := render.BlendDefault
			alpha = rc.Alpha
			grid = nil
			if eff := t.Effect; eff != nil {
				blend = eff.Blend
				alpha *= eff.Alpha
				grid = eff.Grid
			}
			dev.SetBlend(blend)
			dev.SetColor(rc.Color[0], rc.Color[1], rc.Color[2], alpha)
		}

		dev.PushMatrix()
		dev.Translate(pos[0], pos[1], t.Z)
		rot, flip := composeTransform(t.Flags, t.Rotation, grid != nil)
		dev.Rotate(rot, 0, 0, 1)
		switch flip {
		case flipHorizontal:
			dev.Rotate(180, 0, 1, 0)
		case flipVertical:
			dev.Rotate(180, 1, 0, 0)
		}
		dev.Scale(sw, sh, 1)

		if grid == nil {
			vb := kind.VertexBuffer()
			if rep {
				vb = t.Repeat.VertexBuffer()
			}
			if vb != lastVB {
				lastVB = vb
				dev.BindVertexBuffer(vb)
			}
			dev.DrawArrays(render.PrimTriangleFan, 0, 4)
		} else {
			tc := kind.TexCoords
			if rep {
				tc = t.Repeat.TexCoords
			}
			gridCtx.Alpha = alpha
			grid.Render(&gridCtx, mgl32.Vec2{tc.U1, tc.V1}, mgl32.Vec2{tc.U2, tc.V2})
			// The grid binds geometry of its own.
			lastVB = nil
		}

		if extras {
			dev.BindTexture(0)
			lastTex = 0
			effValid = false
			r.renderOverlay(rc, t, grid)
		}

		dev.PopMatrix()
	}

	dev.UnbindVertexBuffer()
	if state != nil {
		*state = PostRenderState{TextureID: lastTex, Repeat: lastRepeat}
	}
}

// flipMode is the mirror applied after the z rotation.
type flipMode uint8

const (
	flipNone flipMode = iota
	flipHorizontal
	flipVertical
)

// composeTransform resolves a tile's flags into its z rotation in degrees
// and the mirror to apply afterwards. Grid geometry ignores the vertical
// flip. Flipping both ways is a half turn.
func composeTransform(flags Flags, rotation float32, hasGrid bool) (float32, flipMode) {
	fh := flags.Has(FlagFlipH)
	fv := flags.Has(FlagFlipV) && !hasGrid
	switch {
	case fh && fv:
		return rotation + 180, flipNone
	case fh:
		return rotation, flipHorizontal
	case fv:
		return rotation, flipVertical
	}
	return rotation, flipNone
}
