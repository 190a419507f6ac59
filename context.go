package tiles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles/render"
)

// Layer holds the parallax settings of the layer a tile collection lives on.
type Layer struct {
	// FollowCamera is how strongly the layer follows the camera. 0 disables
	// parallax and tiles render at their own position.
	FollowCamera float32

	// FollowCameraMult selects per axis between the raw position (0) and
	// the parallax position (1).
	FollowCameraMult mgl32.Vec2
}

// RenderContext carries the per-frame inputs of a render pass.
type RenderContext struct {
	Device render.Device

	// ScreenCenter is the camera centre in world coordinates.
	ScreenCenter mgl32.Vec2

	// CullCenter is the centre of the visibility circle.
	CullCenter mgl32.Vec2

	// CullRadiusSqr is the squared layer-wide cull radius.
	CullRadiusSqr float32

	// InvGlobalScaleSqr is 1 / (global zoom)², applied to tile extents.
	InvGlobalScaleSqr float32

	// Color is the ambient colour.
	Color mgl32.Vec3

	// Alpha is the ambient alpha. Grid renderables receive the composed
	// tile alpha here.
	Alpha float32

	Layer Layer
}

// PostRenderState is what a render pass leaves bound, so renderers running
// after it in the same frame can skip redundant binds.
type PostRenderState struct {
	TextureID render.TextureID
	Repeat    bool
}

// parallax is the precomputed camera-follow blend of one pass.
type parallax struct {
	enabled bool
	f       float32
	mult    mgl32.Vec2
	base    mgl32.Vec2 // ScreenCenter * (1 - F)
}

func newParallax(rc *RenderContext) parallax {
	f := rc.Layer.FollowCamera
	return parallax{
		enabled: f > 0,
		f:       f,
		mult:    rc.Layer.FollowCameraMult,
		base:    rc.ScreenCenter.Mul(1 - f),
	}
}

// apply returns the render position of a tile at pos.
func (p parallax) apply(pos mgl32.Vec2) mgl32.Vec2 {
	if !p.enabled {
		return pos
	}
	follow := p.base.Add(pos.Mul(p.f))
	return mgl32.Vec2{
		pos[0]*(1-p.mult[0]) + follow[0]*p.mult[0],
		pos[1]*(1-p.mult[1]) + follow[1]*p.mult[1],
	}
}

// culled reports whether a tile of scaled size sw×sh at pos lies outside
// the visibility circle. Tiles exactly on the boundary are culled.
func (rc *RenderContext) culled(pos mgl32.Vec2, sw, sh float32) bool {
	radiusSqr := (sw*sw+sh*sh)*rc.InvGlobalScaleSqr + rc.CullRadiusSqr
	d := pos.Sub(rc.CullCenter)
	return d.Dot(d) >= radiusSqr
}
