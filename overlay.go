package tiles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles/render"
)

// tagColors is the debug border palette. Tags past the end use the last
// entry.
var tagColors = [...]mgl32.Vec3{
	{0.5, 0.5, 0.5},
	{1, 0, 0},
	{1, 0.415686, 0},
	{1, 0.847059, 0},
	{0.298039, 1, 0},
	{0, 1, 1},
	{0, 0.580392, 1},
	{0, 0.149020, 1},
	{0.282353, 0, 1},
	{0.698039, 0, 1},
	{1, 0, 1},
}

// TagColor returns the border colour of tag. Negative and out-of-range tags
// map to the last palette entry.
func TagColor(tag int) mgl32.Vec3 {
	return tagColors[min(uint(tag), uint(len(tagColors)-1))]
}

// borderOutline is the closed tile outline in unit quad space.
var borderOutline = []mgl32.Vec2{
	{0.5, 0.5},
	{0.5, -0.5},
	{-0.5, -0.5},
	{-0.5, 0.5},
	{0.5, 0.5},
}

var centerPoint = []mgl32.Vec2{{0, 0}}

// renderOverlay draws the debug extras of t in its local transform. The
// caller has already unbound the texture.
func (r *TileRenderer) renderOverlay(rc *RenderContext, t *Tile, grid Grid) {
	dev := rc.Device

	if grid != nil && r.opts.collisionShapes {
		grid.RenderDebugPoints(rc)
	}

	if !r.opts.borders {
		return
	}

	c := float32(0.5)
	if t.Flags.Has(FlagSelected) {
		c = 1
	}
	col := TagColor(t.Tag).Mul(c)
	dev.SetColor(col[0], col[1], col[2], 1)

	dev.SetPointSize(16)
	dev.DrawImmediate(render.PrimPoints, centerPoint)

	dev.SetLineWidth(2)
	dev.DrawImmediate(render.PrimLineStrip, borderOutline)
}
