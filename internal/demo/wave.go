package demo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/tiles"
	"github.com/gogpu/tiles/render"
)

// WaveGrid is a deforming mesh of cols×rows cells in unit quad space whose
// interior vertices sway on a sine wave.
type WaveGrid struct {
	cols, rows int
	amplitude  float32
	speed      float32
	phase      float32

	vb     *render.VertexBuffer
	verts  []render.Vertex
	points []mgl32.Vec2
}

var _ tiles.Grid = (*WaveGrid)(nil)

// NewWaveGrid creates a wave grid. amplitude is in unit quad space.
func NewWaveGrid(cols, rows int, amplitude float32) *WaveGrid {
	return &WaveGrid{
		cols:      max(cols, 1),
		rows:      max(rows, 1),
		amplitude: amplitude,
		speed:     2,
		vb:        render.NewVertexBuffer(nil),
	}
}

// Cells returns the number of cells.
func (g *WaveGrid) Cells() int {
	return g.cols * g.rows
}

// Update advances the wave by dt seconds.
func (g *WaveGrid) Update(dt float32) {
	g.phase = float32(math.Mod(float64(g.phase+dt*g.speed), 2*math.Pi))
}

// point returns grid vertex (i, j) in unit quad space. Border vertices do
// not move, so the tile outline stays put.
func (g *WaveGrid) point(i, j int) mgl32.Vec2 {
	x := float32(i)/float32(g.cols) - 0.5
	y := float32(j)/float32(g.rows) - 0.5
	if i > 0 && i < g.cols && j > 0 && j < g.rows {
		s := float32(math.Sin(float64(g.phase + y*2*math.Pi)))
		x += s * g.amplitude
	}
	return mgl32.Vec2{x, y}
}

// Render draws one fan per cell with texture coordinates spanning
// uvTopLeft to uvBottomRight.
func (g *WaveGrid) Render(rc *tiles.RenderContext, uvTopLeft, uvBottomRight mgl32.Vec2) {
	du := (uvBottomRight[0] - uvTopLeft[0]) / float32(g.cols)
	dv := (uvBottomRight[1] - uvTopLeft[1]) / float32(g.rows)

	g.verts = g.verts[:0]
	for j := range g.rows {
		for i := range g.cols {
			u0 := uvTopLeft[0] + float32(i)*du
			v0 := uvTopLeft[1] + float32(j)*dv
			for _, c := range [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
				p := g.point(i+c[0], j+c[1])
				g.verts = append(g.verts, render.Vertex{
					X: p[0], Y: p[1],
					U: u0 + float32(c[0])*du,
					V: v0 + float32(c[1])*dv,
				})
			}
		}
	}
	g.vb.Set(g.verts)

	dev := rc.Device
	dev.SetColor(rc.Color[0], rc.Color[1], rc.Color[2], rc.Alpha)
	dev.BindVertexBuffer(g.vb)
	for cell := range g.Cells() {
		dev.DrawArrays(render.PrimTriangleFan, cell*4, 4)
	}
}

// RenderDebugPoints draws every grid vertex.
func (g *WaveGrid) RenderDebugPoints(rc *tiles.RenderContext) {
	g.points = g.points[:0]
	for j := 0; j <= g.rows; j++ {
		for i := 0; i <= g.cols; i++ {
			g.points = append(g.points, g.point(i, j))
		}
	}
	rc.Device.SetPointSize(4)
	rc.Device.DrawImmediate(render.PrimPoints, g.points)
}
