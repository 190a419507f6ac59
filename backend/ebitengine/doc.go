// Package ebitengine implements render.Device on top of Ebitengine.
//
// Textures are ebiten.Image values backed by a CPU copy of level 0 for
// readback. Quads are transformed on the CPU with the device's own matrix
// stack and submitted with DrawTriangles; the debug overlay uses the
// vector package. Ebitengine samples level 0 only, so mip level uploads
// are accepted and dropped.
//
// Draws go to the image set with SetTarget, normally the screen passed to
// ebiten.Game.Draw:
//
//	func (g *game) Draw(screen *ebiten.Image) {
//		g.dev.SetTarget(screen)
//		g.renderer.OnRender(g.rc, &g.state)
//	}
//
// All methods must be called from the Ebitengine game goroutine.
package ebitengine
