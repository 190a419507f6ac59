// Package tiles renders large collections of 2D map tiles in batches.
//
// # Overview
//
// A map is a [Storage] of [Tile] values, each referring to a shared
// [tileset.Kind] that supplies the texture, logical size and quad. A
// [TileRenderer] walks the storage once per frame and issues device calls
// through a [render.Device], skipping every texture bind, blend change and
// vertex buffer bind that would not change state.
//
// # Rendering
//
// For each tile the renderer:
//   - skips hidden tiles
//   - applies layer parallax ([Layer])
//   - culls tiles outside the visibility circle of the [RenderContext]
//   - binds the kind's texture when it or the repeat mode changed
//   - applies the tile's [EffectData] when it differs from the previous one
//   - draws the kind's quad, the repeat quad, or hands off to a [Grid]
//
// After the pass the renderer reports what it left bound as a
// [PostRenderState].
//
// # Debug overlay
//
// [WithBorders] draws an outline and centre point over each tile, coloured
// by its tag (see [TagColor]). [WithCollisionShapes] draws the debug points
// of grid effects. Either overlay resets the batching state after every tile
// and is meant for editing.
//
// # Packages
//
//   - render: device abstraction, quads, matrix stack and a software device
//   - texture: texture upload, mipmaps, readback and a reference-counted
//     texture manager
//   - tileset: the index-to-kind registry with placeholder kinds
//   - backend/opengl, backend/ebitengine: device implementations
//
// # Logging
//
// Logging goes through [log/slog] and is silent by default; see [SetLogger].
package tiles
