package tiles

// RendererOption configures a TileRenderer during creation.
//
// Example:
//
//	r := tiles.NewTileRenderer(storage, tiles.WithBorders(true))
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	borders         bool
	collisionShapes bool
}

// WithBorders draws a tag-coloured outline and centre point over every
// rendered tile.
func WithBorders(on bool) RendererOption {
	return func(o *rendererOptions) {
		o.borders = on
	}
}

// WithCollisionShapes draws the debug points of grid effects.
func WithCollisionShapes(on bool) RendererOption {
	return func(o *rendererOptions) {
		o.collisionShapes = on
	}
}
