//go:build nogl

package opengl

import "github.com/gogpu/tiles/backend"

// init registers a nil-returning factory when built without OpenGL, so
// backend.Get(backend.BackendOpenGL) returns nil instead of panicking.
func init() {
	backend.Register(backend.BackendOpenGL, func() backend.RenderBackend {
		return nil
	})
}
